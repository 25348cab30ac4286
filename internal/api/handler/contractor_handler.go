package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/greenstreet/ledger-api/internal/core/domain"
	"github.com/greenstreet/ledger-api/internal/core/ports"
)

type ContractorHandler struct {
	service ports.ContractorService
}

func NewContractorHandler(service ports.ContractorService) *ContractorHandler {
	return &ContractorHandler{service: service}
}

type contractorRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

type contractorListResponse struct {
	Items []domain.Contractor `json:"items"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
}

// Create registers a new contractor.
//
// @Summary      Create a contractor
// @Tags         contractors
// @Accept       json
// @Produce      json
// @Param        body  body      contractorRequest  true  "Contractor details"
// @Success      201   {object}  domain.Contractor
// @Router       /contractors [post]
func (h *ContractorHandler) Create(c echo.Context) error {
	var req contractorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	contractor, err := h.service.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, contractor)
}

// Get fetches a contractor by id.
//
// @Summary      Get a contractor
// @Tags         contractors
// @Produce      json
// @Param        id   path      string  true  "Contractor id"
// @Success      200  {object}  domain.Contractor
// @Failure      404  {object}  map[string]string
// @Router       /contractors/{id} [get]
func (h *ContractorHandler) Get(c echo.Context) error {
	contractor, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contractor)
}

// List returns contractors with pagination and sorting.
//
// @Summary      List contractors
// @Tags         contractors
// @Produce      json
// @Param        page       query  int     false  "Page number"
// @Param        page_size  query  int     false  "Page size"
// @Param        sort_by    query  string  false  "Sort field"
// @Param        order      query  string  false  "asc or desc"
// @Success      200  {object}  contractorListResponse
// @Router       /contractors [get]
func (h *ContractorHandler) List(c echo.Context) error {
	opts := listOptionsFromQuery(c)
	items, total, err := h.service.List(c.Request().Context(), opts)
	if err != nil {
		return err
	}
	if items == nil {
		items = []domain.Contractor{}
	}
	return c.JSON(http.StatusOK, contractorListResponse{Items: items, Total: total, Page: opts.Page})
}

// Rename updates a contractor's name.
//
// @Summary      Rename a contractor
// @Tags         contractors
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Contractor id"
// @Param        body  body      contractorRequest  true  "New name"
// @Success      200   {object}  domain.Contractor
// @Failure      404   {object}  map[string]string
// @Router       /contractors/{id} [put]
func (h *ContractorHandler) Rename(c echo.Context) error {
	var req contractorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	contractor, err := h.service.Rename(c.Request().Context(), c.Param("id"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contractor)
}

// Delete removes a contractor.
//
// @Summary      Delete a contractor
// @Tags         contractors
// @Param        id  path  string  true  "Contractor id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /contractors/{id} [delete]
func (h *ContractorHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// listOptionsFromQuery parses the shared pagination/sorting query parameters.
func listOptionsFromQuery(c echo.Context) ports.ListOptions {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))
	return ports.ListOptions{
		Page:     page,
		PageSize: pageSize,
		SortBy:   c.QueryParam("sort_by"),
		SortDesc: c.QueryParam("order") == "desc",
	}
}
