package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greenstreet/ledger-api/internal/core/domain"
	"github.com/greenstreet/ledger-api/internal/core/ports"
)

type TransactionHandler struct {
	service ports.TransactionService
}

func NewTransactionHandler(service ports.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// Create books a new transaction against a contractor.
//
// @Summary      Create a transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        body  body      createTransactionRequest  true  "Transaction details"
// @Success      201   {object}  domain.Transaction
// @Failure      404   {object}  map[string]string
// @Router       /transactions [post]
func (h *TransactionHandler) Create(c echo.Context) error {
	var req createTransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tx, err := h.service.Create(c.Request().Context(), ports.CreateTransactionInput{
		ContractorID: req.ContractorID,
		Amount:       req.Amount,
		Currency:     domain.Currency(req.Currency),
		Method:       domain.PaymentMethod(req.Method),
		TrackingID:   req.TrackingID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tx)
}

// Get fetches a transaction by id.
//
// @Summary      Get a transaction
// @Tags         transactions
// @Produce      json
// @Param        id   path      string  true  "Transaction id"
// @Success      200  {object}  domain.Transaction
// @Failure      404  {object}  map[string]string
// @Router       /transactions/{id} [get]
func (h *TransactionHandler) Get(c echo.Context) error {
	tx, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tx)
}

// List returns transactions with filters, pagination, and sorting.
//
// @Summary      List transactions
// @Tags         transactions
// @Produce      json
// @Param        contractor_id  query  string  false  "Filter by contractor"
// @Param        status         query  string  false  "Filter by status"
// @Param        method         query  string  false  "Filter by method"
// @Param        page           query  int     false  "Page number"
// @Param        page_size      query  int     false  "Page size"
// @Success      200  {object}  transactionListResponse
// @Router       /transactions [get]
func (h *TransactionHandler) List(c echo.Context) error {
	filter := ports.TransactionFilter{
		ContractorID: c.QueryParam("contractor_id"),
		Status:       domain.TransactionStatus(c.QueryParam("status")),
		Method:       domain.PaymentMethod(c.QueryParam("method")),
	}

	opts := listOptionsFromQuery(c)
	items, total, err := h.service.List(c.Request().Context(), filter, opts)
	if err != nil {
		return err
	}
	if items == nil {
		items = []domain.Transaction{}
	}
	return c.JSON(http.StatusOK, transactionListResponse{Items: items, Total: total, Page: opts.Page})
}

// Advance moves a transaction to its next lifecycle status.
//
// @Summary      Advance a transaction status
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "Transaction id"
// @Param        body  body      advanceTransactionRequest  true  "Target status"
// @Success      200   {object}  domain.Transaction
// @Failure      422   {object}  map[string]string
// @Router       /transactions/{id}/status [put]
func (h *TransactionHandler) Advance(c echo.Context) error {
	var req advanceTransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tx, err := h.service.Advance(c.Request().Context(), c.Param("id"), domain.TransactionStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tx)
}

// Delete removes a transaction.
//
// @Summary      Delete a transaction
// @Tags         transactions
// @Param        id  path  string  true  "Transaction id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
