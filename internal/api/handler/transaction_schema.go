package handler

import "github.com/greenstreet/ledger-api/internal/core/domain"

// createTransactionRequest is the payload for POST /transactions.
type createTransactionRequest struct {
	ContractorID string  `json:"contractor_id" validate:"required"`
	Amount       float64 `json:"amount" validate:"required"`
	Currency     string  `json:"currency" validate:"required,oneof=USD EUR GBP"`
	Method       string  `json:"method" validate:"required,oneof='card payment' transaction 'online transfer'"`
	TrackingID   string  `json:"tracking_id,omitempty"`
}

// advanceTransactionRequest moves a transaction to its next status.
type advanceTransactionRequest struct {
	Status string `json:"status" validate:"required,oneof=received payed"`
}

type transactionListResponse struct {
	Items []domain.Transaction `json:"items"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
}
