package domain

import "time"

// TransactionStatus represents the lifecycle state of a money transaction.
type TransactionStatus string

const (
	TransactionSent     TransactionStatus = "sent"
	TransactionReceived TransactionStatus = "received"
	TransactionPayed    TransactionStatus = "payed"
)

// Currency of a transaction amount.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// PaymentMethod is how a transaction was settled.
type PaymentMethod string

const (
	MethodCardPayment    PaymentMethod = "card payment"
	MethodTransaction    PaymentMethod = "transaction"
	MethodOnlineTransfer PaymentMethod = "online transfer"
)

// validStatusTransitions defines the allowed transaction status moves.
var validStatusTransitions = map[TransactionStatus][]TransactionStatus{
	TransactionSent:     {TransactionReceived},
	TransactionReceived: {TransactionPayed},
}

// CanTransitionTo reports whether a move from the current status to next is valid.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	for _, allowed := range validStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transaction is a single money movement booked against a contractor.
type Transaction struct {
	ID           string            `json:"id"`
	ContractorID string            `json:"contractor_id"`
	Amount       float64           `json:"amount"`
	Currency     Currency          `json:"currency"`
	Status       TransactionStatus `json:"status"`
	Method       PaymentMethod     `json:"method"`
	TrackingID   string            `json:"tracking_id,omitempty"`
	SentAt       *time.Time        `json:"sent_at,omitempty"`
	ReceivedAt   *time.Time        `json:"received_at,omitempty"`
	PayedAt      *time.Time        `json:"payed_at,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}
