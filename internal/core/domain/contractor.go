package domain

import "time"

// Contractor is a counterparty that transactions are booked against.
type Contractor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
