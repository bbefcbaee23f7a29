package models

import "time"

type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "pending"
	WithdrawalStatusApproved WithdrawalStatus = "approved"
	WithdrawalStatusRejected WithdrawalStatus = "rejected"
	// Some upstream deployments mark settled payouts as "paid" instead of
	// "approved"; totals treat both as money out the door.
	WithdrawalStatusPaid WithdrawalStatus = "paid"
)

// DriverSummary is the embedded driver shape on a withdrawal record.
type DriverSummary struct {
	Name      string    `json:"name,omitempty"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Earnings  *Earnings `json:"earnings,omitempty"`
}

type Withdrawal struct {
	ID        string           `json:"_id"`
	Amount    float64          `json:"amount"`
	Status    WithdrawalStatus `json:"status"`
	Method    string           `json:"method,omitempty"`
	Note      string           `json:"note,omitempty"`
	Driver    DriverSummary    `json:"driver"`
	CreatedAt time.Time        `json:"createdAt,omitempty"`
}

// Terminal reports whether the withdrawal has left the pending state.
func (w *Withdrawal) Terminal() bool {
	return w.Status != WithdrawalStatusPending
}
