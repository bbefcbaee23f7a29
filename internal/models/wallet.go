package models

type WalletAction string

const (
	WalletActionCredit WalletAction = "credit"
	WalletActionDebit  WalletAction = "debit"
)

// WalletAdjustment is the credit/debit mutation sent to the upstream,
// including a free-text audit note.
type WalletAdjustment struct {
	Amount      float64      `json:"amount"`
	Action      WalletAction `json:"action"`
	Description string       `json:"description"`
}

// WalletUpdateResult is the upstream reply carrying the new balance.
type WalletUpdateResult struct {
	Wallet  float64 `json:"wallet"`
	Message string  `json:"message,omitempty"`
}
