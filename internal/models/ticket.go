package models

import "time"

type TicketStatus string

const (
	TicketStatusOpen     TicketStatus = "open"
	TicketStatusPending  TicketStatus = "pending"
	TicketStatusResolved TicketStatus = "resolved"
	TicketStatusClosed   TicketStatus = "closed"
)

// TicketStatuses lists every status in display order.
var TicketStatuses = []TicketStatus{
	TicketStatusOpen,
	TicketStatusPending,
	TicketStatusResolved,
	TicketStatusClosed,
}

type TicketUser struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type TicketResponse struct {
	Responder string    `json:"responder,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

type SupportTicket struct {
	ID        string           `json:"_id"`
	Subject   string           `json:"subject"`
	Status    TicketStatus     `json:"status"`
	User      *TicketUser      `json:"user,omitempty"`
	Responses []TicketResponse `json:"responses,omitempty"`
	CreatedAt time.Time        `json:"createdAt,omitempty"`
	UpdatedAt time.Time        `json:"updatedAt,omitempty"`
}

// Closed tickets are terminal: no further status edits are accepted.
func (t *SupportTicket) Closed() bool {
	return t.Status == TicketStatusClosed
}
