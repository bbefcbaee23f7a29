package dashboard

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"

	"ecocruise-admin/internal/models"
	"ecocruise-admin/internal/upstream"
	"ecocruise-admin/pkg/logger"
)

var (
	ErrTicketNotFound = errors.New("ticket not found")
	ErrTicketClosed   = errors.New("closed tickets cannot change status")
)

// TicketsController manages the support queue: a filterable list, each
// ticket expandable into its response thread, and a combined reply/status
// submit. Closed tickets are terminal.
type TicketsController struct {
	mu         sync.Mutex
	generation uint64

	client *upstream.Client
	log    *logger.Logger

	tickets      []models.SupportTicket
	roleFilter   models.Role
	statusFilter models.TicketStatus
	err          error
}

func NewTicketsController(client *upstream.Client, log *logger.Logger) *TicketsController {
	return &TicketsController{
		client:     client,
		log:        log.WithPage("tickets"),
		roleFilter: models.RoleCustomer,
	}
}

// Load fetches tickets for the current role and optional status filter.
func (c *TicketsController) Load(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.err = nil
	client := c.client
	path := c.listPathLocked()
	c.mu.Unlock()

	payload, err := client.Get(ctx, path)
	var tickets []models.SupportTicket
	if err == nil {
		_, err = upstream.DecodeList(payload, &tickets)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return nil
	}
	if err != nil {
		c.err = err
		c.tickets = nil
		c.log.WithError(err).Error("Ticket list load failed")
		return err
	}
	c.tickets = tickets
	return nil
}

func (c *TicketsController) listPathLocked() string {
	params := url.Values{}
	if c.roleFilter != "" {
		params.Set("role", string(c.roleFilter))
	}
	if c.statusFilter != "" {
		params.Set("status", string(c.statusFilter))
	}
	path := "/admin/support-tickets"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}
	return path
}

// SetFilters changes the role and status filters and reloads.
func (c *TicketsController) SetFilters(ctx context.Context, role models.Role, status models.TicketStatus) error {
	c.mu.Lock()
	c.roleFilter = role
	c.statusFilter = status
	c.mu.Unlock()
	return c.Load(ctx)
}

func (c *TicketsController) Tickets() ([]models.SupportTicket, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	out := make([]models.SupportTicket, len(c.tickets))
	copy(out, c.tickets)
	return out, nil
}

// Expand returns a ticket with its response thread.
func (c *TicketsController) Expand(id string) (*models.SupportTicket, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ticket, ok := c.findLocked(id)
	if !ok {
		return nil, ErrTicketNotFound
	}
	return &ticket, nil
}

// CanSubmit mirrors the submit button's enabled state: true when the reply
// has content after trimming, or a status change is pending on a ticket
// that is not closed.
func (c *TicketsController) CanSubmit(id, reply string, status models.TicketStatus) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	ticket, ok := c.findLocked(id)
	if !ok {
		return false
	}
	if strings.TrimSpace(reply) != "" {
		return true
	}
	return status != "" && status != ticket.Status && !ticket.Closed()
}

// StatusOptions lists the statuses selectable for a ticket. A closed
// ticket offers nothing but its current terminal value.
func (c *TicketsController) StatusOptions(id string) ([]models.TicketStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ticket, ok := c.findLocked(id)
	if !ok {
		return nil, ErrTicketNotFound
	}
	if ticket.Closed() {
		return []models.TicketStatus{models.TicketStatusClosed}, nil
	}
	return append([]models.TicketStatus(nil), models.TicketStatuses...), nil
}

// Submit runs the combined reply/status action: a non-empty reply is
// posted, a changed status on a non-closed ticket is patched, and when
// neither applies nothing is sent. After any sub-operation succeeds the
// whole list is refetched to pick up new threads and statuses.
func (c *TicketsController) Submit(ctx context.Context, id, reply string, status models.TicketStatus) Mutation {
	c.mu.Lock()

	ticket, ok := c.findLocked(id)
	if !ok {
		c.mu.Unlock()
		return mutationErr(ErrTicketNotFound)
	}

	reply = strings.TrimSpace(reply)
	wantReply := reply != ""
	wantStatus := status != "" && status != ticket.Status
	if wantStatus && ticket.Closed() {
		c.mu.Unlock()
		return mutationErr(ErrTicketClosed)
	}
	if !wantReply && !wantStatus {
		c.mu.Unlock()
		return Mutation{noop: true}
	}

	client := c.client
	c.mu.Unlock()

	if wantReply {
		if _, err := client.Post(ctx, "/support/admin/"+id+"/respond", map[string]string{"message": reply}); err != nil {
			c.log.WithError(err).WithField("ticket_id", id).Error("Ticket reply failed")
			return mutationErr(err)
		}
	}
	if wantStatus {
		if _, err := client.Patch(ctx, "/support/admin/"+id+"/status", map[string]string{"status": string(status)}); err != nil {
			c.log.WithError(err).WithField("ticket_id", id).Error("Ticket status update failed")
			return mutationErr(err)
		}
	}

	c.log.WithFields(map[string]interface{}{
		"ticket_id":      id,
		"replied":        wantReply,
		"status_changed": wantStatus,
	}).Info("Ticket updated")

	if err := c.Load(ctx); err != nil {
		return mutationErr(err)
	}
	return Mutation{}
}

func (c *TicketsController) findLocked(id string) (models.SupportTicket, bool) {
	for i := range c.tickets {
		if c.tickets[i].ID == id {
			return c.tickets[i], true
		}
	}
	return models.SupportTicket{}, false
}
