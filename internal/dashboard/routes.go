package dashboard

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"ecocruise-admin/internal/models"
	"ecocruise-admin/internal/upstream"
	"ecocruise-admin/pkg/logger"
)

var (
	ErrMissingFields        = errors.New("all fields are required")
	ErrInvalidNumber        = errors.New("price and student discount must be numeric")
	ErrRouteNotFound        = errors.New("route not found")
	ErrConfirmationRequired = errors.New("delete requires confirmation")
)

type RouteMode string

const (
	ModeBrowse RouteMode = "browse"
	ModeCreate RouteMode = "create"
	ModeEdit   RouteMode = "edit"
)

// RoutesController owns the route CRUD state machine: Browse with the list
// rendered, Create with an empty form, Edit with the form pre-populated
// from a selected route. Submit and Cancel both land back in Browse.
type RoutesController struct {
	mu         sync.Mutex
	generation uint64

	client *upstream.Client
	log    *logger.Logger

	routes  []models.Route
	mode    RouteMode
	form    models.RouteInput
	editing *models.Route
	err     error
}

func NewRoutesController(client *upstream.Client, log *logger.Logger) *RoutesController {
	return &RoutesController{
		client: client,
		log:    log.WithPage("routes"),
		mode:   ModeBrowse,
	}
}

func (c *RoutesController) Load(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.err = nil
	client := c.client
	c.mu.Unlock()

	payload, err := client.Get(ctx, "/admin/routes")
	var routes []models.Route
	if err == nil {
		_, err = upstream.DecodeList(payload, &routes)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return nil
	}
	if err != nil {
		c.err = err
		c.log.WithError(err).Error("Route list load failed")
		return err
	}
	c.routes = routes
	return nil
}

func (c *RoutesController) Routes() ([]models.Route, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Route, len(c.routes))
	copy(out, c.routes)
	return out, c.err
}

func (c *RoutesController) Mode() RouteMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *RoutesController) Form() models.RouteInput {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// BeginCreate opens an empty create form.
func (c *RoutesController) BeginCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = ModeCreate
	c.editing = nil
	c.form = models.RouteInput{}
}

// BeginEdit pre-populates the form from the selected route.
func (c *RoutesController) BeginEdit(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.routes {
		if c.routes[i].ID == id {
			route := c.routes[i]
			c.editing = &route
			c.mode = ModeEdit
			c.form = models.RouteInput{
				StartPoint:      route.StartPoint,
				EndPoint:        route.EndPoint,
				Price:           strconv.FormatFloat(route.Price, 'f', -1, 64),
				StudentDiscount: strconv.FormatFloat(route.StudentDiscount, 'f', -1, 64),
			}
			return nil
		}
	}
	return ErrRouteNotFound
}

// Cancel abandons the form and returns to Browse.
func (c *RoutesController) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetFormLocked()
}

func (c *RoutesController) SetForm(form models.RouteInput) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = form
}

// Submit validates the form and dispatches the create or update. Validation
// failures are rejected before any network call is issued.
func (c *RoutesController) Submit(ctx context.Context) Mutation {
	c.mu.Lock()
	defer c.mu.Unlock()

	body, err := validateRouteForm(c.form)
	if err != nil {
		return mutationErr(err)
	}

	switch c.mode {
	case ModeCreate:
		return c.createLocked(ctx, body)
	case ModeEdit:
		return c.updateLocked(ctx, body)
	default:
		return mutationErr(errors.New("no form open"))
	}
}

// createLocked posts the new route and prepends the created record to the
// local list without a full refetch.
func (c *RoutesController) createLocked(ctx context.Context, body map[string]interface{}) Mutation {
	payload, err := c.client.Post(ctx, "/admin/routes", body)
	if err != nil {
		c.log.WithError(err).Error("Route create failed")
		return mutationErr(err)
	}

	var created models.Route
	if err := upstream.DecodeItem(payload, &created); err != nil {
		return mutationErr(err)
	}

	c.routes = append([]models.Route{created}, c.routes...)
	c.resetFormLocked()
	c.log.WithField("route_id", created.ID).Info("Route created")
	return Mutation{}
}

// updateLocked patches the route and replaces the matching record in place.
func (c *RoutesController) updateLocked(ctx context.Context, body map[string]interface{}) Mutation {
	if c.editing == nil {
		return mutationErr(ErrRouteNotFound)
	}
	id := c.editing.ID

	payload, err := c.client.Patch(ctx, "/admin/routes/"+id, body)
	if err != nil {
		c.log.WithError(err).WithField("route_id", id).Error("Route update failed")
		return mutationErr(err)
	}

	var updated models.Route
	if err := upstream.DecodeItem(payload, &updated); err != nil {
		return mutationErr(err)
	}

	for i := range c.routes {
		if c.routes[i].ID == id {
			c.routes[i] = updated
		}
	}
	c.resetFormLocked()
	c.log.WithField("route_id", id).Info("Route updated")
	return Mutation{}
}

// Delete is request-then-reconcile: the upstream call goes first and the
// record leaves local state only when it succeeds. confirmed must carry the
// user's explicit confirmation.
func (c *RoutesController) Delete(ctx context.Context, id string, confirmed bool) Mutation {
	if !confirmed {
		return mutationErr(ErrConfirmationRequired)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.client.Delete(ctx, "/admin/routes/"+id); err != nil {
		c.log.WithError(err).WithField("route_id", id).Error("Route delete failed")
		return mutationErr(err)
	}

	kept := c.routes[:0]
	for _, r := range c.routes {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	c.routes = kept
	c.log.WithField("route_id", id).Info("Route deleted")
	return Mutation{}
}

func (c *RoutesController) resetFormLocked() {
	c.mode = ModeBrowse
	c.editing = nil
	c.form = models.RouteInput{}
}

// validateRouteForm enforces the four required fields and coerces price and
// discount to numbers, producing the upstream request body.
func validateRouteForm(form models.RouteInput) (map[string]interface{}, error) {
	if strings.TrimSpace(form.StartPoint) == "" ||
		strings.TrimSpace(form.EndPoint) == "" ||
		strings.TrimSpace(form.Price) == "" ||
		strings.TrimSpace(form.StudentDiscount) == "" {
		return nil, ErrMissingFields
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(form.Price), 64)
	if err != nil {
		return nil, ErrInvalidNumber
	}
	discount, err := strconv.ParseFloat(strings.TrimSpace(form.StudentDiscount), 64)
	if err != nil {
		return nil, ErrInvalidNumber
	}

	return map[string]interface{}{
		"startPoint":      form.StartPoint,
		"endPoint":        form.EndPoint,
		"price":           price,
		"studentDiscount": discount,
	}, nil
}
