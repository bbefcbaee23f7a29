package dashboard

import (
	"context"
	"errors"
	"sync"

	"ecocruise-admin/internal/models"
	"ecocruise-admin/internal/upstream"
	"ecocruise-admin/pkg/logger"
)

var ErrUserNotFound = errors.New("user not found")

// UsersController serves the user directory: three role-partitioned lists
// plus an optional detail view, with the ban toggle applied to every place
// the user appears.
//
// The three role fetches share one error flag: a single failed fetch
// surfaces one error for the page while lists that did load stay populated.
// That imprecision is deliberate and matches the page's established
// behavior.
type UsersController struct {
	mu         sync.Mutex
	generation uint64

	client *upstream.Client
	log    *logger.Logger

	customers []models.User
	drivers   []models.User
	admins    []models.User
	selected  *models.User
	err       error
}

func NewUsersController(client *upstream.Client, log *logger.Logger) *UsersController {
	return &UsersController{
		client: client,
		log:    log.WithPage("users"),
	}
}

// Load fetches the three role lists in parallel.
func (c *UsersController) Load(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.err = nil
	client := c.client
	c.mu.Unlock()

	type roleResult struct {
		role  models.Role
		users []models.User
		err   error
	}

	results := make([]roleResult, 3)
	var wg sync.WaitGroup
	for i, role := range []models.Role{models.RoleCustomer, models.RoleDriver, models.RoleAdmin} {
		wg.Add(1)
		go func(i int, role models.Role) {
			defer wg.Done()
			users, err := fetchUsersByRole(ctx, client, role)
			results[i] = roleResult{role: role, users: users, err: err}
		}(i, role)
	}
	wg.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return nil
	}

	var firstErr error
	for _, r := range results {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		switch r.role {
		case models.RoleCustomer:
			c.customers = r.users
		case models.RoleDriver:
			c.drivers = r.users
		case models.RoleAdmin:
			c.admins = r.users
		}
	}
	c.err = firstErr
	if firstErr != nil {
		c.log.WithError(firstErr).Error("User directory load failed")
	}
	return firstErr
}

func fetchUsersByRole(ctx context.Context, client *upstream.Client, role models.Role) ([]models.User, error) {
	payload, err := client.Get(ctx, "/admin/users?role="+string(role))
	if err != nil {
		return nil, err
	}
	var users []models.User
	if _, err := upstream.DecodeList(payload, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Lists returns copies of the three role lists and the shared error flag.
func (c *UsersController) Lists() (customers, drivers, admins []models.User, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyUsers(c.customers), copyUsers(c.drivers), copyUsers(c.admins), c.err
}

// Select opens the detail view for a user already present in one of the
// lists.
func (c *UsersController) Select(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, list := range [][]models.User{c.customers, c.drivers, c.admins} {
		for i := range list {
			if list[i].ID == id {
				selected := list[i]
				c.selected = &selected
				return nil
			}
		}
	}
	return ErrUserNotFound
}

func (c *UsersController) Deselect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = nil
}

// Selected returns the open detail view, if any.
func (c *UsersController) Selected() *models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return nil
	}
	selected := *c.selected
	return &selected
}

// ToggleBan flips the user's banned flag: the inverse of the current value
// is sent upstream and applied to all three lists plus any open detail
// view. The optimistic flip is rolled back when the upstream call fails.
func (c *UsersController) ToggleBan(ctx context.Context, id string) Mutation {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, found := c.findLocked(id)
	if !found {
		return mutationErr(ErrUserNotFound)
	}
	target := !current.IsBanned

	result := runMutation(
		func() func() {
			c.applyBanLocked(id, target)
			return func() { c.applyBanLocked(id, !target) }
		},
		func() error {
			_, err := c.client.Patch(ctx, "/admin/users/"+id+"/ban", map[string]bool{"isBanned": target})
			return err
		},
	)

	if result.Failed() {
		c.log.WithError(result.Err).WithField("user_id", id).Error("Ban toggle failed")
	} else {
		c.log.WithFields(map[string]interface{}{"user_id": id, "banned": target}).Info("Ban status updated")
	}
	return result
}

func (c *UsersController) findLocked(id string) (models.User, bool) {
	for _, list := range [][]models.User{c.customers, c.drivers, c.admins} {
		for i := range list {
			if list[i].ID == id {
				return list[i], true
			}
		}
	}
	if c.selected != nil && c.selected.ID == id {
		return *c.selected, true
	}
	return models.User{}, false
}

func (c *UsersController) applyBanLocked(id string, banned bool) {
	for _, list := range [][]models.User{c.customers, c.drivers, c.admins} {
		for i := range list {
			if list[i].ID == id {
				list[i].IsBanned = banned
			}
		}
	}
	if c.selected != nil && c.selected.ID == id {
		c.selected.IsBanned = banned
	}
}

func copyUsers(users []models.User) []models.User {
	if users == nil {
		return nil
	}
	out := make([]models.User, len(users))
	copy(out, users)
	return out
}
