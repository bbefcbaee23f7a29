package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ecocruise-admin/internal/config"
	"ecocruise-admin/internal/models"
	"ecocruise-admin/pkg/logger"
)

// Client talks to the EcoCruise platform API. A zero-session client can
// only call Login; WithSession binds a copy to an admin's upstream session
// cookie, which is sent on every request.
type Client struct {
	baseURL     string
	cookieName  string
	cookieValue string
	httpClient  *http.Client
	log         *logger.Logger
}

func NewClient(cfg *config.UpstreamConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		cookieName: cfg.SessionCookie,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		log: log,
	}
}

// WithSession returns a copy of the client that authenticates with the
// given upstream session cookie value.
func (c *Client) WithSession(cookieValue string) *Client {
	bound := *c
	bound.cookieValue = cookieValue
	return &bound
}

func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

func (c *Client) Patch(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.do(ctx, http.MethodPatch, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: c.cookieName, Value: c.cookieValue})
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	c.log.LogUpstreamRequest(method, path, resp.StatusCode, time.Since(start))

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode >= 400:
		var body errorBody
		// A malformed error body still yields a usable status-code error.
		_ = json.Unmarshal(payload, &body)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: body.text()}
	}

	return payload, nil
}

// LoginResult carries the authenticated admin and the upstream session
// cookie value captured from the login response.
type LoginResult struct {
	User          *models.User
	SessionCookie string
}

// Login exchanges credentials for an upstream session. The session cookie is
// read from the Set-Cookie header matching the configured cookie name.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	data, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("failed to encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read login response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		var body errorBody
		_ = json.Unmarshal(payload, &body)
		msg := body.text()
		if msg == "" {
			msg = "invalid email or password"
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if resp.StatusCode >= 400 {
		var body errorBody
		_ = json.Unmarshal(payload, &body)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: body.text()}
	}

	var cookieValue string
	for _, cookie := range resp.Cookies() {
		if cookie.Name == c.cookieName {
			cookieValue = cookie.Value
			break
		}
	}
	if cookieValue == "" {
		return nil, fmt.Errorf("login response carried no %q cookie", c.cookieName)
	}

	var user models.User
	if err := DecodeUser(payload, &user); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}

	return &LoginResult{User: &user, SessionCookie: cookieValue}, nil
}

// Me fetches the authenticated user behind the bound session.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	payload, err := c.Get(ctx, "/auth/me")
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := DecodeUser(payload, &user); err != nil {
		return nil, fmt.Errorf("failed to decode current user: %w", err)
	}
	return &user, nil
}

// Logout invalidates the bound upstream session. A failed logout is not
// fatal to dropping the dashboard session.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.Post(ctx, "/auth/logout", nil)
	return err
}

// DecodeUser tolerates the {user}, {data} and bare-object reply shapes the
// upstream auth endpoints mix.
func DecodeUser(payload []byte, dest *models.User) error {
	var envelope struct {
		User *models.User    `json:"user"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return err
	}
	if envelope.User != nil {
		*dest = *envelope.User
		return nil
	}
	if len(envelope.Data) > 0 && envelope.Data[0] == '{' {
		return json.Unmarshal(envelope.Data, dest)
	}
	return json.Unmarshal(payload, dest)
}
