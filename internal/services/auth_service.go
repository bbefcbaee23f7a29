package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecocruise-admin/internal/config"
	"ecocruise-admin/internal/models"
	"ecocruise-admin/internal/upstream"
	"ecocruise-admin/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrNotAdmin     = errors.New("account is not an admin")
	ErrInvalidToken = errors.New("invalid session token")
)

// AuthService signs admins in against the upstream API and manages their
// dashboard sessions. The dashboard never sees passwords beyond the login
// call; the upstream cookie is held server-side in the session store and a
// signed token referencing the session id is what reaches the browser.
type AuthService struct {
	client *upstream.Client
	store  SessionStore
	cfg    *config.SecurityConfig
	log    *logger.Logger
}

func NewAuthService(client *upstream.Client, store SessionStore, cfg *config.SecurityConfig, log *logger.Logger) *AuthService {
	return &AuthService{
		client: client,
		store:  store,
		cfg:    cfg,
		log:    log.WithField("component", "auth"),
	}
}

// Login authenticates against the upstream API and creates a dashboard
// session. Non-admin accounts are rejected even when upstream accepts the
// credentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, string, error) {
	result, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	if result.User.Role != models.RoleAdmin {
		// Drop the upstream session we just opened for the wrong role.
		if err := s.client.WithSession(result.SessionCookie).Logout(ctx); err != nil {
			s.log.WithError(err).Warn("Failed to close non-admin upstream session")
		}
		return nil, "", ErrNotAdmin
	}

	now := time.Now()
	session := &Session{
		ID:             uuid.New().String(),
		UpstreamCookie: result.SessionCookie,
		User:           *result.User,
		CreatedAt:      now,
		ExpiresAt:      now.Add(s.cfg.SessionTTL),
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, "", err
	}

	token, err := s.signToken(session)
	if err != nil {
		return nil, "", err
	}

	s.log.WithSessionID(session.ID).WithField("email", email).Info("Admin logged in")
	return session, token, nil
}

// Authenticate resolves a browser token back to its session. An expired or
// unknown session yields ErrSessionNotFound; a malformed token yields
// ErrInvalidToken.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*Session, error) {
	sessionID, err := s.parseToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Expired(time.Now()) {
		_ = s.store.Delete(ctx, session.ID)
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Logout closes the upstream session and drops the dashboard one. The
// dashboard session is removed even when the upstream call fails.
func (s *AuthService) Logout(ctx context.Context, session *Session) error {
	if err := s.client.WithSession(session.UpstreamCookie).Logout(ctx); err != nil {
		s.log.WithSessionID(session.ID).WithError(err).Warn("Upstream logout failed")
	}
	if err := s.store.Delete(ctx, session.ID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.log.WithSessionID(session.ID).Info("Admin logged out")
	return nil
}

// Refresh re-validates the session's admin against upstream, picking up
// profile edits and a revoked upstream cookie.
func (s *AuthService) Refresh(ctx context.Context, session *Session) (*Session, error) {
	user, err := s.client.WithSession(session.UpstreamCookie).Me(ctx)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			_ = s.store.Delete(ctx, session.ID)
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	session.User = *user
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *AuthService) signToken(session *Session) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   session.ID,
		IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) parseToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
