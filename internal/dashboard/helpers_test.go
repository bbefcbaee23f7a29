package dashboard

import (
	"net/http/httptest"
	"testing"
	"time"

	"ecocruise-admin/internal/config"
	"ecocruise-admin/internal/upstream"
	"ecocruise-admin/pkg/logger"
)

func newTestClient(t *testing.T, server *httptest.Server) *upstream.Client {
	t.Helper()
	client := upstream.NewClient(&config.UpstreamConfig{
		BaseURL:        server.URL,
		SessionCookie:  "token",
		RequestTimeout: 5 * time.Second,
	}, logger.NewNop())
	return client.WithSession("test-session")
}
