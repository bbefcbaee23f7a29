package services

import (
	"sync"

	"ecocruise-admin/internal/dashboard"
	"ecocruise-admin/internal/upstream"
	"ecocruise-admin/pkg/logger"
)

// WorkspaceRegistry hands each session its own controller workspace, built
// lazily on first use and dropped on logout. The workspace's upstream
// client is bound to the session's cookie.
type WorkspaceRegistry struct {
	mu         sync.Mutex
	workspaces map[string]*dashboard.Workspace

	client *upstream.Client
	log    *logger.Logger
}

func NewWorkspaceRegistry(client *upstream.Client, log *logger.Logger) *WorkspaceRegistry {
	return &WorkspaceRegistry{
		workspaces: make(map[string]*dashboard.Workspace),
		client:     client,
		log:        log,
	}
}

func (r *WorkspaceRegistry) For(session *Session) *dashboard.Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ws, ok := r.workspaces[session.ID]; ok {
		return ws
	}

	ws := dashboard.NewWorkspace(
		r.client.WithSession(session.UpstreamCookie),
		r.log.WithSessionID(session.ID),
	)
	r.workspaces[session.ID] = ws
	return ws
}

func (r *WorkspaceRegistry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.workspaces, sessionID)
}
