// Package session tracks the client's belief about the current
// authenticated user. It is the only writer of the user record and the only
// component that drives login/logout on the transport gateway.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/slackconnect/cli/internal/logging"
	"github.com/slackconnect/cli/internal/models"
)

// Gateway is the slice of the transport client the manager needs.
type Gateway interface {
	GetCurrentUser(ctx context.Context) (*models.User, error)
	RefreshTokenStatus(ctx context.Context) (*models.TokenStatus, error)
	Logout(ctx context.Context) error

	LoadCredential(ctx context.Context) error
	SetCredential(ctx context.Context, token string) error
	ClearCredential(ctx context.Context) error
	HasCredential() bool
}

// State is a snapshot of the session.
//
// Invariant: IsAuthenticated is true iff User is non-nil and the gateway
// holds a credential. IsLoading is true only during Bootstrap and an
// in-flight Login.
type State struct {
	User            *models.User
	IsLoading       bool
	IsAuthenticated bool
}

type Manager struct {
	gw  Gateway
	log logging.Logger

	mu    sync.Mutex
	state State
}

// NewManager creates a manager in the initial pre-bootstrap state:
// no user, loading, unauthenticated.
func NewManager(gw Gateway, log logging.Logger) *Manager {
	return &Manager{
		gw:    gw,
		log:   log,
		state: State{IsLoading: true},
	}
}

// State returns a copy of the current session snapshot.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.state
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// IsAuthenticated is a convenience accessor.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.IsAuthenticated
}

func (m *Manager) setLoggedOut() {
	m.mu.Lock()
	m.state = State{}
	m.mu.Unlock()
}

func (m *Manager) setAuthenticated(user *models.User) {
	m.mu.Lock()
	m.state = State{User: user, IsAuthenticated: true}
	m.mu.Unlock()
}

// Bootstrap restores the session at startup. With no stored credential it
// settles into the logged-out state immediately; otherwise it asks the
// backend who the credential belongs to. Failures are absorbed into a
// logout, never returned.
func (m *Manager) Bootstrap(ctx context.Context) {
	if err := m.gw.LoadCredential(ctx); err != nil {
		m.log.Warn(ctx, "failed to load stored credential", "error", err)
		m.setLoggedOut()
		return
	}

	if !m.gw.HasCredential() {
		m.setLoggedOut()
		return
	}

	user, err := m.gw.GetCurrentUser(ctx)
	if err != nil {
		m.log.Warn(ctx, "bootstrap user fetch failed, clearing credential", "error", err)
		if cerr := m.gw.ClearCredential(ctx); cerr != nil {
			m.log.Warn(ctx, "failed to clear credential", "error", cerr)
		}
		m.setLoggedOut()
		return
	}

	m.setAuthenticated(user)
}

// Login stores the new credential and fetches the user it belongs to. On any
// failure the credential is cleared, the state returns to logged-out, and
// the error is returned to the caller, which owns user-facing messaging for
// this one flow.
func (m *Manager) Login(ctx context.Context, token string) error {
	m.mu.Lock()
	m.state.IsLoading = true
	m.mu.Unlock()

	if err := m.gw.SetCredential(ctx, token); err != nil {
		m.setLoggedOut()
		return fmt.Errorf("failed to store credential: %w", err)
	}

	user, err := m.gw.GetCurrentUser(ctx)
	if err != nil {
		if cerr := m.gw.ClearCredential(ctx); cerr != nil {
			m.log.Warn(ctx, "failed to clear credential", "error", cerr)
		}
		m.setLoggedOut()
		return fmt.Errorf("login failed: %w", err)
	}

	m.setAuthenticated(user)
	return nil
}

// Logout tells the backend to drop the session, then logs out locally no
// matter what the backend said. Logging out always succeeds from the
// caller's point of view.
func (m *Manager) Logout(ctx context.Context) {
	if m.gw.HasCredential() {
		if err := m.gw.Logout(ctx); err != nil {
			m.log.Warn(ctx, "remote logout failed", "error", err)
		}
	}

	if err := m.gw.ClearCredential(ctx); err != nil {
		m.log.Warn(ctx, "failed to clear credential", "error", err)
	}
	m.setLoggedOut()
}

// RefreshUser re-fetches the current user record and replaces the local
// copy. A no-op without a session; failures are logged and swallowed (a 401
// is already handled by the gateway's expiry hook).
func (m *Manager) RefreshUser(ctx context.Context) {
	if !m.IsAuthenticated() {
		return
	}

	user, err := m.gw.GetCurrentUser(ctx)
	if err != nil {
		m.log.Warn(ctx, "failed to refresh user", "error", err)
		return
	}

	m.mu.Lock()
	if m.state.IsAuthenticated {
		m.state.User = user
	}
	m.mu.Unlock()
}

// CheckTokenValidity probes the backend's Slack credential for the current
// user and updates only the TokenValid field. This is housekeeping: a no-op
// without a session, and failures are logged and swallowed.
func (m *Manager) CheckTokenValidity(ctx context.Context) {
	if !m.IsAuthenticated() {
		return
	}

	status, err := m.gw.RefreshTokenStatus(ctx)
	if err != nil {
		m.log.Warn(ctx, "token validity check failed", "error", err)
		return
	}

	m.mu.Lock()
	if m.state.User != nil {
		m.state.User.TokenValid = status.TokenValid
	}
	m.mu.Unlock()
}

// HandleSessionExpired is registered as the gateway's 401 hook. The gateway
// has already cleared the stored credential; this drops the in-memory
// session so every component observes the logout.
func (m *Manager) HandleSessionExpired() {
	m.setLoggedOut()
}
