package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog/log"

	"ekstre/internal/api"
	"ekstre/internal/domain"
)

// AuthAPI is the slice of the API client the manager drives.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	Register(ctx context.Context, username, email, password, password2 string) (*api.AuthResponse, error)
}

// Manager is the session store's front: it rehydrates from durable storage
// on construction, so the first read after a restart already sees the
// logged-in state, and it is the only writer of that storage besides the
// 401 hook (which calls Clear).
type Manager struct {
	store Store
	auth  AuthAPI

	mu      sync.RWMutex
	current domain.Session
}

// NewManager opens a manager over the given store, synchronously reading
// back any persisted session.
func NewManager(store Store) (*Manager, error) {
	m := &Manager{store: store}
	if err := m.rehydrate(); err != nil {
		return nil, fmt.Errorf("restoring session: %w", err)
	}
	return m, nil
}

// SetAPI wires the auth endpoints in. It exists because the API client and
// the manager reference each other: the client reads tokens from the
// manager, the manager logs in through the client.
func (m *Manager) SetAPI(auth AuthAPI) {
	m.auth = auth
}

func (m *Manager) rehydrate() error {
	access, err := m.store.Get(KeyAccessToken)
	if err != nil {
		return err
	}
	refresh, err := m.store.Get(KeyRefreshToken)
	if err != nil {
		return err
	}
	userJSON, err := m.store.Get(KeyUser)
	if err != nil {
		return err
	}

	session := domain.Session{AccessToken: access, RefreshToken: refresh}
	if userJSON != "" {
		if err := json.Unmarshal([]byte(userJSON), &session.User); err != nil {
			// A corrupt user record should not lock the user out.
			log.Warn().Err(err).Msg("discarding unreadable stored user")
		}
	}

	m.mu.Lock()
	m.current = session
	m.mu.Unlock()
	return nil
}

// Login authenticates and persists the resulting session. Server rejections
// (invalid credentials) propagate unchanged.
func (m *Manager) Login(ctx context.Context, email, password string) (domain.Session, error) {
	resp, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return domain.Session{}, err
	}
	return m.establish(resp)
}

// Register creates an account and persists the resulting session. A
// password-confirmation mismatch is rejected here, before any request is
// sent.
func (m *Manager) Register(ctx context.Context, username, email, password, password2 string) (domain.Session, error) {
	if password != password2 {
		return domain.Session{}, domain.ErrPasswordMismatch
	}
	resp, err := m.auth.Register(ctx, username, email, password, password2)
	if err != nil {
		return domain.Session{}, err
	}
	return m.establish(resp)
}

func (m *Manager) establish(resp *api.AuthResponse) (domain.Session, error) {
	userJSON, err := json.Marshal(resp.User)
	if err != nil {
		return domain.Session{}, err
	}
	if err := m.store.Set(KeyAccessToken, resp.Access); err != nil {
		return domain.Session{}, fmt.Errorf("persisting session: %w", err)
	}
	if err := m.store.Set(KeyRefreshToken, resp.Refresh); err != nil {
		return domain.Session{}, fmt.Errorf("persisting session: %w", err)
	}
	if err := m.store.Set(KeyUser, string(userJSON)); err != nil {
		return domain.Session{}, fmt.Errorf("persisting session: %w", err)
	}

	session := domain.Session{
		User:         resp.User,
		AccessToken:  resp.Access,
		RefreshToken: resp.Refresh,
	}
	m.mu.Lock()
	m.current = session
	m.mu.Unlock()
	return session, nil
}

// Logout clears the session unconditionally. It cannot fail: a store error
// is logged and the in-memory session is dropped regardless.
func (m *Manager) Logout() {
	if err := m.store.Delete(KeyAccessToken, KeyRefreshToken, KeyUser); err != nil {
		log.Warn().Err(err).Msg("clearing stored session")
	}
	m.mu.Lock()
	m.current = domain.Session{}
	m.mu.Unlock()
}

// Clear is the 401 path; the server has already invalidated the
// credentials, so it behaves exactly like Logout.
func (m *Manager) Clear() {
	m.Logout()
}

// Current returns the in-memory session and whether it is authenticated.
func (m *Manager) Current() (domain.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current, m.current.Authenticated()
}

// AccessToken implements api.TokenSource.
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.AccessToken
}

// TokenExpiry reports when the stored access token expires. The token is
// parsed without signature verification; the client has no key and only
// needs the claim for display.
func (m *Manager) TokenExpiry() (time.Time, error) {
	m.mu.RLock()
	token := m.current.AccessToken
	m.mu.RUnlock()
	if token == "" {
		return time.Time{}, domain.ErrNoSession
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("parsing access token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("access token has no expiry claim")
	}
	return claims.ExpiresAt.Time, nil
}
