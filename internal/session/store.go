// Package session owns the authenticated identity: it drives the auth
// endpoints, keeps the current session in memory, and persists it to a
// durable local store so a new process starts already logged in.
package session

// Storage keys, matching what the API hands back.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
)

// Store persists session values durably. Get returns the empty string for
// an absent key.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(keys ...string) error
	Close() error
}
