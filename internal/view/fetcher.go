// Package view holds the per-page fetch state: default filter ranges,
// loading flags, and the rules that reconcile overlapping responses. Views
// fetch, they never render; presentation lives in internal/render.
package view

import "sync"

// Fetcher orders overlapping loads for a single view. Each load takes a
// sequence token from Begin; Commit accepts only the latest issued token,
// so a slow early response can never overwrite a newer one.
type Fetcher struct {
	mu  sync.Mutex
	seq uint64
}

// Begin registers a new load and returns its sequence token.
func (f *Fetcher) Begin() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	return f.seq
}

// Commit reports whether the load holding token is still the newest. A
// false return means the response is stale and must be discarded.
func (f *Fetcher) Commit(token uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return token == f.seq
}
