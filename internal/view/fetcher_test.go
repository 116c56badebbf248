package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetcher_LatestWins(t *testing.T) {
	var f Fetcher

	first := f.Begin()
	second := f.Begin()

	// The slow first response arrives after the second: it must be dropped,
	// no matter the arrival order.
	assert.True(t, f.Commit(second))
	assert.False(t, f.Commit(first))
}

func TestFetcher_StaleNeverOverwritesNewer(t *testing.T) {
	var f Fetcher

	a := f.Begin()
	b := f.Begin()
	c := f.Begin()

	assert.False(t, f.Commit(a))
	assert.False(t, f.Commit(b))
	assert.True(t, f.Commit(c))
}

func TestFetcher_SingleLoadCommits(t *testing.T) {
	var f Fetcher
	token := f.Begin()
	assert.True(t, f.Commit(token))
}
