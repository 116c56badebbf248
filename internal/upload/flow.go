// Package upload drives one CSV upload from file selection through the
// server's verdict and the dependent-view refresh that follows it.
package upload

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"ekstre/internal/api"
	"ekstre/internal/domain"
)

// State of the upload flow.
type State string

const (
	StateIdle      State = "idle"
	StateSelecting State = "selecting"
	StateUploading State = "uploading"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// Refresh delays after a successful upload. The longer delay applies when
// the server reported neither imports nor failures; that response still
// counts as success, matching the server's own 200 for it.
const (
	refreshDelay         = 1500 * time.Millisecond
	refreshDelayNoImport = 2 * time.Second
)

// Uploader is the slice of the API client the flow drives.
type Uploader interface {
	Upload(ctx context.Context, filename string, file io.Reader) (*domain.UploadResult, error)
}

// Flow is the upload state machine: idle → selecting → uploading →
// succeeded or failed. A successful upload schedules exactly one refresh of
// the dependent views, after a short delay so the server finishes
// committing the batch.
type Flow struct {
	api     Uploader
	refresh func()

	// openFile is swapped out by tests.
	openFile func(string) (io.ReadCloser, error)

	delay         time.Duration
	delayNoImport time.Duration

	mu        sync.Mutex
	state     State
	path      string
	result    *domain.UploadResult
	errMsg    string
	timer     *time.Timer
	refreshed bool
}

// NewFlow creates an idle flow. refresh is invoked once per successful
// upload, either by the scheduled timer or by CloseAndRefresh, whichever
// comes first.
func NewFlow(api Uploader, refresh func()) *Flow {
	return &Flow{
		api:           api,
		refresh:       refresh,
		openFile:      func(path string) (io.ReadCloser, error) { return os.Open(path) },
		delay:         refreshDelay,
		delayNoImport: refreshDelayNoImport,
		state:         StateIdle,
	}
}

// Select chooses the file to upload, clearing any previous result or error.
func (f *Flow) Select(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.state = StateSelecting
	f.path = path
	f.result = nil
	f.errMsg = ""
	f.refreshed = false
}

// Start uploads the selected file. With no file selected it surfaces a
// local validation message and never contacts the server.
func (f *Flow) Start(ctx context.Context) error {
	f.mu.Lock()
	if f.path == "" {
		f.errMsg = "select a file first"
		f.mu.Unlock()
		return domain.ErrNoFileSelected
	}
	path := f.path
	f.state = StateUploading
	f.errMsg = ""
	f.mu.Unlock()

	file, err := f.openFile(path)
	if err != nil {
		f.fail(err.Error())
		return err
	}
	defer file.Close()

	result, err := f.api.Upload(ctx, filepath.Base(path), file)
	if err != nil {
		f.fail(failureMessage(err))
		return err
	}

	f.mu.Lock()
	f.state = StateSucceeded
	f.result = result
	delay := f.delayNoImport
	if result.Imported() > 0 || result.Batch != nil {
		delay = f.delay
	}
	if !f.refreshed && f.timer == nil {
		f.timer = time.AfterFunc(delay, f.fireRefresh)
	}
	f.mu.Unlock()

	log.Info().
		Int("imported", result.Imported()).
		Int("failed", result.Failed()).
		Msg("upload accepted")
	return nil
}

// CloseAndRefresh is the manual "close and refresh" action: it cancels the
// scheduled refresh, fires it immediately if it has not already run, and
// returns the flow to idle.
func (f *Flow) CloseAndRefresh() {
	f.mu.Lock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	succeeded := f.state == StateSucceeded
	f.state = StateIdle
	f.path = ""
	f.mu.Unlock()
	if succeeded {
		f.fireRefresh()
	}
}

// fireRefresh invokes the dependent-view refresh at most once per upload.
func (f *Flow) fireRefresh() {
	f.mu.Lock()
	if f.refreshed {
		f.mu.Unlock()
		return
	}
	f.refreshed = true
	f.timer = nil
	fn := f.refresh
	f.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (f *Flow) fail(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateFailed
	f.errMsg = message
}

// State returns the current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Result returns the server's response after a successful upload.
func (f *Flow) Result() *domain.UploadResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

// Err returns the inline error message, empty when there is none.
func (f *Flow) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// failureMessage reduces an upload error to the one line shown inline.
func failureMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
