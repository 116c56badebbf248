package upload

import (
	"context"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ekstre/internal/api"
	"ekstre/internal/domain"
)

// stubUploader returns a canned result and counts requests.
type stubUploader struct {
	calls  atomic.Int32
	result *domain.UploadResult
	err    error
}

func (s *stubUploader) Upload(ctx context.Context, filename string, file io.Reader) (*domain.UploadResult, error) {
	s.calls.Add(1)
	return s.result, s.err
}

func newTestFlow(uploader Uploader, refreshes *atomic.Int32) *Flow {
	f := NewFlow(uploader, func() { refreshes.Add(1) })
	f.openFile = func(string) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader("date,amount\n")), nil
	}
	// Short delays so tests observe the scheduled refresh quickly.
	f.delay = 10 * time.Millisecond
	f.delayNoImport = 20 * time.Millisecond
	return f
}

func TestFlow_TopLevelCountSucceedsAndSchedulesOneRefresh(t *testing.T) {
	var refreshes atomic.Int32
	f := newTestFlow(&stubUploader{result: &domain.UploadResult{ImportedCount: 4}}, &refreshes)

	f.Select("statement.csv")
	require.NoError(t, f.Start(context.Background()))

	assert.Equal(t, StateSucceeded, f.State())
	require.Eventually(t, func() bool { return refreshes.Load() == 1 }, time.Second, time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), refreshes.Load(), "exactly one dependent refresh")
}

func TestFlow_BatchOnlyCountSucceeds(t *testing.T) {
	var refreshes atomic.Int32
	result := &domain.UploadResult{Batch: &domain.ImportBatch{ImportedRows: 2}}
	f := newTestFlow(&stubUploader{result: result}, &refreshes)

	f.Select("statement.csv")
	require.NoError(t, f.Start(context.Background()))

	assert.Equal(t, StateSucceeded, f.State())
	require.Eventually(t, func() bool { return refreshes.Load() == 1 }, time.Second, time.Millisecond)
}

func TestFlow_ZeroImportsZeroFailuresStillSucceeds(t *testing.T) {
	var refreshes atomic.Int32
	result := &domain.UploadResult{Message: "File processed but no transactions found."}
	f := newTestFlow(&stubUploader{result: result}, &refreshes)

	f.Select("empty.csv")
	require.NoError(t, f.Start(context.Background()))

	assert.Equal(t, StateSucceeded, f.State(), "a zero/zero response is not an error")
	assert.Empty(t, f.Err())
	require.Eventually(t, func() bool { return refreshes.Load() == 1 }, time.Second, time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), refreshes.Load())
}

func TestFlow_NoFileIsLocalValidation(t *testing.T) {
	var refreshes atomic.Int32
	uploader := &stubUploader{result: &domain.UploadResult{}}
	f := newTestFlow(uploader, &refreshes)

	err := f.Start(context.Background())

	assert.ErrorIs(t, err, domain.ErrNoFileSelected)
	assert.Equal(t, int32(0), uploader.calls.Load(), "no request leaves the client")
	assert.NotEmpty(t, f.Err())
	assert.Zero(t, refreshes.Load())
}

func TestFlow_ServerErrorFailsWithExtractedMessage(t *testing.T) {
	var refreshes atomic.Int32
	uploader := &stubUploader{err: &api.Error{Status: 400, Message: "File must be a CSV file"}}
	f := newTestFlow(uploader, &refreshes)

	f.Select("notes.txt")
	require.Error(t, f.Start(context.Background()))

	assert.Equal(t, StateFailed, f.State())
	assert.Equal(t, "File must be a CSV file", f.Err())

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, refreshes.Load(), "failures schedule no refresh")

	f.CloseAndRefresh()
	assert.Zero(t, refreshes.Load(), "closing a failed upload does not refresh")
}

func TestFlow_SelectClearsPreviousOutcome(t *testing.T) {
	var refreshes atomic.Int32
	uploader := &stubUploader{err: &api.Error{Status: 400, Message: "bad file"}}
	f := newTestFlow(uploader, &refreshes)

	f.Select("bad.csv")
	require.Error(t, f.Start(context.Background()))
	require.Equal(t, StateFailed, f.State())

	f.Select("good.csv")

	assert.Equal(t, StateSelecting, f.State())
	assert.Empty(t, f.Err())
	assert.Nil(t, f.Result())
}

func TestFlow_CloseAndRefreshFiresOnceImmediately(t *testing.T) {
	var refreshes atomic.Int32
	f := newTestFlow(&stubUploader{result: &domain.UploadResult{ImportedCount: 1}}, &refreshes)
	f.delay = time.Hour // the timer alone would never fire within the test

	f.Select("statement.csv")
	require.NoError(t, f.Start(context.Background()))

	f.CloseAndRefresh()

	assert.Equal(t, int32(1), refreshes.Load())
	assert.Equal(t, StateIdle, f.State())

	// Neither the cancelled timer nor a second close may refresh again.
	f.CloseAndRefresh()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), refreshes.Load())
}

func TestFlow_OpenFileErrorFails(t *testing.T) {
	var refreshes atomic.Int32
	f := NewFlow(&stubUploader{}, func() { refreshes.Add(1) })

	f.Select("/nonexistent/statement.csv")
	err := f.Start(context.Background())

	require.Error(t, err)
	assert.Equal(t, StateFailed, f.State())
	assert.NotEmpty(t, f.Err())
}
