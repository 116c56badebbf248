package domain

import "time"

// ImportBatch is the server's record of one CSV upload attempt.
type ImportBatch struct {
	ID           int64     `json:"id"`
	UploadedAt   time.Time `json:"uploaded_at"`
	Filename     string    `json:"filename"`
	TotalRows    int       `json:"total_rows"`
	ImportedRows int       `json:"imported_rows"`
	FailedRows   int       `json:"failed_rows"`
}

// UploadResult is the response to a CSV upload. Depending on the server
// version the row counts appear at the top level, nested under the batch,
// or both; Imported and Failed resolve whichever is present.
type UploadResult struct {
	Batch         *ImportBatch `json:"batch,omitempty"`
	ImportedCount int          `json:"imported_count"`
	FailedCount   int          `json:"failed_count"`
	Errors        []string     `json:"errors,omitempty"`
	Message       string       `json:"message,omitempty"`
}

func (r UploadResult) Imported() int {
	if r.ImportedCount > 0 {
		return r.ImportedCount
	}
	if r.Batch != nil {
		return r.Batch.ImportedRows
	}
	return 0
}

func (r UploadResult) Failed() int {
	if r.FailedCount > 0 {
		return r.FailedCount
	}
	if r.Batch != nil {
		return r.Batch.FailedRows
	}
	return 0
}
