package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"ekstre/internal/domain"
)

// ListTransactions fetches one page of transactions. The query carries
// exactly the non-empty filter fields.
func (c *Client) ListTransactions(ctx context.Context, filter domain.TransactionFilter) (*domain.TransactionPage, error) {
	var page domain.TransactionPage
	if err := c.get(ctx, "/api/transactions/", filter.Query(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetTransaction fetches a single transaction, optionally converted into
// targetCurrency.
func (c *Client) GetTransaction(ctx context.Context, id int64, targetCurrency string) (*domain.Transaction, error) {
	query := url.Values{}
	if targetCurrency != "" {
		query.Set("target_currency", targetCurrency)
	}
	var tx domain.Transaction
	if err := c.get(ctx, fmt.Sprintf("/api/transactions/%d/", id), query, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// Upload posts a CSV statement as a multipart form. The Content-Type is the
// multipart writer's own, so the boundary survives, and each attempt sends a
// fresh Idempotency-Key so the server can drop duplicates.
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader) (*domain.UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	header := http.Header{
		"Content-Type":    []string{mw.FormDataContentType()},
		"Idempotency-Key": []string{uuid.NewString()},
	}
	var result domain.UploadResult
	if err := c.do(ctx, http.MethodPost, "/api/transactions/upload/", nil, &buf, header, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
