package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// ErrRemoteUnavailable is returned when remote validation is requested but
// no validator is configured or the validator cannot be reached.
var ErrRemoteUnavailable = errors.New("remote validation service unavailable")

// Document is the wire shape produced by the remote validation service.
// It mirrors Preview minus the provenance metadata, so the display layer
// can treat both uniformly.
type Document struct {
	Columns     []string   `json:"columns"`
	Rows        [][]string `json:"rows"`
	TotalRows   int        `json:"totalRows"`
	InvalidRows int        `json:"invalidRows"`
	Delimiter   string     `json:"delimiter"`
	Messages    []string   `json:"messages,omitempty"`
}

// Client talks to the remote validation service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the validator at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Validate uploads the file to the validator and decodes its document.
// A non-2xx status is surfaced as an error carrying the service's message
// body when one is present.
func (c *Client) Validate(ctx context.Context, fileName string, data []byte) (*Document, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/validate", &body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		trimmed := strings.TrimSpace(string(msg))
		if trimmed == "" {
			trimmed = resp.Status
		}
		return nil, fmt.Errorf("validator rejected upload: %s", trimmed)
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode validator response: %w", err)
	}
	if len(doc.Columns) == 0 {
		return nil, fmt.Errorf("validator response has no columns")
	}

	return &doc, nil
}
