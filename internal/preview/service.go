package preview

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"tabledeck/internal/csv"
)

// Service owns the currently loaded preview. State is transient and scoped
// to one file at a time: loading a new preview replaces the previous one.
//
// The parsing core itself is stateless; the mutex only guards the current
// preview so concurrent HTTP handlers are safe.
type Service struct {
	mu      sync.Mutex
	current *Preview

	rowCap int
	strict bool
	remote *Client // nil when no remote validator is configured
}

// NewService creates a Service. rowCap bounds the number of rows kept for
// display (zero or less disables the cap). remote may be nil.
func NewService(rowCap int, strict bool, remote *Client) *Service {
	return &Service{
		rowCap: rowCap,
		strict: strict,
		remote: remote,
	}
}

// RemoteConfigured reports whether a remote validation client is attached.
func (s *Service) RemoteConfigured() bool {
	return s.remote != nil
}

// LoadLocal parses data with the in-process parser and makes the result
// the current preview.
func (s *Service) LoadLocal(ctx context.Context, fileName string, data []byte) (*Preview, error) {
	data = sanitizeUTF8(data)

	table, err := csv.ParseWith(string(data), csv.Options{Strict: s.strict})
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", fileName, err)
	}

	p := s.fromTable(table, ProvenanceLocal, fileName)
	s.set(p)
	return p, nil
}

// LoadRemote sends data to the remote validation service and makes its
// response the current preview. The remote document is structurally
// interchangeable with a local parse result; only the provenance tag and
// the diagnostic messages differ.
func (s *Service) LoadRemote(ctx context.Context, fileName string, data []byte) (*Preview, error) {
	if s.remote == nil {
		return nil, ErrRemoteUnavailable
	}

	doc, err := s.remote.Validate(ctx, fileName, data)
	if err != nil {
		return nil, fmt.Errorf("remote validation of %s: %w", fileName, err)
	}

	p := &Preview{
		ID:          uuid.NewString(),
		Provenance:  ProvenanceRemote,
		FileName:    fileName,
		Columns:     doc.Columns,
		Rows:        boundRows(doc.Rows, s.rowCap),
		TotalRows:   doc.TotalRows,
		InvalidRows: doc.InvalidRows,
		Delimiter:   doc.Delimiter,
		Messages:    doc.Messages,
		LoadedAt:    time.Now(),
	}
	s.set(p)
	return p, nil
}

// LoadDemo loads the built-in demonstration dataset.
func (s *Service) LoadDemo(ctx context.Context) (*Preview, error) {
	table, err := csv.Parse(demoCSV)
	if err != nil {
		return nil, fmt.Errorf("demo data: %w", err)
	}

	p := s.fromTable(table, ProvenanceDemo, demoFileName)
	s.set(p)
	return p, nil
}

// Current returns the loaded preview, or false when none is loaded.
func (s *Service) Current() (*Preview, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, false
	}
	return s.current, true
}

// Clear discards the current preview.
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

func (s *Service) set(p *Preview) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = p
}

func (s *Service) fromTable(t *csv.Table, origin Provenance, fileName string) *Preview {
	return &Preview{
		ID:          uuid.NewString(),
		Provenance:  origin,
		FileName:    fileName,
		Columns:     t.Columns,
		Rows:        boundRows(t.Rows, s.rowCap),
		TotalRows:   t.TotalRows,
		InvalidRows: t.InvalidRows,
		Delimiter:   string(t.Delimiter),
		LoadedAt:    time.Now(),
	}
}
