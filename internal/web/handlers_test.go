package web

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tabledeck/internal/config"
	"tabledeck/internal/preview"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	cfg.Rate.Enabled = false
	return cfg
}

func testServer(t *testing.T, remote *preview.Client) *Server {
	t.Helper()
	cfg := testConfig(t)
	service := preview.NewService(cfg.Preview.MaxRows, cfg.Preview.StrictQuotes, remote)
	return NewServer(service, preview.NewThemeStore(), cfg)
}

// multipartBody builds a multipart form with one "file" field.
func multipartBody(t *testing.T, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return &body, mw.FormDataContentType()
}

func decodePreview(t *testing.T, rec *httptest.ResponseRecorder) preview.Preview {
	t.Helper()
	var p preview.Preview
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode response: %v (body: %s)", err, rec.Body.String())
	}
	return p
}

func TestHandleLocalPreview(t *testing.T) {
	srv := testServer(t, nil)

	body, contentType := multipartBody(t, "orders.csv", "a;b\n1;2\nbad\n3;4")
	req := httptest.NewRequest(http.MethodPost, "/api/preview", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	p := decodePreview(t, rec)
	if p.Provenance != preview.ProvenanceLocal {
		t.Errorf("provenance = %q, want local", p.Provenance)
	}
	if p.FileName != "orders.csv" {
		t.Errorf("fileName = %q, want orders.csv", p.FileName)
	}
	if p.TotalRows != 3 || p.InvalidRows != 1 || len(p.Rows) != 2 {
		t.Errorf("rows=%d total=%d invalid=%d, want 2/3/1", len(p.Rows), p.TotalRows, p.InvalidRows)
	}
	if p.Delimiter != ";" {
		t.Errorf("delimiter = %q, want ';'", p.Delimiter)
	}
}

func TestHandleLocalPreview_EmptyFile(t *testing.T) {
	srv := testServer(t, nil)

	body, contentType := multipartBody(t, "empty.csv", "\n  \n")
	req := httptest.NewRequest(http.MethodPost, "/api/preview", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Code != "PRS001" {
		t.Errorf("error code = %q, want PRS001", resp.Code)
	}
}

func TestHandleLocalPreview_NoFile(t *testing.T) {
	srv := testServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/preview", strings.NewReader("not a form"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleGetPreview_Lifecycle(t *testing.T) {
	srv := testServer(t, nil)

	// Nothing loaded yet.
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/preview", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("GET before load: status = %d, want 404", rec.Code)
	}

	// Load the demo dataset.
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/demo", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /api/demo: status = %d", rec.Code)
	}
	demo := decodePreview(t, rec)
	if demo.Provenance != preview.ProvenanceDemo {
		t.Errorf("provenance = %q, want demo", demo.Provenance)
	}

	// Now the current preview is served.
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/preview", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET after load: status = %d", rec.Code)
	}
	if got := decodePreview(t, rec); got.ID != demo.ID {
		t.Error("GET returned a different preview than the one loaded")
	}

	// Clear and verify it is gone.
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/preview", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE: status = %d, want 204", rec.Code)
	}
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/preview", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("GET after clear: status = %d, want 404", rec.Code)
	}
}

func TestHandleRemoteUpload_NotConfigured(t *testing.T) {
	srv := testServer(t, nil)

	body, contentType := multipartBody(t, "x.csv", "a,b\n1,2")
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Code != "RMT001" {
		t.Errorf("error code = %q, want RMT001", resp.Code)
	}
}

func TestHandleRemoteUpload(t *testing.T) {
	validator := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(preview.Document{
			Columns:     []string{"a", "b"},
			Rows:        [][]string{{"1", "2"}},
			TotalRows:   1,
			InvalidRows: 0,
			Delimiter:   ",",
			Messages:    []string{"validated upstream"},
		})
	}))
	defer validator.Close()

	srv := testServer(t, preview.NewClient(validator.URL, 5*time.Second))

	body, contentType := multipartBody(t, "x.csv", "a,b\n1,2")
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	p := decodePreview(t, rec)
	if p.Provenance != preview.ProvenanceRemote {
		t.Errorf("provenance = %q, want remote", p.Provenance)
	}
	if len(p.Messages) != 1 || p.Messages[0] != "validated upstream" {
		t.Errorf("messages = %v", p.Messages)
	}
}

func TestHandleTheme(t *testing.T) {
	srv := testServer(t, nil)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/theme", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "light") {
		t.Fatalf("GET /api/theme = %d %s, want light", rec.Code, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodPut, "/api/theme", strings.NewReader(`{"theme":"dark"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT /api/theme = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/theme", nil))
	if !strings.Contains(rec.Body.String(), "dark") {
		t.Errorf("theme did not persist: %s", rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodPut, "/api/theme", strings.NewReader(`{"theme":"sepia"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("PUT invalid theme = %d, want 400", rec.Code)
	}
}

func TestHandleUpload_FileTooLarge(t *testing.T) {
	srv := testServer(t, nil)
	srv.cfg.Upload.MaxFileSize = 64

	big := strings.Repeat("x", 4096)
	body, contentType := multipartBody(t, "big.csv", big)
	req := httptest.NewRequest(http.MethodPost, "/api/preview", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Code != "FILE001" {
		t.Errorf("error code = %q, want FILE001", resp.Code)
	}
}

func TestHealthz(t *testing.T) {
	srv := testServer(t, nil)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv := testServer(t, nil)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter(2, time.Minute)

	if !rl.allow("1.2.3.4") || !rl.allow("1.2.3.4") {
		t.Fatal("first two requests should be allowed")
	}
	if rl.allow("1.2.3.4") {
		t.Error("third request within the window should be rejected")
	}
	// Other IPs have their own bucket.
	if !rl.allow("5.6.7.8") {
		t.Error("different IP should be allowed")
	}
}
