package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"tabledeck/internal/logging"
	"tabledeck/internal/preview"
)

// handleIndex serves the single-page UI.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, map[string]string{"status": "ok"})
}

// handleLocalPreview parses an uploaded file in-process and returns the
// resulting preview.
func (s *Server) handleLocalPreview(w http.ResponseWriter, r *http.Request) {
	fileName, data, err := s.readUploadedFile(w, r)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	p, err := s.service.LoadLocal(r.Context(), fileName, data)
	if err != nil {
		respondError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	logging.FromContext(r.Context()).Info("local preview loaded",
		"file", fileName,
		"rows", p.TotalRows,
		"invalid", p.InvalidRows,
		"delimiter", p.Delimiter,
	)
	writeJSON(w, r, p)
}

// handleRemoteUpload sends the uploaded file to the remote validation
// service and returns its preview document.
func (s *Server) handleRemoteUpload(w http.ResponseWriter, r *http.Request) {
	if !s.service.RemoteConfigured() {
		respondError(w, r, preview.ErrRemoteUnavailable, http.StatusServiceUnavailable)
		return
	}

	fileName, data, err := s.readUploadedFile(w, r)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	p, err := s.service.LoadRemote(r.Context(), fileName, data)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, preview.ErrRemoteUnavailable) {
			status = http.StatusServiceUnavailable
		}
		respondError(w, r, err, status)
		return
	}

	logging.FromContext(r.Context()).Info("remote preview loaded",
		"file", fileName,
		"rows", p.TotalRows,
		"invalid", p.InvalidRows,
		"messages", len(p.Messages),
	)
	writeJSON(w, r, p)
}

// handleGetPreview returns the currently loaded preview.
func (s *Server) handleGetPreview(w http.ResponseWriter, r *http.Request) {
	p, ok := s.service.Current()
	if !ok {
		respondErrorMessage(w, preview.UserMessage{
			Message: "No file is loaded",
			Action:  "Upload a file or load the demonstration data",
			Code:    "PRV404",
		}, http.StatusNotFound)
		return
	}
	writeJSON(w, r, p)
}

// handleClearPreview discards the currently loaded preview.
func (s *Server) handleClearPreview(w http.ResponseWriter, r *http.Request) {
	s.service.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// handleDemo loads the demonstration dataset.
func (s *Server) handleDemo(w http.ResponseWriter, r *http.Request) {
	p, err := s.service.LoadDemo(r.Context())
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, r, p)
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, map[string]string{"theme": s.themes.Theme()})
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Theme string `json:"theme"`
	}
	if err := readJSONBody(r, &body); err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.themes.Set(body.Theme); err != nil {
		respondErrorMessage(w, preview.UserMessage{
			Message: "Unknown theme",
			Action:  `Use "light" or "dark"`,
			Code:    "THM001",
		}, http.StatusBadRequest)
		return
	}

	writeJSON(w, r, map[string]string{"theme": s.themes.Theme()})
}

// readUploadedFile extracts the multipart "file" field, bounded by the
// configured maximum upload size.
func (s *Server) readUploadedFile(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			return "", nil, fmt.Errorf("file too large: %w", err)
		}
		return "", nil, fmt.Errorf("no file provided: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, fmt.Errorf("no file provided: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, fmt.Errorf("read upload: %w", err)
	}

	return header.Filename, data, nil
}

// readJSONBody decodes a small JSON request body into v.
func readJSONBody(r *http.Request, v any) error {
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, 4096))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}
