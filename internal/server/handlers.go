package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/prosecheck/prosecheck/internal/history"
	"github.com/prosecheck/prosecheck/internal/model"
)

// analyzeRequest is the JSON body accepted by POST /v1/analyze as an
// alternative to a multipart file upload.
type analyzeRequest struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyze accepts either a multipart upload under the "file" field or
// a JSON body with pasted text, and returns the full report.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.readDocument(w, r)
	if !ok {
		return
	}

	report := s.pipeline.Analyze(r.Context(), doc)

	if s.store != nil {
		if err := s.store.Record(r.Context(), report); err != nil {
			s.logger.Warn("history record failed", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) readDocument(w http.ResponseWriter, r *http.Request) (model.Document, bool) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(s.config.Extract.MaxFileSize); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart body: " + err.Error()})
			return model.Document{}, false
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: `missing "file" field`})
			return model.Document{}, false
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, s.config.Extract.MaxFileSize+1))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "read upload: " + err.Error()})
			return model.Document{}, false
		}
		if int64(len(data)) > s.config.Extract.MaxFileSize {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "file exceeds size limit"})
			return model.Document{}, false
		}

		return model.Document{
			Name:    header.Filename,
			Content: data,
			Format:  model.DetectFormat(header.Header.Get("Content-Type"), header.Filename),
		}, true
	}

	var req analyzeRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, s.config.Extract.MaxFileSize)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
		return model.Document{}, false
	}

	return model.Document{
		Name:    "paste",
		Content: []byte(req.Text),
		Format:  model.FormatText,
	}, true
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "history is disabled"})
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	var (
		entries []history.Entry
		err     error
	)
	if source := r.URL.Query().Get("source"); source != "" {
		entries, err = s.store.BySource(r.Context(), source)
	} else {
		entries, err = s.store.Recent(r.Context(), limit)
	}
	if err != nil {
		s.logger.Error("history query failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "history query failed"})
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
