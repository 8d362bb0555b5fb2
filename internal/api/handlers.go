package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/vietddude/bizday/internal/businessday"
	"github.com/vietddude/bizday/internal/core/domain"
	"github.com/vietddude/bizday/internal/core/validation"
)

// CalculationResponse is the success body of the calculation endpoints.
type CalculationResponse struct {
	NextBusinessDay string `json:"nextBusinessDay"`
}

// DiagnosticRequest is the body of POST /v1/diagnostics. Timestamp is epoch
// milliseconds; zero means now.
type DiagnosticRequest struct {
	Process     string `json:"process"`
	Timestamp   int64  `json:"timestamp"`
	Description string `json:"desc"`
	Item        any    `json:"item,omitempty"`
}

func (s *Server) handleCalculate(mode businessday.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		in := validation.Input{
			Date:      q.Get("date"),
			DayCount:  q.Get("dayCount"),
			TableName: q.Get("tableName"),
			Region:    q.Get("region"),
		}

		result, err := s.calc.Calculate(r.Context(), in, mode)
		if err != nil {
			s.respondWithError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, CalculationResponse{NextBusinessDay: result})
	}
}

func (s *Server) handleDiagnostic(w http.ResponseWriter, r *http.Request) {
	var req DiagnosticRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, r, domain.NewValidationError([]domain.Message{
			domain.NewMessage("body must be a JSON object."),
		}))
		return
	}

	var msgs []domain.Message
	msgs = append(msgs, validation.NotEmpty("process", req.Process)...)
	msgs = append(msgs, validation.NotEmpty("desc", req.Description)...)
	if len(msgs) > 0 {
		s.respondWithError(w, r, domain.NewValidationError(msgs))
		return
	}

	rec := domain.DiagnosticRecord{
		Process:     req.Process,
		Description: req.Description,
		Item:        req.Item,
	}
	if req.Timestamp > 0 {
		rec.Timestamp = time.UnixMilli(req.Timestamp)
	}
	s.audit.WriteRecord(rec)
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status, code := "healthy", http.StatusOK
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			s.log.Warn("Health check failed", "error", err)
			status, code = "unhealthy", http.StatusServiceUnavailable
		}
	}
	respondWithJSON(w, code, map[string]string{"status": status})
}

func (s *Server) respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	var derr *domain.Error
	if !errors.As(err, &derr) {
		derr = domain.NewInvalidArgumentError(err)
	}

	attrs := []any{
		"status_code", derr.StatusCode,
		"kind", derr.Kind,
		"path", r.URL.Path,
		"request_id", chimiddleware.GetReqID(r.Context()),
		"error", err,
	}
	if derr.StatusCode >= http.StatusInternalServerError {
		s.log.Error("Request failed", attrs...)
	} else {
		s.log.Debug("Request rejected", attrs...)
	}
	respondWithJSON(w, derr.StatusCode, derr)
}

func respondWithJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
