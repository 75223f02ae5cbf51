package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"attendance-mcp/internal/estimate"
	"attendance-mcp/internal/history"
	"attendance-mcp/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// EstimateRequest is the body of POST /api/v1/estimate.
type EstimateRequest struct {
	Total float64 `json:"total"`
	Yes   float64 `json:"yes"`
	Maybe float64 `json:"maybe"`
	No    float64 `json:"no"`

	PYes     *float64 `json:"p_yes,omitempty"`
	PMaybe   *float64 `json:"p_maybe,omitempty"`
	PNo      *float64 `json:"p_no,omitempty"`
	PUnknown *float64 `json:"p_unknown,omitempty"`

	UseHistory bool `json:"use_history,omitempty"`

	// Simulation only
	Trials int    `json:"trials,omitempty"`
	Seed   *int64 `json:"seed,omitempty"`
}

func (r EstimateRequest) toService() service.EstimateRequest {
	return service.EstimateRequest{
		Counts: estimate.ResponseCounts{Total: r.Total, Yes: r.Yes, Maybe: r.Maybe, No: r.No},
		Overrides: estimate.Overrides{
			PYes:     r.PYes,
			PMaybe:   r.PMaybe,
			PNo:      r.PNo,
			PUnknown: r.PUnknown,
		},
		UseHistory: r.UseHistory,
	}
}

// ProbabilityRequest is the body of POST /api/v1/probability.
type ProbabilityRequest struct {
	Invited  float64 `json:"invited"`
	Attended float64 `json:"attended"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req EstimateRequest
	if err := decodeBody(r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := s.svc.Estimate(r.Context(), req.toService())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if !resp.Validation.Valid {
		writeErrorResponse(w, http.StatusBadRequest, resp.Validation.Message)
		return
	}
	writeJSONResponse(w, http.StatusOK, resp)
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req EstimateRequest
	if err := decodeBody(r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := s.svc.Simulate(r.Context(), service.SimulateRequest{
		EstimateRequest: req.toService(),
		Trials:          req.Trials,
		Seed:            req.Seed,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if !resp.Validation.Valid {
		writeErrorResponse(w, http.StatusBadRequest, resp.Validation.Message)
		return
	}
	writeJSONResponse(w, http.StatusOK, resp)
}

func (s *Server) handleProbability(w http.ResponseWriter, r *http.Request) {
	var req ProbabilityRequest
	if err := decodeBody(r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	var probability *float64
	if p, ok := estimate.ProbabilityFromHistory(req.Invited, req.Attended); ok {
		probability = &p
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"probability": probability})
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	resp, err := s.svc.History(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, resp)
}

func (s *Server) handleRecordOutcome(w http.ResponseWriter, r *http.Request) {
	var o history.EventOutcome
	if err := decodeBody(r, &o); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	// IDs are always assigned by the store.
	o.ID = ""
	o.CreatedAt = time.Time{}

	if err := s.svc.Record(r.Context(), &o); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, o)
}

func (s *Server) handleGetOutcome(w http.ResponseWriter, r *http.Request) {
	o, err := s.svc.Outcome(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, o)
}

func (s *Server) handleDeleteOutcome(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.svc.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{
		"message": "outcome deleted",
		"id":      id,
	})
}

func (s *Server) handleCalibration(w http.ResponseWriter, r *http.Request) {
	minHistory := 0
	if v := r.URL.Query().Get("min_history"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeErrorResponse(w, http.StatusBadRequest, "min_history must be a positive integer")
			return
		}
		minHistory = n
	}

	res, err := s.svc.Calibrate(r.Context(), minHistory)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, res)
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, history.ErrNotFound):
		writeErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNoHistory):
		writeErrorResponse(w, http.StatusServiceUnavailable, err.Error())
	default:
		log.Error().Err(err).Msg("Request failed")
		writeErrorResponse(w, http.StatusInternalServerError, "internal server error")
	}
}
