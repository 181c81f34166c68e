package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/quangtran/advisor/internal/domain"
	"github.com/quangtran/advisor/internal/modules/simulation"
)

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "advisor",
	})
}

// handleAnalyze runs the full deep dive for one symbol: technical score plus
// a default Monte Carlo forecast from the same series
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	series, err := s.store.GetDailyPrices(r.Context(), symbol, 0)
	if err != nil {
		s.log.Error().Err(err).Str("symbol", symbol).Msg("Price lookup failed")
		s.writeError(w, http.StatusInternalServerError, "price lookup failed")
		return
	}

	technical := s.technical.Score(s.engine.Compute(series))
	if technical == nil {
		s.writeError(w, http.StatusUnprocessableEntity, "not enough history for analysis")
		return
	}

	response := map[string]interface{}{
		"symbol":    symbol,
		"technical": technical,
	}
	if sim := s.simulator.Run(series, simulation.Config{}); sim != nil {
		response["simulation"] = sim
	}

	s.writeJSON(w, http.StatusOK, response)
}

// handleFundamental scores a snapshot sequence posted by the data collaborator
func (s *Server) handleFundamental(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Snapshots []domain.FinancialSnapshot `json:"snapshots"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.writeJSON(w, http.StatusOK, s.fundamental.Score(req.Snapshots))
}

// handleScan scores a list of symbols (the configured universe when empty)
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Symbols []string `json:"symbols"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Symbols) == 0 {
		s.writeError(w, http.StatusBadRequest, "symbols is required")
		return
	}

	runID := uuid.New().String()
	results := s.scanner.Scan(r.Context(), req.Symbols, s.store.Fetch)

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":    runID,
		"requested": len(req.Symbols),
		"results":   results,
	})
}

// handleSimulate runs a Monte Carlo forecast with caller-chosen parameters
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Symbol string `json:"symbol"`
		simulation.Config
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Symbol == "" {
		s.writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	series, err := s.store.GetDailyPrices(r.Context(), req.Symbol, 0)
	if err != nil {
		s.log.Error().Err(err).Str("symbol", req.Symbol).Msg("Price lookup failed")
		s.writeError(w, http.StatusInternalServerError, "price lookup failed")
		return
	}

	result := s.simulator.Run(series, req.Config)
	if result == nil {
		s.writeError(w, http.StatusUnprocessableEntity, "not enough history for simulation")
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
