package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/stratfit/scenario-cli/internal/distribution"
	"github.com/stratfit/scenario-cli/internal/levers"
	"github.com/stratfit/scenario-cli/internal/model"
	"github.com/stratfit/scenario-cli/internal/simulate"
	"github.com/stratfit/scenario-cli/internal/store"
	"github.com/stratfit/scenario-cli/internal/valuation"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type valuationRequest struct {
	Inputs model.BaselineInputs `json:"inputs"`
	Method model.Method         `json:"method"`
}

func (s *Server) handleValuation(w http.ResponseWriter, r *http.Request) {
	var req valuationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Method != "" && !req.Method.Valid() {
		writeError(w, http.StatusBadRequest, "unknown valuation method")
		return
	}
	if req.Method == "" {
		req.Method = model.MethodStratfit
	}

	writeJSON(w, http.StatusOK, valuation.Value(req.Inputs, req.Method))
}

type simulateRequest struct {
	Inputs     model.BaselineInputs `json:"inputs"`
	Method     model.Method         `json:"method"`
	Iterations int                  `json:"iterations"`
	Seed       int64                `json:"seed"`
	Winsorize  bool                 `json:"winsorize"`
	Save       bool                 `json:"save"`
}

type simulateResponse struct {
	RunID      string                    `json:"run_id,omitempty"`
	Valuation  model.Valuation           `json:"valuation"`
	Summary    model.DistributionSummary `json:"summary"`
	Financials model.FinancialSummary    `json:"financials"`
	Levers     model.LeverAnalysis       `json:"levers"`
	Iterations int                       `json:"iterations"`
	Seed       int64                     `json:"seed"`
	DurationMS int64                     `json:"duration_ms"`
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Method == "" {
		req.Method = model.MethodStratfit
	}
	if !req.Method.Valid() {
		writeError(w, http.StatusBadRequest, "unknown valuation method")
		return
	}
	if req.Save && s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "run store not configured")
		return
	}

	eng := s.engine
	if req.Iterations > 0 || req.Seed != 0 {
		simCfg := s.cfg.Simulation
		if req.Iterations > 0 {
			simCfg.Iterations = req.Iterations
		}
		if req.Seed != 0 {
			simCfg.Seed = req.Seed
		}
		eng = simulate.New(simCfg)
	}

	start := time.Now()
	result, err := eng.Run(r.Context(), req.Inputs, req.Method)
	if err != nil {
		zap.L().Error("simulation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "simulation failed")
		return
	}

	opts := distribution.Options{
		UncertaintyPct: s.cfg.Distribution.UncertaintyPct,
		Winsorize:      req.Winsorize,
		WinsorLowPct:   s.cfg.Distribution.WinsorLowPct,
		WinsorHighPct:  s.cfg.Distribution.WinsorHighPct,
	}
	summary := distribution.FromSamples(result.Samples, opts)
	analysis := s.analyzer.Analyze(levers.ValuesFromBaseline(req.Inputs), result.Financials)

	resp := simulateResponse{
		Valuation:  valuation.Value(req.Inputs, req.Method),
		Summary:    summary,
		Financials: result.Financials,
		Levers:     analysis,
		Iterations: result.Iterations,
		Seed:       result.Seed,
		DurationMS: time.Since(start).Milliseconds(),
	}

	if req.Save {
		run, err := s.store.CreateRun(r.Context(), req.Inputs, req.Method)
		if err != nil {
			zap.L().Error("create run failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "persist run failed")
			return
		}
		runResult := &model.RunResult{
			Valuation:  resp.Valuation,
			Summary:    resp.Summary,
			Financials: resp.Financials,
			Levers:     resp.Levers,
			Iterations: resp.Iterations,
			Seed:       resp.Seed,
			DurationMS: resp.DurationMS,
		}
		if err := s.store.UpdateRunResult(r.Context(), run.ID, runResult); err != nil {
			zap.L().Error("update run result failed", zap.String("run_id", run.ID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "persist run failed")
			return
		}
		resp.RunID = run.ID
	}

	writeJSON(w, http.StatusOK, resp)
}

type leversRequest struct {
	Values     map[string]float64     `json:"values"`
	Financials model.FinancialSummary `json:"financials"`
}

func (s *Server) handleLevers(w http.ResponseWriter, r *http.Request) {
	var req leversRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, s.analyzer.Analyze(req.Values, req.Financials))
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "run store not configured")
		return
	}

	filter := store.RunFilter{
		Status: model.RunStatus(r.URL.Query().Get("status")),
		Stage:  model.Stage(r.URL.Query().Get("stage")),
	}
	runs, err := s.store.ListRuns(r.Context(), filter)
	if err != nil {
		zap.L().Error("list runs failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "list runs failed")
		return
	}
	if runs == nil {
		runs = []model.ScenarioRun{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "run store not configured")
		return
	}

	run, err := s.store.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "run store not configured")
		return
	}

	if err := s.store.DeleteRun(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
