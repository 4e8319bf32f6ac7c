package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/common/expfmt"

	"github.com/churnguard/churnguard/internal/metrics"
	"github.com/churnguard/churnguard/internal/model"
	"github.com/churnguard/churnguard/internal/pipeline"
	"github.com/churnguard/churnguard/internal/risk"
	"github.com/churnguard/churnguard/internal/scoring"
	"github.com/churnguard/churnguard/pkg/types"
)

// maxBodyBytes caps the size of a score request body.
const maxBodyBytes = 64 << 10

// Scorer runs the scoring pipeline. *pipeline.Pipeline implements it.
type Scorer interface {
	Score(rec types.CustomerRecord, override *float64) (*pipeline.Outcome, error)
	Threshold() float64
}

// ModelInfo reports the active model artifact. *model.Registry implements it.
type ModelInfo interface {
	Info() (model.Info, bool)
}

// Deps are the collaborators the handler reads from.
type Deps struct {
	Scorer  Scorer
	Models  ModelInfo
	Metrics *metrics.Recorder
}

// Handler is the HTTP handler for the churnguard API.
type Handler struct {
	deps   Deps
	router chi.Router
}

// New creates a Handler wired to deps and registers all routes.
func New(deps Deps) http.Handler {
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	h := &Handler{deps: deps}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(accessLog)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/score", h.score)
		r.Get("/health", h.health)
		r.Get("/model", h.model)
	})
	r.Get("/metrics", h.metrics)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		jsonErr(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	h.router = r
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// score handles POST /api/v1/score.
func (h *Handler) score(w http.ResponseWriter, r *http.Request) {
	var override *float64
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		t, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			verr := &types.ValidationError{Field: "threshold", Value: raw, Reason: "must be a number"}
			h.deps.Metrics.ObserveError(verr)
			h.fail(w, r, verr)
			return
		}
		override = &t
	}

	var rec types.CustomerRecord
	if err := decodeBody(w, r, &rec); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonErr(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		jsonErr(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	out, err := h.deps.Scorer.Score(rec, override)
	if err != nil {
		h.deps.Metrics.ObserveError(err)
		h.fail(w, r, err)
		return
	}
	h.deps.Metrics.ObserveResult(out.Result)

	jsonResp(w, http.StatusOK, toScoreResponse(out, h.modelRef()))
}

// health handles GET /api/v1/health.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	info, ok := h.deps.Models.Info()
	if !ok {
		jsonResp(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		return
	}
	jsonResp(w, http.StatusOK, HealthResponse{
		Status:       "ok",
		ModelLoaded:  true,
		ModelName:    info.Name,
		ModelVersion: info.Version,
	})
}

// model handles GET /api/v1/model.
func (h *Handler) model(w http.ResponseWriter, r *http.Request) {
	resp := ModelResponse{
		DecisionThreshold: h.deps.Scorer.Threshold(),
		Tiers:             tierLegend(risk.Tiers()),
	}
	if info, ok := h.deps.Models.Info(); ok {
		resp.Loaded = true
		resp.Model = &info
	}
	jsonResp(w, http.StatusOK, resp)
}

// metrics handles GET /metrics.
func (h *Handler) metrics(w http.ResponseWriter, r *http.Request) {
	g := metrics.Gauges{Threshold: h.deps.Scorer.Threshold()}
	if info, ok := h.deps.Models.Info(); ok {
		g.ModelLoaded = true
		g.ModelName = info.Name
		g.ModelVersion = info.Version
	}

	format := expfmt.Negotiate(r.Header)
	w.Header().Set("Content-Type", string(format))
	if err := h.deps.Metrics.Write(w, format, g); err != nil {
		slog.Error("api: write metrics", "err", err, "request_id", RequestID(r.Context()))
	}
}

// --- helpers ----------------------------------------------------------------

// fail maps a pipeline error onto a status code and JSON body.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var ve *types.ValidationError
	var ie *types.IntegrationError
	switch {
	case errors.As(err, &ve):
		jsonResp(w, http.StatusUnprocessableEntity, errorResponse{Error: ve.Error(), Field: ve.Field})
	case errors.As(err, &ie):
		slog.Error("api: model integration failure",
			"stage", ie.Stage, "err", ie.Err, "request_id", RequestID(r.Context()))
		jsonResp(w, http.StatusBadGateway, errorResponse{Error: ie.Error(), Stage: ie.Stage})
	case errors.Is(err, scoring.ErrNoArtifact):
		jsonErr(w, http.StatusServiceUnavailable, err.Error())
	default:
		slog.Error("api: score failed", "err", err, "request_id", RequestID(r.Context()))
		jsonErr(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) modelRef() *ModelRef {
	info, ok := h.deps.Models.Info()
	if !ok {
		return nil
	}
	return &ModelRef{Name: info.Name, Version: info.Version}
}

// decodeBody decodes exactly one JSON object from the request body into v.
// Unknown fields and anything after the object are rejected.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return err
		}
		return errors.New("unexpected data after JSON object")
	}
	return nil
}

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}

func toScoreResponse(out *pipeline.Outcome, ref *ModelRef) ScoreResponse {
	res, f := out.Result, out.Features
	return ScoreResponse{
		Probability:       res.Probability,
		ProbabilityPct:    res.ProbabilityPercent(),
		Decision:          res.Decision,
		RiskTier:          res.RiskTier,
		RecommendedAction: res.RecommendedAction,
		Threshold:         res.Threshold,
		Features: DerivedFeatures{
			TenureBucket:       f.TenureBucket,
			TotalServices:      f.TotalServices,
			MonthlyTenureRatio: f.MonthlyTenureRatio,
			IsFiber:            f.IsFiber,
			HasSecuritySupport: f.HasSecuritySupport,
			IsHighRisk:         f.IsHighRisk,
		},
		Model: ref,
	}
}

// tierLegend turns the tier table into half-open [lower, upper) ranges.
func tierLegend(tiers []risk.Tier) []TierResponse {
	out := make([]TierResponse, 0, len(tiers))
	upper := 1.0
	for _, t := range tiers {
		out = append(out, TierResponse{
			Tier:       t.Tier,
			LowerBound: t.LowerBound,
			UpperBound: upper,
			Action:     t.Action,
		})
		upper = t.LowerBound
	}
	return out
}
