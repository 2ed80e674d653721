package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"satnam/internal/platform/metrics"
	"satnam/internal/platform/middleware"
	routingModel "satnam/internal/routing/models"
	"satnam/internal/transport/http/shared"
	dErrors "satnam/pkg/domain-errors"
)

// RouteService defines the interface for settlement route selection.
type RouteService interface {
	SelectRoutes(ctx context.Context, sender, recipient string, amountMsat int64) ([]routingModel.Candidate, error)
}

// RoutesHandler serves the authenticated route selection endpoint.
type RoutesHandler struct {
	routes  RouteService
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewRoutesHandler creates a new RoutesHandler.
func NewRoutesHandler(routes RouteService, logger *slog.Logger, m *metrics.Metrics) *RoutesHandler {
	return &RoutesHandler{routes: routes, logger: logger, metrics: m}
}

// Register registers the route selection routes with the chi router. The
// caller is expected to mount these behind authentication middleware; the
// sender identity comes from the verified token subject, never the body.
func (h *RoutesHandler) Register(r chi.Router) {
	r.Post("/v1/routes", h.handleSelectRoutes)
}

type selectRoutesRequest struct {
	Recipient  string      `json:"recipient"`
	AmountMsat json.Number `json:"amount_msat"`
}

type candidateResponse struct {
	Rail             string  `json:"rail"`
	EstimatedFeeMsat int64   `json:"estimated_fee_msat"`
	LatencyMinMs     int64   `json:"latency_min_ms"`
	LatencyMaxMs     int64   `json:"latency_max_ms"`
	Privacy          string  `json:"privacy"`
	Reliability      float64 `json:"reliability"`
}

type selectRoutesResponse struct {
	Candidates []candidateResponse `json:"candidates"`
}

func (h *RoutesHandler) handleSelectRoutes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sender := middleware.GetSubject(ctx)
	if sender == "" {
		h.observe("error")
		shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing subject"))
		return
	}

	var req selectRoutesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.observe("bad_request")
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "malformed request body"))
		return
	}

	amountMsat, err := req.AmountMsat.Int64()
	if err != nil {
		h.observe("bad_request")
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "amount must be an integer"))
		return
	}

	candidates, err := h.routes.SelectRoutes(ctx, sender, req.Recipient, amountMsat)
	if err != nil {
		h.observe(outcomeLabel(err))
		shared.WriteError(w, err)
		return
	}

	resp := selectRoutesResponse{Candidates: make([]candidateResponse, 0, len(candidates))}
	for _, c := range candidates {
		resp.Candidates = append(resp.Candidates, candidateResponse{
			Rail:             c.Rail.String(),
			EstimatedFeeMsat: c.EstimatedFeeMsat,
			LatencyMinMs:     c.LatencyMin.Milliseconds(),
			LatencyMaxMs:     c.LatencyMax.Milliseconds(),
			Privacy:          string(c.Privacy),
			Reliability:      c.Reliability,
		})
	}

	h.observe("ok")
	shared.WriteJSON(w, http.StatusOK, resp)
}

func (h *RoutesHandler) observe(outcome string) {
	if h.metrics != nil {
		h.metrics.RouteQueries.WithLabelValues(outcome).Inc()
	}
}
