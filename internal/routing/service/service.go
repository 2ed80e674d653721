// Package service selects settlement rails for a transfer. Eligibility is
// decided fresh per request and nothing about the query is recorded: no
// cache, no persisted log of who asked to pay whom.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"satnam/internal/platform/audit"
	"satnam/internal/routing/membership"
	"satnam/internal/routing/models"
	dErrors "satnam/pkg/domain-errors"
)

// Verifier is the trust-group capability this service depends on.
type Verifier = membership.Verifier

// Emission order doubles as rail-kind priority: lowest cost and latency
// first when available. Ranking beyond that is advisory; selection stays the
// caller's responsibility.
var railPriority = []models.RailKind{
	models.RailInternalLedger,
	models.RailPullPayment,
	models.RailTokenTransfer,
}

// Service computes admissible rail candidates. Stateless per call; the
// membership check is its only suspension point.
type Service struct {
	verifier       Verifier
	cfg            *Config
	logger         *slog.Logger
	auditPublisher audit.Publisher
	tracer         trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(s *Service) { s.auditPublisher = publisher }
}

func New(verifier Verifier, cfg *Config, opts ...Option) (*Service, error) {
	if verifier == nil {
		return nil, fmt.Errorf("membership verifier is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	for _, kind := range railPriority {
		if _, ok := cfg.Profiles[kind]; !ok {
			return nil, fmt.Errorf("missing rail profile for %s", kind)
		}
	}

	svc := &Service{
		verifier: verifier,
		cfg:      cfg,
		logger:   slog.Default(),
		tracer:   otel.Tracer("satnam/routing"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// SelectRoutes returns every rail the sender may use for this transfer, in
// priority order. The list never includes a rail the caller is ineligible
// for; a failing membership collaborator fails the call rather than
// degrading it, because silently omitting the internal rail would turn an
// outage into a wrong answer.
func (s *Service) SelectRoutes(ctx context.Context, sender, recipient string, amountMsat int64) ([]models.Candidate, error) {
	if sender == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "sender is required")
	}
	if recipient == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "recipient is required")
	}
	if amountMsat <= 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "amount must be a positive integer")
	}

	isMember, err := s.checkMembership(ctx, sender, recipient)
	if err != nil {
		return nil, err
	}

	candidates := make([]models.Candidate, 0, len(railPriority))
	for _, kind := range railPriority {
		if kind == models.RailInternalLedger && !isMember {
			continue
		}
		candidates = append(candidates, s.candidate(kind, amountMsat))
	}
	return candidates, nil
}

// checkMembership runs the per-request trust-group check. Membership is
// never cached: a revocation must be visible on the very next call.
func (s *Service) checkMembership(ctx context.Context, sender, recipient string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.MembershipTimeout)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "membership.is_member")
	defer span.End()

	isMember, err := s.verifier.IsMember(ctx, sender, recipient)
	switch {
	case err == nil:
		return isMember, nil
	case errors.Is(err, context.DeadlineExceeded):
		return false, dErrors.Wrap(err, dErrors.CodeTimeout, "membership check timed out")
	default:
		s.logger.ErrorContext(ctx, "membership verifier unreachable", "error", err)
		if s.auditPublisher != nil {
			s.auditPublisher.Emit(ctx, audit.Event{
				Category: audit.CategoryOperations,
				Action:   audit.ActionMembershipUnavailable,
			})
		}
		return false, dErrors.Wrap(err, dErrors.CodeUnavailable, "service unavailable")
	}
}

func (s *Service) candidate(kind models.RailKind, amountMsat int64) models.Candidate {
	profile := s.cfg.Profiles[kind]
	// Split the proportional part so the intermediate product cannot
	// overflow int64 for any positive amount.
	proportional := amountMsat/1_000_000*profile.FeePPM +
		(amountMsat%1_000_000)*profile.FeePPM/1_000_000
	return models.Candidate{
		Rail:             kind,
		EstimatedFeeMsat: profile.BaseFeeMsat + proportional,
		LatencyMin:       profile.LatencyMin,
		LatencyMax:       profile.LatencyMax,
		Privacy:          profile.Privacy,
		Reliability:      profile.Reliability,
	}
}
