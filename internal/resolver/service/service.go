// Package service implements private identifier resolution: a handle maps to
// a public key through a keyed digest, and every failure mode collapses to
// the same not-found answer so outside probers learn nothing from errors.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"satnam/internal/platform/audit"
	"satnam/internal/resolver/keyring"
	"satnam/internal/resolver/models"
	"satnam/internal/resolver/store"
	dErrors "satnam/pkg/domain-errors"
	"satnam/pkg/sentinel"
)

// Store is the artifact-store capability this service depends on.
type Store = store.ArtifactStore

const defaultFetchTimeout = 2 * time.Second

// Service resolves identifiers to public keys. Stateless per call and safe
// for concurrent use; the store fetch is its only suspension point.
type Service struct {
	keys            *keyring.Keyring
	store           Store
	logger          *slog.Logger
	auditPublisher  audit.Publisher
	tracer          trace.Tracer
	fetchTimeout    time.Duration
	strictIntegrity bool
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(s *Service) { s.auditPublisher = publisher }
}

func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) { s.fetchTimeout = d }
}

// WithStrictIntegrity makes a missing integrity tag fatal. The default
// accepts untagged artifacts for backward compatibility with records
// provisioned before tagging existed.
func WithStrictIntegrity(strict bool) Option {
	return func(s *Service) { s.strictIntegrity = strict }
}

// New constructs the resolver. A nil keyring is permitted: resolution then
// fails closed with unavailable rather than refusing to start, so a
// misconfigured deployment is observable instead of crash-looping.
func New(keys *keyring.Keyring, artifactStore Store, opts ...Option) (*Service, error) {
	if artifactStore == nil {
		return nil, fmt.Errorf("artifact store is required")
	}

	svc := &Service{
		keys:         keys,
		store:        artifactStore,
		logger:       slog.Default(),
		tracer:       otel.Tracer("satnam/resolver"),
		fetchTimeout: defaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// notFound is identical for every failure shape: empty name, unknown handle,
// store corruption, tag mismatch. Callers can only learn found or not-found.
func notFound() error {
	return dErrors.New(dErrors.CodeNotFound, "not found")
}

// Resolve maps (name, domain) to the bound public key. The store is only
// ever queried by keyed digest, so it cannot be enumerated by handle, and no
// listing operation exists.
func (s *Service) Resolve(ctx context.Context, name, domain string) (models.PublicKey, error) {
	var zero models.PublicKey

	name = strings.ToLower(strings.TrimSpace(name))
	domain = strings.ToLower(strings.TrimSpace(domain))
	if name == "" || domain == "" {
		return zero, notFound()
	}

	if s.keys == nil {
		return zero, dErrors.New(dErrors.CodeUnavailable, "service unavailable")
	}

	// Newest version first: during a rotation window artifacts not yet
	// re-keyed still resolve under the previous secret.
	for _, version := range s.keys.Versions() {
		artifact, err := s.fetch(ctx, version.LookupKey(name, domain))
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				continue
			}
			return zero, err
		}
		return s.verify(version, artifact, name, domain)
	}
	return zero, notFound()
}

func (s *Service) fetch(ctx context.Context, lookupKey string) (*models.Artifact, error) {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "artifact_store.fetch")
	defer span.End()

	artifact, err := s.store.Fetch(ctx, lookupKey)
	switch {
	case err == nil:
		return artifact, nil
	case errors.Is(err, sentinel.ErrNotFound):
		return nil, err
	case errors.Is(err, context.DeadlineExceeded):
		return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "artifact fetch timed out")
	default:
		s.logger.ErrorContext(ctx, "artifact store unreachable", "error", err)
		if s.auditPublisher != nil {
			s.auditPublisher.Emit(ctx, audit.Event{
				Category: audit.CategoryOperations,
				Action:   audit.ActionStoreUnavailable,
			})
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "service unavailable")
	}
}

// verify checks the fetched artifact against the request. Any mismatch is
// indistinguishable from absence.
func (s *Service) verify(version keyring.Version, artifact *models.Artifact, name, domain string) (models.PublicKey, error) {
	var zero models.PublicKey

	if artifact.Name != name || artifact.Domain != domain {
		return zero, notFound()
	}

	if artifact.IntegrityTag == "" {
		if s.strictIntegrity {
			return zero, notFound()
		}
	} else if !version.VerifyTag(artifact.Name, artifact.Domain, artifact.PubKey, artifact.IntegrityTag) {
		return zero, notFound()
	}

	pk, err := models.ParsePublicKey(artifact.PubKey)
	if err != nil {
		return zero, notFound()
	}
	return pk, nil
}
