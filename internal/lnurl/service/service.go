// Package service implements the two-phase pull-payment handshake. Both
// phases are stateless: nothing is trusted across calls, and phase 2
// re-derives bounds from configuration and re-validates the identifier.
package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"satnam/internal/lnurl/invoice"
	lnurlModel "satnam/internal/lnurl/models"
	resolverModel "satnam/internal/resolver/models"
	dErrors "satnam/pkg/domain-errors"
)

// Resolver is the identifier-resolution capability this service depends on.
type Resolver interface {
	Resolve(ctx context.Context, name, domain string) (resolverModel.PublicKey, error)
}

// Machine-readable rejection reasons. Specific reasons are safe here: the
// caller reaching phase 2 already disclosed the identifier's existence, so
// no new oracle is created.
const (
	ReasonInvalidAmount  = "invalid amount"
	ReasonBelowMinimum   = "below minimum"
	ReasonAboveMaximum   = "above maximum"
	ReasonCommentTooLong = "comment too long"
)

const defaultMinFinalCLTV = 18

// Config declares the negotiation policy.
type Config struct {
	// PublicURL is the externally reachable base for callback endpoints.
	PublicURL  string
	HomeDomain string
	// Sendable bounds in millisatoshis.
	MinSendable int64
	MaxSendable int64
	// CommentAllowed is the maximum comment length in characters, not
	// bytes; 0 disables comments.
	CommentAllowed int
	InvoiceExpiry  time.Duration
}

func (c Config) validate() error {
	if c.PublicURL == "" {
		return fmt.Errorf("public URL is required")
	}
	if c.HomeDomain == "" {
		return fmt.Errorf("home domain is required")
	}
	if c.MinSendable < 1 {
		return fmt.Errorf("min sendable must be at least 1 msat, got %d", c.MinSendable)
	}
	if c.MaxSendable < c.MinSendable {
		return fmt.Errorf("max sendable %d below min sendable %d", c.MaxSendable, c.MinSendable)
	}
	if c.CommentAllowed < 0 {
		return fmt.Errorf("comment allowed must not be negative")
	}
	if c.InvoiceExpiry <= 0 {
		return fmt.Errorf("invoice expiry must be positive")
	}
	return nil
}

// Service negotiates pull payments. Stateless per call, safe for concurrent
// use; interleaved phase-1/phase-2 calls for the same identifier are
// independent by construction.
type Service struct {
	resolver Resolver
	signer   *invoice.Signer
	cfg      Config
	logger   *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func New(resolver Resolver, signer *invoice.Signer, cfg Config, opts ...Option) (*Service, error) {
	if resolver == nil {
		return nil, fmt.Errorf("resolver is required")
	}
	if signer == nil {
		return nil, fmt.Errorf("invoice signer is required")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	svc := &Service{
		resolver: resolver,
		signer:   signer,
		cfg:      cfg,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// GetPayParameters is phase 1: payment parameters for an identifier. A
// resolver not-found propagates unchanged; the response carries only
// display metadata and declared bounds, never key material.
func (s *Service) GetPayParameters(ctx context.Context, identifier string) (*lnurlModel.PayParams, error) {
	id := resolverModel.ParseIdentifier(identifier, s.cfg.HomeDomain)
	if _, err := s.resolver.Resolve(ctx, id.Name, id.Domain); err != nil {
		return nil, err
	}

	metadata, err := lnurlModel.NewMetadata(id.String())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "build metadata")
	}

	return &lnurlModel.PayParams{
		Callback:       s.cfg.PublicURL + "/lnurlp/" + id.Name + "/callback",
		MinSendable:    s.cfg.MinSendable,
		MaxSendable:    s.cfg.MaxSendable,
		Metadata:       metadata,
		CommentAllowed: s.cfg.CommentAllowed,
		Tag:            "payRequest",
	}, nil
}

// RequestPayment is phase 2: a concrete instrument for an amount. All bounds
// are re-checked here from configuration; phase 1 state is never consulted.
// Repeated identical calls intentionally yield different encodings (fresh
// payment hash and secret each time, nothing cached).
func (s *Service) RequestPayment(ctx context.Context, identifier string, amountMsat int64, comment string) (*lnurlModel.PaymentRequest, error) {
	if amountMsat <= 0 {
		return nil, reject(ReasonInvalidAmount)
	}
	if amountMsat < s.cfg.MinSendable {
		return nil, reject(ReasonBelowMinimum)
	}
	if amountMsat > s.cfg.MaxSendable {
		return nil, reject(ReasonAboveMaximum)
	}
	if utf8.RuneCountInString(comment) > s.cfg.CommentAllowed {
		return nil, reject(ReasonCommentTooLong)
	}

	id := resolverModel.ParseIdentifier(identifier, s.cfg.HomeDomain)
	if _, err := s.resolver.Resolve(ctx, id.Name, id.Domain); err != nil {
		return nil, err
	}

	metadata, err := lnurlModel.NewMetadata(id.String())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "build metadata")
	}

	params := invoice.Params{
		AmountMsat:      amountMsat,
		Timestamp:       time.Now().UTC(),
		DescriptionHash: sha256.Sum256([]byte(metadata)),
		Expiry:          s.cfg.InvoiceExpiry,
		MinFinalCLTV:    defaultMinFinalCLTV,
	}
	preimage, err := randomHash()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "generate preimage")
	}
	params.PaymentHash = sha256.Sum256(preimage[:])
	if params.PaymentSecret, err = randomHash(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "generate payment secret")
	}

	encoded, err := s.signer.Encode(params)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "encode invoice")
	}

	return &lnurlModel.PaymentRequest{
		Invoice:    encoded,
		RouteHints: []string{},
		SuccessAction: &lnurlModel.SuccessAction{
			Tag:     "message",
			Message: "Payment received by " + id.String(),
		},
		Disposable: true,
	}, nil
}

func reject(reason string) error {
	return dErrors.New(dErrors.CodeRejected, reason)
}

func randomHash() ([32]byte, error) {
	var h [32]byte
	if _, err := rand.Read(h[:]); err != nil {
		return h, err
	}
	return h, nil
}
