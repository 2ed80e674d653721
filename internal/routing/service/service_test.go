package service

//go:generate mockgen -destination=mocks/mocks.go -package=mocks satnam/internal/routing/membership Verifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"satnam/internal/routing/membership"
	"satnam/internal/routing/models"
	"satnam/internal/routing/service/mocks"
	dErrors "satnam/pkg/domain-errors"
)

type SelectorSuite struct {
	suite.Suite
	verifier *mocks.MockVerifier
	service  *Service
}

func TestSelectorSuite(t *testing.T) {
	suite.Run(t, new(SelectorSuite))
}

func (s *SelectorSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.verifier = mocks.NewMockVerifier(ctrl)

	var err error
	s.service, err = New(s.verifier, DefaultConfig())
	s.Require().NoError(err)
}

func rails(candidates []models.Candidate) []models.RailKind {
	kinds := make([]models.RailKind, 0, len(candidates))
	for _, c := range candidates {
		kinds = append(kinds, c.Rail)
	}
	return kinds
}

// =============================================================================
// Constructor
// =============================================================================

func (s *SelectorSuite) TestNew() {
	s.Run("nil verifier returns error", func() {
		_, err := New(nil, DefaultConfig())
		s.Error(err)
	})

	s.Run("nil config falls back to defaults", func() {
		svc, err := New(s.verifier, nil)
		s.NoError(err)
		s.NotNil(svc)
	})

	s.Run("missing rail profile rejected", func() {
		cfg := DefaultConfig()
		delete(cfg.Profiles, models.RailTokenTransfer)
		_, err := New(s.verifier, cfg)
		s.Error(err)
	})
}

// =============================================================================
// Input validation
// =============================================================================

func (s *SelectorSuite) TestInputValidation() {
	ctx := context.Background()

	cases := []struct {
		name      string
		sender    string
		recipient string
		amount    int64
	}{
		{"empty sender", "", "bob", 1_000},
		{"empty recipient", "alice", "", 1_000},
		{"zero amount", "alice", "bob", 0},
		{"negative amount", "alice", "bob", -1},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			// Rejected before candidate generation: no verifier call expected.
			_, err := s.service.SelectRoutes(ctx, tc.sender, tc.recipient, tc.amount)
			s.True(dErrors.Is(err, dErrors.CodeBadRequest))
		})
	}
}

// =============================================================================
// Eligibility
// =============================================================================

func (s *SelectorSuite) TestEligibility() {
	ctx := context.Background()

	s.Run("members see all three rails in priority order", func() {
		s.verifier.EXPECT().IsMember(gomock.Any(), "alice", "bob").Return(true, nil)

		candidates, err := s.service.SelectRoutes(ctx, "alice", "bob", 10_000)
		s.Require().NoError(err)
		s.Equal([]models.RailKind{
			models.RailInternalLedger,
			models.RailPullPayment,
			models.RailTokenTransfer,
		}, rails(candidates))
	})

	s.Run("non-members never see the internal ledger rail", func() {
		s.verifier.EXPECT().IsMember(gomock.Any(), "alice", "stranger").Return(false, nil)

		candidates, err := s.service.SelectRoutes(ctx, "alice", "stranger", 10_000)
		s.Require().NoError(err)
		s.Equal([]models.RailKind{
			models.RailPullPayment,
			models.RailTokenTransfer,
		}, rails(candidates))
	})

	s.Run("membership is checked per request", func() {
		s.verifier.EXPECT().IsMember(gomock.Any(), "alice", "bob").Return(true, nil)
		s.verifier.EXPECT().IsMember(gomock.Any(), "alice", "bob").Return(false, nil)

		first, err := s.service.SelectRoutes(ctx, "alice", "bob", 10_000)
		s.Require().NoError(err)
		s.Len(first, 3)

		// A revocation between calls takes effect immediately.
		second, err := s.service.SelectRoutes(ctx, "alice", "bob", 10_000)
		s.Require().NoError(err)
		s.Len(second, 2)
	})
}

// =============================================================================
// Cost model
// =============================================================================

func (s *SelectorSuite) TestCostModel() {
	ctx := context.Background()

	s.Run("pull payment fee is proportional to amount", func() {
		s.verifier.EXPECT().IsMember(gomock.Any(), "alice", "bob").Return(false, nil).Times(2)

		small, err := s.service.SelectRoutes(ctx, "alice", "bob", 100_000)
		s.Require().NoError(err)
		large, err := s.service.SelectRoutes(ctx, "alice", "bob", 10_000_000)
		s.Require().NoError(err)

		// base 1000 + 1000 ppm of the amount
		s.Equal(int64(1_100), small[0].EstimatedFeeMsat)
		s.Equal(int64(11_000), large[0].EstimatedFeeMsat)
	})

	s.Run("fee stays exact and non-negative for extreme amounts", func() {
		s.verifier.EXPECT().IsMember(gomock.Any(), "alice", "bob").Return(false, nil)

		amount := int64(1) << 54
		candidates, err := s.service.SelectRoutes(ctx, "alice", "bob", amount)
		s.Require().NoError(err)

		want := int64(1_000) + amount/1_000_000*1_000 + amount%1_000_000*1_000/1_000_000
		s.Equal(want, candidates[0].EstimatedFeeMsat)
		s.GreaterOrEqual(candidates[0].EstimatedFeeMsat, int64(0))
	})

	s.Run("internal ledger and token transfer carry no fee", func() {
		s.verifier.EXPECT().IsMember(gomock.Any(), "alice", "bob").Return(true, nil)

		candidates, err := s.service.SelectRoutes(ctx, "alice", "bob", 10_000_000)
		s.Require().NoError(err)
		s.Equal(int64(0), candidates[0].EstimatedFeeMsat)
		s.Equal(int64(0), candidates[2].EstimatedFeeMsat)
	})

	s.Run("candidates carry declared privacy and reliability", func() {
		s.verifier.EXPECT().IsMember(gomock.Any(), "alice", "bob").Return(true, nil)

		candidates, err := s.service.SelectRoutes(ctx, "alice", "bob", 10_000)
		s.Require().NoError(err)

		internal := candidates[0]
		s.Equal(models.PrivacyHigh, internal.Privacy)
		s.InDelta(0.999, internal.Reliability, 1e-9)
		s.LessOrEqual(internal.LatencyMin, internal.LatencyMax)

		pull := candidates[1]
		s.Equal(models.PrivacyMedium, pull.Privacy)
		s.Equal(time.Second, pull.LatencyMin)
	})
}

// =============================================================================
// Collaborator failures
// =============================================================================

func (s *SelectorSuite) TestCollaboratorFailures() {
	ctx := context.Background()

	s.Run("verifier outage fails the call with unavailable", func() {
		s.verifier.EXPECT().IsMember(gomock.Any(), "alice", "bob").
			Return(false, errors.New("connection refused"))

		_, err := s.service.SelectRoutes(ctx, "alice", "bob", 10_000)
		s.True(dErrors.Is(err, dErrors.CodeUnavailable))
	})

	s.Run("verifier deadline surfaces as timeout", func() {
		s.verifier.EXPECT().IsMember(gomock.Any(), "alice", "bob").
			Return(false, context.DeadlineExceeded)

		_, err := s.service.SelectRoutes(ctx, "alice", "bob", 10_000)
		s.True(dErrors.Is(err, dErrors.CodeTimeout))
	})

	s.Run("slow verifier is cut off by the per-call bound", func() {
		cfg := DefaultConfig()
		cfg.MembershipTimeout = 10 * time.Millisecond

		slow := &slowVerifier{delay: 200 * time.Millisecond}
		svc, err := New(slow, cfg)
		s.Require().NoError(err)

		_, err = svc.SelectRoutes(ctx, "alice", "bob", 10_000)
		s.True(dErrors.Is(err, dErrors.CodeTimeout))
	})
}

type slowVerifier struct{ delay time.Duration }

var _ membership.Verifier = (*slowVerifier)(nil)

func (v *slowVerifier) IsMember(ctx context.Context, _, _ string) (bool, error) {
	select {
	case <-time.After(v.delay):
		return true, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
