package httptransport

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"satnam/internal/platform/middleware"
	routingModel "satnam/internal/routing/models"
	"satnam/internal/transport/http/mocks"
	dErrors "satnam/pkg/domain-errors"
)

type RoutesHandlerSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *RoutesHandlerSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestRoutesHandlerSuite(t *testing.T) {
	suite.Run(t, new(RoutesHandlerSuite))
}

func newRoutesHandler(t *testing.T) (*RoutesHandler, *mocks.MockRouteService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockRoutes := mocks.NewMockRouteService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRoutesHandler(mockRoutes, logger, nil), mockRoutes
}

func authedRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/v1/routes", strings.NewReader(body))
	ctx := context.WithValue(req.Context(), middleware.ContextKeySubject, "acct_7")
	return req.WithContext(ctx)
}

func (s *RoutesHandlerSuite) TestHandleSelectRoutes() {
	s.Run("returns candidates with latency in milliseconds", func() {
		handler, mockRoutes := newRoutesHandler(s.T())
		mockRoutes.EXPECT().SelectRoutes(gomock.Any(), "acct_7", "bob@satnam.pub", int64(100000)).
			Return([]routingModel.Candidate{
				{
					Rail:             routingModel.RailInternalLedger,
					EstimatedFeeMsat: 0,
					LatencyMin:       0,
					LatencyMax:       2 * time.Second,
					Privacy:          routingModel.PrivacyHigh,
					Reliability:      0.999,
				},
				{
					Rail:             routingModel.RailPullPayment,
					EstimatedFeeMsat: 1100,
					LatencyMin:       time.Second,
					LatencyMax:       15 * time.Second,
					Privacy:          routingModel.PrivacyMedium,
					Reliability:      0.97,
				},
			}, nil)

		w := httptest.NewRecorder()
		handler.handleSelectRoutes(w, authedRequest(`{"recipient":"bob@satnam.pub","amount_msat":100000}`))

		s.Equal(http.StatusOK, w.Code)
		var resp selectRoutesResponse
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		s.Require().Len(resp.Candidates, 2)
		s.Equal("internal_ledger", resp.Candidates[0].Rail)
		s.Equal(int64(2000), resp.Candidates[0].LatencyMaxMs)
		s.Equal("pull_payment", resp.Candidates[1].Rail)
		s.Equal(int64(1100), resp.Candidates[1].EstimatedFeeMsat)
		s.Equal(int64(1000), resp.Candidates[1].LatencyMinMs)
		s.Equal(int64(15000), resp.Candidates[1].LatencyMaxMs)
	})

	s.Run("sender comes from the token, never the body", func() {
		handler, mockRoutes := newRoutesHandler(s.T())
		mockRoutes.EXPECT().SelectRoutes(gomock.Any(), "acct_7", "bob@satnam.pub", int64(1000)).
			Return([]routingModel.Candidate{}, nil)

		w := httptest.NewRecorder()
		handler.handleSelectRoutes(w, authedRequest(`{"sender":"acct_other","recipient":"bob@satnam.pub","amount_msat":1000}`))

		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("missing subject is unauthorized", func() {
		handler, _ := newRoutesHandler(s.T())

		req := httptest.NewRequest(http.MethodPost, "/v1/routes", strings.NewReader(`{"recipient":"bob","amount_msat":1000}`))
		w := httptest.NewRecorder()
		handler.handleSelectRoutes(w, req)

		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("malformed body is a bad request", func() {
		handler, _ := newRoutesHandler(s.T())

		w := httptest.NewRecorder()
		handler.handleSelectRoutes(w, authedRequest(`{recipient`))

		s.Equal(http.StatusBadRequest, w.Code)
		s.JSONEq(`{"error":"bad_request","reason":"malformed request body"}`, w.Body.String())
	})

	s.Run("fractional amount is rejected, not coerced", func() {
		handler, _ := newRoutesHandler(s.T())

		w := httptest.NewRecorder()
		handler.handleSelectRoutes(w, authedRequest(`{"recipient":"bob@satnam.pub","amount_msat":100.5}`))

		s.Equal(http.StatusBadRequest, w.Code)
		s.JSONEq(`{"error":"bad_request","reason":"amount must be an integer"}`, w.Body.String())
	})

	s.Run("service errors map to their status", func() {
		handler, mockRoutes := newRoutesHandler(s.T())
		mockRoutes.EXPECT().SelectRoutes(gomock.Any(), "acct_7", "bob@satnam.pub", int64(1000)).
			Return(nil, dErrors.New(dErrors.CodeTimeout, "membership check timed out"))

		w := httptest.NewRecorder()
		handler.handleSelectRoutes(w, authedRequest(`{"recipient":"bob@satnam.pub","amount_msat":1000}`))

		s.Equal(http.StatusGatewayTimeout, w.Code)
		s.JSONEq(`{"error":"timeout"}`, w.Body.String())
	})
}

// ===========================================================================
// Bearer-token enforcement through the router
// ===========================================================================

func (s *RoutesHandlerSuite) TestRouterAuth() {
	const signingKey = "routes-test-signing-key"

	newRouter := func(t *testing.T) (http.Handler, *mocks.MockRouteService) {
		t.Helper()
		ctrl := gomock.NewController(t)
		t.Cleanup(ctrl.Finish)
		mockRoutes := mocks.NewMockRouteService(ctrl)
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))

		validator, err := middleware.NewHMACValidator(signingKey)
		s.Require().NoError(err)

		r := chi.NewRouter()
		r.Group(func(authed chi.Router) {
			authed.Use(middleware.RequireAuth(validator, logger))
			NewRoutesHandler(mockRoutes, logger, nil).Register(authed)
		})
		return r, mockRoutes
	}

	signToken := func(key string) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "acct_7",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte(key))
		s.Require().NoError(err)
		return signed
	}

	s.Run("valid token reaches the service with its subject", func() {
		r, mockRoutes := newRouter(s.T())
		mockRoutes.EXPECT().SelectRoutes(gomock.Any(), "acct_7", "bob@satnam.pub", int64(1000)).
			Return([]routingModel.Candidate{}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/routes", strings.NewReader(`{"recipient":"bob@satnam.pub","amount_msat":1000}`))
		req.Header.Set("Authorization", "Bearer "+signToken(signingKey))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("missing token is rejected", func() {
		r, _ := newRouter(s.T())

		req := httptest.NewRequest(http.MethodPost, "/v1/routes", strings.NewReader(`{"recipient":"bob","amount_msat":1000}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("token signed with another key is rejected", func() {
		r, _ := newRouter(s.T())

		req := httptest.NewRequest(http.MethodPost, "/v1/routes", strings.NewReader(`{"recipient":"bob","amount_msat":1000}`))
		req.Header.Set("Authorization", "Bearer "+signToken("some-other-key"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		s.Equal(http.StatusUnauthorized, w.Code)
	})
}
