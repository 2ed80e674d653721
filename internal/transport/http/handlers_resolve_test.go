package httptransport

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	resolverModel "satnam/internal/resolver/models"
	"satnam/internal/transport/http/mocks"
	dErrors "satnam/pkg/domain-errors"
)

type ResolveHandlerSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *ResolveHandlerSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestResolveHandlerSuite(t *testing.T) {
	suite.Run(t, new(ResolveHandlerSuite))
}

func newResolveRouter(t *testing.T) (chi.Router, *mocks.MockResolveService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockResolver := mocks.NewMockResolveService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	NewResolveHandler(mockResolver, logger, nil).Register(r)
	return r, mockResolver
}

func (s *ResolveHandlerSuite) TestHandleResolve() {
	const keyHex = "89ab1b7d0c243b4b54a816e6d66b1570d48b7dcd98c9bfc89b5a7868371e7b19"
	pubKey, err := resolverModel.ParsePublicKey(keyHex)
	s.Require().NoError(err)

	s.Run("returns the public key for a registered identifier", func() {
		r, mockResolver := newResolveRouter(s.T())
		mockResolver.EXPECT().Resolve(gomock.Any(), "alice", "satnam.pub").Return(pubKey, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/resolve?name=alice&domain=satnam.pub", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		s.Equal(http.StatusOK, w.Code)
		var resp map[string]string
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		s.Equal(keyHex, resp["pubkey"])
	})

	s.Run("not-found body carries no detail", func() {
		r, mockResolver := newResolveRouter(s.T())
		mockResolver.EXPECT().Resolve(gomock.Any(), "nobody", "satnam.pub").
			Return(resolverModel.PublicKey{}, dErrors.New(dErrors.CodeNotFound, "not found"))

		req := httptest.NewRequest(http.MethodGet, "/v1/resolve?name=nobody&domain=satnam.pub", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		s.Equal(http.StatusNotFound, w.Code)
		s.JSONEq(`{"error":"not_found"}`, w.Body.String())
	})

	s.Run("failure bodies are identical regardless of which check failed", func() {
		bodies := make(map[string]struct{})
		for _, query := range []string{
			"name=unregistered&domain=satnam.pub",
			"name=alice&domain=elsewhere.example",
			"name=&domain=satnam.pub",
		} {
			r, mockResolver := newResolveRouter(s.T())
			mockResolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(resolverModel.PublicKey{}, dErrors.New(dErrors.CodeNotFound, "not found"))

			req := httptest.NewRequest(http.MethodGet, "/v1/resolve?"+query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			s.Equal(http.StatusNotFound, w.Code)
			bodies[w.Body.String()] = struct{}{}
		}
		s.Len(bodies, 1)
	})

	s.Run("store outage maps to unavailable", func() {
		r, mockResolver := newResolveRouter(s.T())
		mockResolver.EXPECT().Resolve(gomock.Any(), "alice", "satnam.pub").
			Return(resolverModel.PublicKey{}, dErrors.New(dErrors.CodeUnavailable, "artifact store unreachable"))

		req := httptest.NewRequest(http.MethodGet, "/v1/resolve?name=alice&domain=satnam.pub", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		s.Equal(http.StatusServiceUnavailable, w.Code)
		s.JSONEq(`{"error":"unavailable"}`, w.Body.String())
	})
}
