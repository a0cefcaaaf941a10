package api_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hugh/agencyhub/internal/api"
	"github.com/hugh/agencyhub/internal/api/dto"
	"github.com/hugh/agencyhub/internal/api/middleware"
	"github.com/hugh/agencyhub/internal/auth"
	"github.com/hugh/agencyhub/internal/database/models"
	"github.com/hugh/agencyhub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-test-secret"

func setupTestRouter(t *testing.T, withAuth bool, rateLimit int) (*api.Router, *testutil.TestSetup) {
	ts := testutil.NewTestSetup(t)

	cfg := api.RouterConfig{
		DB:              ts.DB,
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		Service:         ts.Service,
		RateLimitReqs:   rateLimit,
		RateLimitWindow: time.Minute,
	}
	if withAuth {
		cfg.Verifier = auth.NewJWTService(testSecret, "")
	}
	return api.NewRouter(cfg), ts
}

func TestRouter_HealthEndpoints(t *testing.T) {
	router, _ := setupTestRouter(t, true, 0)

	for _, path := range []string{"/health", "/ready", "/rpc/healthcheck"} {
		t.Run(path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest("GET", path, nil))
			testutil.AssertStatus(t, rr, http.StatusOK)
			assert.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestRouter_AuthRequired(t *testing.T) {
	router, ts := setupTestRouter(t, true, 0)
	testutil.CreateTestAgency(t, ts.Service, "Acme")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, testutil.UnauthenticatedRequest(t, "GET", "/rpc/getAgencies", nil))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)

	var errResp dto.ErrorResponse
	testutil.ParseJSONResponse(t, rr, &errResp)
	assert.Equal(t, "UNAUTHORIZED", errResp.Code)

	token, err := auth.NewJWTService(testSecret, "").GenerateToken("user_abc", 0, "super-admin", time.Hour)
	require.NoError(t, err)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, testutil.AuthenticatedRequest(t, "GET", "/rpc/getAgencies", nil, token))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var agencies []models.Agency
	testutil.ParseJSONResponse(t, rr, &agencies)
	assert.Len(t, agencies, 1)
}

func TestRouter_OpenWithoutVerifier(t *testing.T) {
	router, _ := setupTestRouter(t, false, 0)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, testutil.UnauthenticatedRequest(t, "POST", "/rpc/createAgency", map[string]interface{}{
		"name": "Acme", "subdomain": "acme",
	}))
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestRouter_MethodMismatch(t *testing.T) {
	router, _ := setupTestRouter(t, false, 0)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/rpc/createAgency", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/rpc/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_RateLimit(t *testing.T) {
	router, _ := setupTestRouter(t, false, 2)

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		router.ServeHTTP(last, httptest.NewRequest("GET", "/rpc/getAgencies", nil))
	}
	assert.Equal(t, http.StatusTooManyRequests, last.Code)

	// healthcheck is not limited
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/rpc/healthcheck", nil))
	testutil.AssertStatus(t, rr, http.StatusOK)
}
