package httpadapter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meta-ads-proxy/internal/core/domain"
	"meta-ads-proxy/internal/core/port"
)

type stubAuth struct {
	status    port.AuthStatus
	statusErr error
	result    port.CallbackResult
	logouts   int

	gotCode, gotErr, gotReason string
}

func (s *stubAuth) AuthURL(state string) string {
	return "https://login.example/dialog/oauth?state=" + state
}

func (s *stubAuth) CompleteCallback(_ context.Context, _, code, providerErr, providerReason string) port.CallbackResult {
	s.gotCode, s.gotErr, s.gotReason = code, providerErr, providerReason
	return s.result
}

func (s *stubAuth) Status(context.Context, string) (port.AuthStatus, error) {
	return s.status, s.statusErr
}

func (s *stubAuth) Logout(context.Context, string) error {
	s.logouts++
	return nil
}

type stubCampaigns struct {
	page *port.CampaignPage
	err  error

	gotAccount  string
	gotPageSize int
}

func (s *stubCampaigns) FetchCampaigns(_ context.Context, _, accountID string, pageSize int) (*port.CampaignPage, error) {
	s.gotAccount, s.gotPageSize = accountID, pageSize
	return s.page, s.err
}

func newTestHandler(auth *stubAuth, campaigns *stubCampaigns) *Handler {
	return NewHandler(auth, campaigns, Options{
		FrontendURL:      "http://front.example",
		DefaultAccountID: "",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func findCookie(t *testing.T, resp *http.Response, name string) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthStartRedirectsToProvider(t *testing.T) {
	h := newTestHandler(&stubAuth{}, &stubCampaigns{})

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/start", nil))
	resp := rec.Result()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	state := findCookie(t, resp, stateCookieName)
	require.NotNil(t, state, "state cookie must be set")
	assert.Equal(t, "https://login.example/dialog/oauth?state="+state.Value, resp.Header.Get("Location"))
	assert.NotNil(t, findCookie(t, resp, sessionCookieName), "session cookie issued on first request")
}

func TestAuthCallbackSuccess(t *testing.T) {
	auth := &stubAuth{result: port.CallbackResult{Outcome: port.CallbackSuccess}}
	h := newTestHandler(auth, &stubCampaigns{})

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state=st-1", nil)
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "st-1"})
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	resp := rec.Result()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "http://front.example/?authSuccess=true", resp.Header.Get("Location"))
	assert.Equal(t, "abc", auth.gotCode)

	cleared := findCookie(t, resp, stateCookieName)
	require.NotNil(t, cleared)
	assert.Negative(t, cleared.MaxAge, "state cookie cleared after use")
}

func TestAuthCallbackDenied(t *testing.T) {
	auth := &stubAuth{result: port.CallbackResult{Outcome: port.CallbackDenied, Reason: "user_denied"}}
	h := newTestHandler(auth, &stubCampaigns{})

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?error=access_denied&error_reason=user_denied", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	resp := rec.Result()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "user_denied", loc.Query().Get("authError"))
	assert.Equal(t, "access_denied", auth.gotErr)
}

func TestAuthCallbackStateMismatch(t *testing.T) {
	auth := &stubAuth{result: port.CallbackResult{Outcome: port.CallbackSuccess}}
	h := newTestHandler(auth, &stubCampaigns{})

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state=forged", nil)
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "st-1"})
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	resp := rec.Result()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "state_mismatch", loc.Query().Get("authError"))
	assert.Empty(t, auth.gotCode, "the code must not reach the exchange")
}

func TestAuthStatus(t *testing.T) {
	expires := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	auth := &stubAuth{status: port.AuthStatus{Authenticated: true, ExpiresAt: &expires}}
	h := newTestHandler(auth, &stubCampaigns{})

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var got port.AuthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Authenticated)
	require.NotNil(t, got.ExpiresAt)
	assert.True(t, expires.Equal(*got.ExpiresAt))
}

func TestAuthStatusUnauthenticatedHasNullExpiry(t *testing.T) {
	h := newTestHandler(&stubAuth{}, &stubCampaigns{})

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"authenticated": false, "expiresAt": null}`, rec.Body.String())
}

func TestLogoutIsIdempotent(t *testing.T) {
	auth := &stubAuth{}
	h := newTestHandler(auth, &stubCampaigns{})

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{}`, rec.Body.String())
	}
	assert.Equal(t, 2, auth.logouts)
}

func TestCampaignsSuccess(t *testing.T) {
	campaigns := &stubCampaigns{page: &port.CampaignPage{
		Campaigns: []domain.Campaign{{
			ID:          "c1",
			Name:        "Spring Sale",
			Objective:   "OUTCOME_TRAFFIC",
			Status:      domain.StatusActive,
			DailyBudget: "10.50",
			CreatedAt:   time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC),
		}},
		Pagination: port.Pagination{Total: 1, PageSize: 25},
	}}
	h := newTestHandler(&stubAuth{}, campaigns)

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/campaigns?accountId=123&pageSize=25", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "123", campaigns.gotAccount)
	assert.Equal(t, 25, campaigns.gotPageSize)

	var got port.CampaignPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Campaigns, 1)
	assert.Equal(t, "10.50", got.Campaigns[0].DailyBudget)
	assert.Equal(t, 1, got.Pagination.Total)
}

func TestCampaignsAcceptsLegacyParams(t *testing.T) {
	campaigns := &stubCampaigns{page: &port.CampaignPage{Campaigns: []domain.Campaign{}}}
	h := newTestHandler(&stubAuth{}, campaigns)

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/campaigns?advertiser_id=987&page_size=10", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "987", campaigns.gotAccount)
	assert.Equal(t, 10, campaigns.gotPageSize)
}

func TestCampaignsRejectsBadPageSize(t *testing.T) {
	h := newTestHandler(&stubAuth{}, &stubCampaigns{})

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/campaigns?accountId=1&pageSize=lots", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), string(domain.KindInvalidRequest))
}

func TestCampaignsErrorMapping(t *testing.T) {
	cases := []struct {
		kind   domain.ErrorKind
		status int
	}{
		{domain.KindInvalidRequest, http.StatusBadRequest},
		{domain.KindUnauthenticated, http.StatusUnauthorized},
		{domain.KindForbidden, http.StatusForbidden},
		{domain.KindNotFound, http.StatusNotFound},
		{domain.KindUpstreamUnavailable, http.StatusBadGateway},
		{domain.KindNetworkError, http.StatusBadGateway},
		{domain.KindUnknown, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		campaigns := &stubCampaigns{err: &domain.ProxyError{Kind: tc.kind, Message: "failed"}}
		h := newTestHandler(&stubAuth{}, campaigns)

		rec := httptest.NewRecorder()
		h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/campaigns?accountId=1", nil))

		assert.Equal(t, tc.status, rec.Code, "kind %s", tc.kind)
		var body errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, string(tc.kind), body.Kind)
		assert.Equal(t, "failed", body.Message)
	}
}

func TestCampaignsRateLimitedCarriesRetryAfter(t *testing.T) {
	campaigns := &stubCampaigns{err: &domain.ProxyError{
		Kind:              domain.KindRateLimited,
		Message:           "slow down",
		RetryAfterSeconds: 30,
	}}
	h := newTestHandler(&stubAuth{}, campaigns)

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/campaigns?accountId=1", nil))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "30", rec.Header().Get("Retry-After"))
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 30, body.RetryAfterSeconds)
}

func TestCampaignsExport(t *testing.T) {
	campaigns := &stubCampaigns{page: &port.CampaignPage{
		Campaigns: []domain.Campaign{
			{ID: "c1", Name: "Spring, Sale", Objective: "OUTCOME_TRAFFIC", Status: domain.StatusActive, DailyBudget: "10.50", CreatedAt: time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC)},
			{ID: "c2", Name: "Paused", Objective: "N/A", Status: domain.StatusPaused, DailyBudget: "N/A", CreatedAt: time.Date(2025, 6, 16, 8, 30, 0, 0, time.UTC)},
		},
	}}
	h := newTestHandler(&stubAuth{}, campaigns)

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/campaigns/export?accountId=1&status=ACTIVE", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2, "header plus the one ACTIVE row")
	assert.Equal(t, "id,name,objective,status,daily_budget,created_time", lines[0])
	assert.Contains(t, lines[1], `"Spring, Sale"`)
}

func TestSessionCookieReused(t *testing.T) {
	h := newTestHandler(&stubAuth{}, &stubCampaigns{})

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "existing-sid"})
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	assert.Nil(t, findCookie(t, rec.Result(), sessionCookieName), "no new cookie when one exists")
}
