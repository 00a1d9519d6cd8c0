// Package httpadapter exposes the proxy over HTTP. It owns the session
// cookie, the route table and the translation of classified errors into
// response statuses.
package httpadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"meta-ads-proxy/internal/core/domain"
	"meta-ads-proxy/internal/core/port"
)

const (
	sessionCookieName = "sid"
	stateCookieName   = "oauth_state"
)

// Options carries the handler's presentation-facing settings.
type Options struct {
	// FrontendURL is where the browser is sent after the OAuth flow.
	FrontendURL string
	// DefaultAccountID fills in when a campaigns request names no account.
	DefaultAccountID string
	// SecureCookies marks issued cookies Secure.
	SecureCookies bool
}

// Handler is the inbound HTTP adapter. It holds the auth and campaign use
// cases and registers routes on a chi.Router.
type Handler struct {
	auth      port.AuthUseCase
	campaigns port.CampaignUseCase
	opts      Options
	logger    *slog.Logger
	router    chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(auth port.AuthUseCase, campaigns port.CampaignUseCase, opts Options, logger *slog.Logger) *Handler {
	h := &Handler{auth: auth, campaigns: campaigns, opts: opts, logger: logger}
	r := chi.NewRouter()
	r.Use(h.sessionMiddleware)

	r.Get("/auth/start", h.handleAuthStart)
	r.Get("/auth/callback", h.handleAuthCallback)
	r.Get("/auth/status", h.handleAuthStatus)
	r.Post("/auth/logout", h.handleAuthLogout)
	r.Get("/campaigns", h.handleCampaigns)
	r.Get("/campaigns/export", h.handleCampaignsExport)

	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

type sessionKey struct{}

// sessionMiddleware guarantees every request runs with a session id: an
// existing sid cookie is reused, otherwise a fresh one is minted and set.
func (h *Handler) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sid string
		if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
			sid = c.Value
		} else {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				Secure:   h.opts.SecureCookies,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sid)))
	})
}

// sessionID returns the session id placed in the context by the middleware.
func sessionID(r *http.Request) string {
	sid, _ := r.Context().Value(sessionKey{}).(string)
	return sid
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

type errorResponse struct {
	Error             string `json:"error"`
	Kind              string `json:"kind"`
	Message           string `json:"message"`
	RetryAfterSeconds int    `json:"retryAfterSeconds,omitempty"`
}

// writeProxyError maps a classified error onto its HTTP status and a stable
// JSON body. Anything unclassified is surfaced as Unknown.
func (h *Handler) writeProxyError(w http.ResponseWriter, err error) {
	pe := domain.AsProxyError(err)
	h.logger.Warn("request failed",
		slog.String("kind", string(pe.Kind)),
		slog.String("message", pe.Message),
	)
	if pe.RetryAfterSeconds > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(pe.RetryAfterSeconds))
	}
	h.writeJSON(w, pe.HTTPStatus(), errorResponse{
		Error:             string(pe.Kind),
		Kind:              string(pe.Kind),
		Message:           pe.Message,
		RetryAfterSeconds: pe.RetryAfterSeconds,
	})
}

// firstQueryValue returns the first non-empty value among the given query
// parameter names. The campaign routes accept both the documented names and
// the legacy ones the original frontend sends.
func firstQueryValue(r *http.Request, names ...string) string {
	q := r.URL.Query()
	for _, name := range names {
		if v := q.Get(name); v != "" {
			return v
		}
	}
	return ""
}
