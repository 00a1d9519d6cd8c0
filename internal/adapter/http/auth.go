package httpadapter

import (
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"meta-ads-proxy/internal/core/port"
)

// handleAuthStart kicks off the OAuth flow: it plants a short-lived state
// cookie and redirects the browser to the provider consent dialog. Server
// session state is untouched; the pending flow lives in the redirect.
func (h *Handler) handleAuthStart(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.opts.SecureCookies,
		MaxAge:   600,
		SameSite: http.SameSiteLaxMode,
	})
	h.logger.Info("starting oauth flow")
	http.Redirect(w, r, h.auth.AuthURL(state), http.StatusFound)
}

// handleAuthCallback finishes the flow. Success lands the browser on the
// frontend with authSuccess=true; a denial, state mismatch or exchange
// failure lands it there with authError=<reason>. The session credential is
// written only on success.
func (h *Handler) handleAuthCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	stateCookie, err := r.Cookie(stateCookieName)
	clearStateCookie(w, h.opts.SecureCookies)
	if q.Get("error") == "" {
		if err != nil || stateCookie.Value == "" || stateCookie.Value != q.Get("state") {
			h.logger.Warn("oauth state mismatch")
			h.redirectWithError(w, r, "state_mismatch")
			return
		}
	}

	result := h.auth.CompleteCallback(r.Context(), sessionID(r), q.Get("code"), q.Get("error"), q.Get("error_reason"))
	if result.Outcome == port.CallbackSuccess {
		http.Redirect(w, r, h.opts.FrontendURL+"/?authSuccess=true", http.StatusFound)
		return
	}
	h.redirectWithError(w, r, result.Reason)
}

// handleAuthStatus reports whether the session currently holds a valid
// credential. Read-only.
func (h *Handler) handleAuthStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.auth.Status(r.Context(), sessionID(r))
	if err != nil {
		h.writeProxyError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, status)
}

// handleAuthLogout destroys the session credential. Idempotent: logging out
// twice returns 200 both times.
func (h *Handler) handleAuthLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context(), sessionID(r)); err != nil {
		h.writeProxyError(w, err)
		return
	}
	h.logger.Info("session logged out")
	h.writeJSON(w, http.StatusOK, struct{}{})
}

func (h *Handler) redirectWithError(w http.ResponseWriter, r *http.Request, reason string) {
	if reason == "" {
		reason = "authentication_failed"
	}
	http.Redirect(w, r, h.opts.FrontendURL+"/?authError="+url.QueryEscape(reason), http.StatusFound)
}

func clearStateCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		MaxAge:   -1,
	})
}
