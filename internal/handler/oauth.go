package handler

import (
	"log/slog"
	"net/http"

	"github.com/Murilo211205/rede-social/internal/apperror"
	"github.com/Murilo211205/rede-social/internal/auth"
	"github.com/Murilo211205/rede-social/internal/service"
	"github.com/rs/xid"
)

// OAuthHandler runs the GitHub login flow: redirect out, then turn the
// callback code into a local account and bearer token.
type OAuthHandler struct {
	github *auth.GitHubProvider
	auth   *service.AuthService
	logger *slog.Logger
}

func NewOAuthHandler(github *auth.GitHubProvider, authService *service.AuthService, logger *slog.Logger) *OAuthHandler {
	return &OAuthHandler{github: github, auth: authService, logger: logger}
}

// HandleGitHubLogin redirects the browser to GitHub's authorization
// page. The random state is kept in a short-lived cookie and verified
// on callback as a CSRF check.
func (h *OAuthHandler) HandleGitHubLogin(w http.ResponseWriter, r *http.Request) {
	state := xid.New().String()

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.github.AuthURL(state), http.StatusTemporaryRedirect)
}

// HandleGitHubCallback completes the flow: verifies state, exchanges
// the code for a GitHub profile, and signs the matching account in —
// creating it on first login. The token comes back in the JSON envelope
// like a password login.
func (h *OAuthHandler) HandleGitHubCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || r.URL.Query().Get("state") != stateCookie.Value {
		h.logger.Warn("oauth callback: state mismatch")
		writeError(w, apperror.AuthFailed("invalid oauth state"))
		return
	}

	// single-use
	http.SetCookie(w, &http.Cookie{
		Name:   "oauth_state",
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		writeError(w, apperror.AuthFailed("github authorization denied"))
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, apperror.AuthFailed("missing oauth code"))
		return
	}

	ghUser, err := h.github.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("oauth callback: exchange failed", "error", err)
		writeError(w, apperror.AuthFailed("github authentication failed"))
		return
	}

	result, err := h.auth.LoginOrRegisterGitHub(r.Context(), ghUser)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"token": result.Token,
		"user":  result.User.Own(),
	})
}
