package handler

import (
	"log/slog"
	"net/http"

	"github.com/Murilo211205/rede-social/internal/apperror"
	"github.com/Murilo211205/rede-social/internal/auth"
	"github.com/Murilo211205/rede-social/internal/service"
)

// AuthHandler serves registration, login, and token verification.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: authService, logger: logger}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister creates an account. The returned user view keeps the
// caller's email but never the password hash.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.auth.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{
		"token": result.Token,
		"user":  result.User.Own(),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"token": result.Token,
		"user":  result.User.Own(),
	})
}

// HandleVerify resolves the bearer token to the current account state,
// so clients can restore a session after a reload.
func (h *AuthHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	token, ok := auth.BearerToken(r)
	if !ok {
		writeError(w, apperror.Unauthorized())
		return
	}

	user, err := h.auth.Verify(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"user": user.Own()})
}
