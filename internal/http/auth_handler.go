package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sohaibalidev/Zeevno/internal/auth"
)

const sessionCookieName = "token"

// AuthService is the magic-link flow: park a registration, mail a
// link, and turn a clicked link into a session.
type AuthService interface {
	Register(ctx context.Context, req auth.RegisterRequest) error
	SendLoginLink(ctx context.Context, email string) error
	VerifyLink(ctx context.Context, token string) (string, *auth.User, error)
	SessionTTL() time.Duration
}

type AuthHandler struct {
	svc          AuthService
	logger       *log.Logger
	secureCookie bool
}

func NewAuthHandler(svc AuthService, logger *log.Logger, secureCookie bool) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger, secureCookie: secureCookie}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	if err := h.svc.Register(r.Context(), req); err != nil {
		h.writeAuthError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Check your email for a verification link to complete registration.")
}

func (h *AuthHandler) SendLink(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	if err := h.svc.SendLoginLink(r.Context(), email); err != nil {
		h.writeAuthError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Check your email for a sign-in link.")
}

// VerifyLink consumes a magic link and, on success, sets the session
// cookie. The link page's script calls this and then navigates home.
func (h *AuthHandler) VerifyLink(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	session, user, err := h.svc.VerifyLink(r.Context(), token)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	http.SetCookie(w, h.sessionCookie(session, int(h.svc.SessionTTL().Seconds())))
	writeDataMessage(w, http.StatusOK, user, "Signed in successfully")
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if _, err := r.Cookie(sessionCookieName); err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "You are not signed in.")
		return
	}

	http.SetCookie(w, h.sessionCookie("", -1))
	writeMessage(w, http.StatusOK, "Signed out")
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

func (h *AuthHandler) writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrMissingFields),
		errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrInvalidPhone):
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())

	case errors.Is(err, auth.ErrUserExists):
		writeError(w, http.StatusConflict, "user_exists", "An account with this email or phone already exists.")

	case errors.Is(err, auth.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user_not_found", "No account found for this email.")

	case errors.Is(err, auth.ErrLinkInvalid):
		writeError(w, http.StatusUnauthorized, "link_invalid", "This link is invalid or has expired. Please request a new one.")

	default:
		writeServerError(w, h.logger, err)
	}
}
