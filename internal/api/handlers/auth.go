package handlers

import (
	"net/http"
	"time"

	"github.com/RX5950XT/portfolio-visualizer/internal/api/request"
	"github.com/RX5950XT/portfolio-visualizer/internal/api/response"
	"github.com/RX5950XT/portfolio-visualizer/internal/auth"
)

// AuthHandler handles login, logout, and session inspection
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SessionResponse reports the role of the current session
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Role          string `json:"role,omitempty"`
}

// Login checks the password, mints a session token, and sets the session
// cookie
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	role, err := h.authService.Login(req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	token, err := h.authService.IssueToken(role)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.authService.TTL()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	response.RespondData(w, http.StatusOK, SessionResponse{Authenticated: true, Role: role})
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	response.RespondData(w, http.StatusOK, map[string]bool{"success": true})
}

// Session reports whether the request carries a valid session and which role
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(auth.CookieName)
	if err != nil {
		response.RespondData(w, http.StatusOK, SessionResponse{Authenticated: false})
		return
	}

	role, err := h.authService.VerifyToken(cookie.Value)
	if err != nil {
		response.RespondData(w, http.StatusOK, SessionResponse{Authenticated: false})
		return
	}

	response.RespondData(w, http.StatusOK, SessionResponse{Authenticated: true, Role: role})
}
