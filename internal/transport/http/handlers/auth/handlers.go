package authhandler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/datainventdev-eng/hr-management/internal/domain/actor"
	"github.com/datainventdev-eng/hr-management/internal/domain/auth"
	"github.com/datainventdev-eng/hr-management/internal/transport/http/api"
	"github.com/datainventdev-eng/hr-management/internal/transport/http/middleware"
	"github.com/datainventdev-eng/hr-management/internal/transport/http/shared"
)

type Handler struct {
	Users    auth.UserStore
	Secret   string
	TokenTTL time.Duration
}

func NewHandler(users auth.UserStore, secret string, ttl time.Duration) *Handler {
	return &Handler{Users: users, Secret: secret, TokenTTL: ttl}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	SubjectID string `json:"subjectId"`
	Role      string `json:"role"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload loginPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	if strings.TrimSpace(payload.Email) == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_input", "email and password are required", reqID)
		return
	}

	user, err := h.Users.FindByEmail(r.Context(), payload.Email)
	if errors.Is(err, auth.ErrUserNotFound) {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", reqID)
		return
	}
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", reqID)
		return
	}

	who := actor.Actor{Role: user.Role, SubjectID: user.ID}
	token, err := auth.GenerateToken(h.Secret, who, h.TokenTTL)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}

	api.Success(w, loginResponse{Token: token, SubjectID: user.ID, Role: user.Role}, reqID)
}
