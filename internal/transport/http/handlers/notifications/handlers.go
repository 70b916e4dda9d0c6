package notificationshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/datainventdev-eng/hr-management/internal/domain/notifications"
	"github.com/datainventdev-eng/hr-management/internal/transport/http/api"
	"github.com/datainventdev-eng/hr-management/internal/transport/http/middleware"
	"github.com/datainventdev-eng/hr-management/internal/transport/http/shared"
)

type Handler struct {
	Service *notifications.Service
}

func NewHandler(service *notifications.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Use(middleware.RequireActor)
		r.Get("/", h.handleList)
		r.Get("/unread-count", h.handleUnreadCount)
		r.Post("/{notificationID}/read", h.handleMarkRead)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	who, _ := middleware.GetActor(r.Context())

	page := shared.ParsePagination(r, 50, 100)
	items, err := h.Service.List(r.Context(), who, page.Limit, page.Offset)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, items, reqID)
}

func (h *Handler) handleUnreadCount(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	who, _ := middleware.GetActor(r.Context())

	count, err := h.Service.CountUnread(r.Context(), who)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, map[string]int{"unread": count}, reqID)
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	who, _ := middleware.GetActor(r.Context())

	if err := h.Service.MarkRead(r.Context(), who, chi.URLParam(r, "notificationID")); err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, map[string]bool{"read": true}, reqID)
}
