package audithandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/datainventdev-eng/hr-management/internal/domain/audit"
	"github.com/datainventdev-eng/hr-management/internal/transport/http/api"
	"github.com/datainventdev-eng/hr-management/internal/transport/http/middleware"
	"github.com/datainventdev-eng/hr-management/internal/transport/http/shared"
)

type Handler struct {
	Service *audit.Service
}

func NewHandler(service *audit.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/audit", func(r chi.Router) {
		r.Use(middleware.RequireActor)
		r.Get("/", h.handleList)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	who, _ := middleware.GetActor(r.Context())

	filter := audit.Filter{
		Action:     r.URL.Query().Get("action"),
		EntityType: r.URL.Query().Get("entityType"),
		ActorID:    r.URL.Query().Get("actorId"),
	}
	page := shared.ParsePagination(r, 50, 200)

	events, err := h.Service.List(r.Context(), who, filter, page.Limit, page.Offset)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, events, reqID)
}
