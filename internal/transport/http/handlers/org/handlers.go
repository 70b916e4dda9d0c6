package orghandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/datainventdev-eng/hr-management/internal/domain/org"
	"github.com/datainventdev-eng/hr-management/internal/transport/http/api"
	"github.com/datainventdev-eng/hr-management/internal/transport/http/middleware"
	"github.com/datainventdev-eng/hr-management/internal/transport/http/shared"
)

type Handler struct {
	Service *org.Service
}

func NewHandler(service *org.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/org", func(r chi.Router) {
		r.Use(middleware.RequireActor)
		r.Post("/manager-map", h.handleSetMapping)
		r.Get("/manager-map", h.handleListMappings)
	})
}

type mappingPayload struct {
	EmployeeID string `json:"employeeId"`
	ManagerID  string `json:"managerId"`
}

func (h *Handler) handleSetMapping(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	who, _ := middleware.GetActor(r.Context())

	var payload mappingPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}

	mapping, err := h.Service.SetByManager(r.Context(), who, payload.EmployeeID, payload.ManagerID)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, mapping, reqID)
}

func (h *Handler) handleListMappings(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	who, _ := middleware.GetActor(r.Context())

	mappings, err := h.Service.List(r.Context(), who)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, mappings, reqID)
}
