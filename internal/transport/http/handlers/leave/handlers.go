package leavehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/datainventdev-eng/hr-management/internal/domain/effects"
	"github.com/datainventdev-eng/hr-management/internal/domain/leave"
	"github.com/datainventdev-eng/hr-management/internal/transport/http/api"
	"github.com/datainventdev-eng/hr-management/internal/transport/http/middleware"
	"github.com/datainventdev-eng/hr-management/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
	Effects *effects.Runner
}

func NewHandler(service *leave.Service, runner *effects.Runner) *Handler {
	return &Handler{Service: service, Effects: runner}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.Use(middleware.RequireActor)
		r.Get("/types", h.handleListTypes)
		r.Post("/types", h.handleCreateType)
		r.Post("/allocations", h.handleAllocate)
		r.Get("/balances", h.handleBalances)
		r.Post("/requests", h.handleCreateRequest)
		r.Get("/requests", h.handleListRequests)
		r.Post("/requests/{requestID}/decision", h.handleDecideRequest)
	})
}

func (h *Handler) handleListTypes(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	types, err := h.Service.ListTypes(r.Context())
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, types, reqID)
}

func (h *Handler) handleCreateType(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	who, _ := middleware.GetActor(r.Context())

	var payload leave.CreateTypeInput
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}

	created, fx, err := h.Service.CreateType(r.Context(), who, payload)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	h.Effects.Run(r.Context(), fx)
	api.Created(w, created, reqID)
}

func (h *Handler) handleAllocate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	who, _ := middleware.GetActor(r.Context())

	var payload leave.AllocateInput
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}

	allocation, fx, err := h.Service.Allocate(r.Context(), who, payload)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	h.Effects.Run(r.Context(), fx)
	api.Success(w, allocation, reqID)
}

func (h *Handler) handleBalances(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	who, _ := middleware.GetActor(r.Context())

	balances, err := h.Service.Balances(r.Context(), who, r.URL.Query().Get("employeeId"))
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, balances, reqID)
}

type requestPayload struct {
	LeaveTypeID string `json:"leaveTypeId"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Reason      string `json:"reason,omitempty"`
}

func (h *Handler) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	who, _ := middleware.GetActor(r.Context())

	var payload requestPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	if payload.StartDate == "" || payload.EndDate == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_input", "startDate and endDate are required", reqID)
		return
	}
	start, err := shared.ParseDate(payload.StartDate)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_input", "startDate must be a valid date", reqID)
		return
	}
	end, err := shared.ParseDate(payload.EndDate)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_input", "endDate must be a valid date", reqID)
		return
	}

	request, fx, err := h.Service.Request(r.Context(), who, leave.RequestInput{
		LeaveTypeID: payload.LeaveTypeID,
		StartDate:   start,
		EndDate:     end,
		Reason:      payload.Reason,
	})
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	h.Effects.Run(r.Context(), fx)
	api.Created(w, request, reqID)
}

func (h *Handler) handleListRequests(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	who, _ := middleware.GetActor(r.Context())

	filter := leave.RequestFilter{
		EmployeeID: r.URL.Query().Get("employeeId"),
		ManagerID:  r.URL.Query().Get("managerId"),
	}
	requests, err := h.Service.List(r.Context(), who, filter)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, requests, reqID)
}

type decisionPayload struct {
	Decision       string `json:"decision"`
	ManagerComment string `json:"managerComment,omitempty"`
}

func (h *Handler) handleDecideRequest(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	who, _ := middleware.GetActor(r.Context())

	var payload decisionPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}

	request, fx, err := h.Service.Decide(r.Context(), who, leave.DecideInput{
		RequestID:      chi.URLParam(r, "requestID"),
		Decision:       payload.Decision,
		ManagerComment: payload.ManagerComment,
	})
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	h.Effects.Run(r.Context(), fx)
	api.Success(w, request, reqID)
}
