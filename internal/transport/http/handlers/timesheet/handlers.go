package timesheethandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/datainventdev-eng/hr-management/internal/domain/effects"
	"github.com/datainventdev-eng/hr-management/internal/domain/timesheet"
	"github.com/datainventdev-eng/hr-management/internal/transport/http/api"
	"github.com/datainventdev-eng/hr-management/internal/transport/http/middleware"
	"github.com/datainventdev-eng/hr-management/internal/transport/http/shared"
)

type Handler struct {
	Service *timesheet.Service
	Effects *effects.Runner
}

func NewHandler(service *timesheet.Service, runner *effects.Runner) *Handler {
	return &Handler{Service: service, Effects: runner}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/timesheets", func(r chi.Router) {
		r.Use(middleware.RequireActor)
		r.Post("/", h.handleSubmit)
		r.Get("/", h.handleList)
		r.Get("/pending-count", h.handlePendingCount)
		r.Post("/{timesheetID}/decision", h.handleDecide)
	})
}

type submitPayload struct {
	WeekStartDate string            `json:"weekStartDate"`
	Entries       []timesheet.Entry `json:"entries"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	who, _ := middleware.GetActor(r.Context())

	var payload submitPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	if payload.WeekStartDate == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_input", "weekStartDate is required", reqID)
		return
	}
	weekStart, err := shared.ParseDate(payload.WeekStartDate)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_input", "weekStartDate must be a valid date", reqID)
		return
	}

	sheet, fx, err := h.Service.Submit(r.Context(), who, timesheet.SubmitInput{
		WeekStart: weekStart,
		Entries:   payload.Entries,
	})
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	h.Effects.Run(r.Context(), fx)
	api.Created(w, sheet, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	who, _ := middleware.GetActor(r.Context())

	filter := timesheet.Filter{
		EmployeeID: r.URL.Query().Get("employeeId"),
		ManagerID:  r.URL.Query().Get("managerId"),
	}
	if raw := r.URL.Query().Get("weekStart"); raw != "" {
		weekStart, err := shared.ParseDate(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_input", "weekStart must be a valid date", reqID)
			return
		}
		filter.WeekStart = weekStart
	}

	sheets, err := h.Service.List(r.Context(), who, filter)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, sheets, reqID)
}

func (h *Handler) handlePendingCount(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	who, _ := middleware.GetActor(r.Context())

	// managers always count their own queue; other roles may scope by
	// param or omit it for the global count
	managerID := r.URL.Query().Get("managerId")
	if who.IsManager() {
		managerID = who.SubjectID
	}

	count, err := h.Service.PendingCount(r.Context(), managerID)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, map[string]int{"pending": count}, reqID)
}

type decisionPayload struct {
	Decision       string `json:"decision"`
	ManagerComment string `json:"managerComment,omitempty"`
}

func (h *Handler) handleDecide(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	who, _ := middleware.GetActor(r.Context())

	var payload decisionPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}

	sheet, fx, err := h.Service.Decide(r.Context(), who, timesheet.DecideInput{
		TimesheetID:    chi.URLParam(r, "timesheetID"),
		Decision:       payload.Decision,
		ManagerComment: payload.ManagerComment,
	})
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	h.Effects.Run(r.Context(), fx)
	api.Success(w, sheet, reqID)
}
