package payrollhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/datainventdev-eng/hr-management/internal/domain/effects"
	"github.com/datainventdev-eng/hr-management/internal/domain/payroll"
	"github.com/datainventdev-eng/hr-management/internal/transport/http/api"
	"github.com/datainventdev-eng/hr-management/internal/transport/http/middleware"
	"github.com/datainventdev-eng/hr-management/internal/transport/http/shared"
)

type Handler struct {
	Service *payroll.Service
	Effects *effects.Runner
}

func NewHandler(service *payroll.Service, runner *effects.Runner) *Handler {
	return &Handler{Service: service, Effects: runner}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Use(middleware.RequireActor)
		r.Post("/components", h.handleAddComponent)
		r.Get("/components", h.handleListComponents)
		r.Post("/draft", h.handleRunDraft)
		r.Post("/finalize", h.handleFinalize)
		r.Get("/entries", h.handleListEntries)
		r.Get("/payslips", h.handleListPayslips)
		r.Get("/payslips/{payslipID}", h.handleGetPayslip)
		r.Get("/payslips/{payslipID}/pdf", h.handlePayslipPDF)
		r.Get("/summary", h.handleSummary)
	})
}

type componentPayload struct {
	EmployeeID    string  `json:"employeeId"`
	Type          string  `json:"type"`
	Name          string  `json:"name"`
	Amount        float64 `json:"amount"`
	EffectiveFrom string  `json:"effectiveFrom,omitempty"`
}

func (h *Handler) handleAddComponent(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	who, _ := middleware.GetActor(r.Context())

	var payload componentPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	effectiveFrom, err := shared.ParseDate(payload.EffectiveFrom)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_input", "effectiveFrom must be a valid date", reqID)
		return
	}

	component, fx, err := h.Service.AddComponent(r.Context(), who, payroll.AddComponentInput{
		EmployeeID:    payload.EmployeeID,
		Type:          payload.Type,
		Name:          payload.Name,
		Amount:        payload.Amount,
		EffectiveFrom: effectiveFrom,
	})
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	h.Effects.Run(r.Context(), fx)
	api.Created(w, component, reqID)
}

func (h *Handler) handleListComponents(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	who, _ := middleware.GetActor(r.Context())

	components, err := h.Service.ListComponents(r.Context(), who, r.URL.Query().Get("employeeId"))
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, components, reqID)
}

func (h *Handler) handleRunDraft(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	who, _ := middleware.GetActor(r.Context())

	var payload payroll.RunInput
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}

	entries, fx, err := h.Service.RunDraft(r.Context(), who, payload)
	// effects for employees committed before a batch failure still run
	h.Effects.Run(r.Context(), fx)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, entries, reqID)
}

func (h *Handler) handleFinalize(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	who, _ := middleware.GetActor(r.Context())

	var payload payroll.RunInput
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}

	entries, fx, err := h.Service.FinalizeMonth(r.Context(), who, payload)
	h.Effects.Run(r.Context(), fx)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, entries, reqID)
}

func (h *Handler) handleListEntries(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	who, _ := middleware.GetActor(r.Context())

	filter := payroll.EntryFilter{
		EmployeeID: r.URL.Query().Get("employeeId"),
		Month:      r.URL.Query().Get("month"),
		Status:     r.URL.Query().Get("status"),
	}
	entries, err := h.Service.ListEntries(r.Context(), who, filter)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, entries, reqID)
}

func (h *Handler) handleListPayslips(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	who, _ := middleware.GetActor(r.Context())

	filter := payroll.PayslipFilter{
		EmployeeID: r.URL.Query().Get("employeeId"),
		Month:      r.URL.Query().Get("month"),
	}
	payslips, err := h.Service.ListPayslips(r.Context(), who, filter)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, payslips, reqID)
}

func (h *Handler) handleGetPayslip(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	who, _ := middleware.GetActor(r.Context())

	payslip, err := h.Service.GetPayslip(r.Context(), who, chi.URLParam(r, "payslipID"))
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, payslip, reqID)
}

func (h *Handler) handlePayslipPDF(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	who, _ := middleware.GetActor(r.Context())

	path, err := h.Service.PayslipPDF(r.Context(), who, chi.URLParam(r, "payslipID"))
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, path)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	who, _ := middleware.GetActor(r.Context())

	summary, err := h.Service.MonthlySummary(r.Context(), who, r.URL.Query().Get("month"))
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, summary, reqID)
}
