package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/pro-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create  *appointment.CreateBooking
	list    *appointment.ListAppointments
	byDate  *appointment.ListAppointmentsByDate
	byMonth *appointment.ListAppointmentsByMonth
	show    *appointment.GetAppointment
	update  *appointment.UpdateAppointment
	destroy *appointment.DeleteAppointment
	cancel  *appointment.CancelAppointment
	paid    *appointment.MarkAsPaid
}

func NewAppointmentHandler(
	create *appointment.CreateBooking,
	list *appointment.ListAppointments,
	byDate *appointment.ListAppointmentsByDate,
	byMonth *appointment.ListAppointmentsByMonth,
	show *appointment.GetAppointment,
	update *appointment.UpdateAppointment,
	destroy *appointment.DeleteAppointment,
	cancel *appointment.CancelAppointment,
	paid *appointment.MarkAsPaid,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:  create,
		list:    list,
		byDate:  byDate,
		byMonth: byMonth,
		show:    show,
		update:  update,
		destroy: destroy,
		cancel:  cancel,
		paid:    paid,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID      uint   `json:"client_id" binding:"required"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	StartTime     string `json:"start_time" binding:"required"`
	PaymentOption string `json:"payment_option"`
	Notes         string `json:"notes"`
}

// Campos nil ficam como estão.
type UpdateAppointmentRequest struct {
	ServiceID *uint   `json:"service_id"`
	StartTime *string `json:"start_time"`
	Status    *string `json:"status"`
	Notes     *string `json:"notes"`
}

type MarkPaidRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.create.Execute(c.Request.Context(), appointment.CreateBookingInput{
		ProfessionalID: who.ProfessionalID,
		ClientID:       req.ClientID,
		ServiceID:      req.ServiceID,
		StartTime:      req.StartTime,
		PaymentOption:  req.PaymentOption,
		Notes:          req.Notes,
		Actor:          &who,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, result)
}

// ======================================================
// LIST
// ======================================================

// List com ?date=YYYY-MM-DD traz o dia; sem data aplica os filtros.
func (h *AppointmentHandler) List(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}

	if date := strings.TrimSpace(c.Query("date")); date != "" {
		items, err := h.byDate.Execute(c.Request.Context(), who, date)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		httpresp.List(c, items)
		return
	}

	clientID, ok := uintQuery(c, "client_id")
	if !ok {
		return
	}
	serviceID, ok := uintQuery(c, "service_id")
	if !ok {
		return
	}

	items, err := h.list.Execute(c.Request.Context(), who, appointment.ListAppointmentsInput{
		ClientID:  clientID,
		ServiceID: serviceID,
		Status:    strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}

	items, err := h.byMonth.Execute(
		c.Request.Context(),
		who,
		intQuery(c, "year", 0),
		intQuery(c, "month", 0),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) Show(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.show.Execute(c.Request.Context(), who, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// UPDATE / DELETE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), who, appointment.UpdateAppointmentInput{
		AppointmentID: id,
		ServiceID:     req.ServiceID,
		StartTime:     req.StartTime,
		Status:        req.Status,
		Notes:         req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.destroy.Execute(c.Request.Context(), who, id); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), who, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) MarkPaid(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req MarkPaidRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.paid.Execute(c.Request.Context(), who, id, req.PaymentMethod)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}
