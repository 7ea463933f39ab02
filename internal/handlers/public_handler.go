package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
	"github.com/BruksfildServices01/pro-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/validators"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler atende a vitrine sem login. O profissional vem da URL.
type PublicHandler struct {
	db *gorm.DB

	listServices    *appointment.ListPublicServices
	availability    *appointment.GetAvailability
	monthly         *appointment.GetMonthlyAvailability
	createBooking   *appointment.CreateBooking
	paymentStatus   *appointment.GetPaymentStatus
	checkEmailRoute func(email string) bool
}

func NewPublicHandler(
	db *gorm.DB,
	listServices *appointment.ListPublicServices,
	availability *appointment.GetAvailability,
	monthly *appointment.GetMonthlyAvailability,
	createBooking *appointment.CreateBooking,
	paymentStatus *appointment.GetPaymentStatus,
) *PublicHandler {
	return &PublicHandler{
		db:              db,
		listServices:    listServices,
		availability:    availability,
		monthly:         monthly,
		createBooking:   createBooking,
		paymentStatus:   paymentStatus,
		checkEmailRoute: validators.IsEmailDomainValid,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

// Aceita start_time completo ou date + time separados.
type PublicCreateAppointmentRequest struct {
	ClientName    string `json:"client_name" binding:"required"`
	ClientPhone   string `json:"client_phone" binding:"required"`
	ClientEmail   string `json:"client_email" binding:"required"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	StartTime     string `json:"start_time"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	PaymentOption string `json:"payment_option"`
	Notes         string `json:"notes"`
}

func (r PublicCreateAppointmentRequest) start() string {
	if s := strings.TrimSpace(r.StartTime); s != "" {
		return s
	}
	return strings.TrimSpace(r.Date) + " " + strings.TrimSpace(r.Time)
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	professionalID, ok := uintParam(c, "professionalId")
	if !ok {
		return
	}

	services, err := h.listServices.Execute(c.Request.Context(), professionalID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, services)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	professionalID, ok := uintParam(c, "professionalId")
	if !ok {
		return
	}

	date := strings.TrimSpace(c.Query("date"))
	serviceID, ok := uintQuery(c, "service_id")
	if !ok {
		return
	}
	if date == "" || serviceID == 0 {
		httperr.BadRequest(c, "invalid_request", "Informe date e service_id.")
		return
	}

	day, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
		Date:           date,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, day)
}

func (h *PublicHandler) MonthAvailability(c *gin.Context) {
	professionalID, ok := uintParam(c, "professionalId")
	if !ok {
		return
	}

	serviceID, ok := uintQuery(c, "service_id")
	if !ok {
		return
	}
	if serviceID == 0 {
		httperr.BadRequest(c, "invalid_request", "Informe service_id.")
		return
	}

	month, err := h.monthly.Execute(c.Request.Context(), domain.MonthAvailabilityInput{
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
		Year:           intQuery(c, "year", 0),
		Month:          intQuery(c, "month", 0),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, month)
}

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	professionalID, ok := uintParam(c, "professionalId")
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	email := validators.NormalizeEmail(req.ClientEmail)
	if !validators.IsEmailSyntaxValid(email) {
		httperr.BadRequest(c, "invalid_email", "E-mail inválido.")
		return
	}
	if h.checkEmailRoute != nil && !h.checkEmailRoute(email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	phone := validators.NormalizePhone(req.ClientPhone)
	if phone == "" {
		httperr.BadRequest(c, "invalid_phone", "Telefone inválido.")
		return
	}

	result, err := h.createBooking.Execute(c.Request.Context(), appointment.CreateBookingInput{
		ProfessionalID: professionalID,
		ClientName:     strings.TrimSpace(req.ClientName),
		ClientEmail:    email,
		ClientPhone:    phone,
		ServiceID:      req.ServiceID,
		StartTime:      req.start(),
		PaymentOption:  req.PaymentOption,
		Notes:          req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, result)
}

func (h *PublicHandler) PaymentStatus(c *gin.Context) {
	professionalID, ok := uintParam(c, "professionalId")
	if !ok {
		return
	}
	appointmentID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	view, err := h.paymentStatus.Execute(c.Request.Context(), professionalID, appointmentID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, view)
}

////////////////////////////////////////////////////////
// VITRINE
////////////////////////////////////////////////////////

func (h *PublicHandler) HasPix(c *gin.Context) {
	professionalID, ok := uintParam(c, "professionalId")
	if !ok {
		return
	}

	var cfg models.PixConfig
	err := h.db.WithContext(c.Request.Context()).
		Where("professional_id = ?", professionalID).
		First(&cfg).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpresp.OK(c, gin.H{"has_pix": false, "accepts_only_pix": false})
		return
	}
	if err != nil {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	httpresp.OK(c, gin.H{"has_pix": true, "accepts_only_pix": cfg.AcceptsOnlyPix})
}

// Style devolve o visual padrão quando o profissional ainda não configurou.
func (h *PublicHandler) Style(c *gin.Context) {
	professionalID, ok := uintParam(c, "professionalId")
	if !ok {
		return
	}

	var prof models.Professional
	if err := h.db.WithContext(c.Request.Context()).First(&prof, professionalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
			return
		}
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	style := models.DefaultStyle(prof.ID)
	err := h.db.WithContext(c.Request.Context()).
		Where("professional_id = ?", prof.ID).
		First(&style).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	if style.ProfessionalName == "" {
		style.ProfessionalName = prof.DisplayName()
	}

	httpresp.OK(c, style)
}
