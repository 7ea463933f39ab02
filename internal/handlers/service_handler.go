package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	DurationMin int             `json:"duration_min" binding:"required"`
	Price       decimal.Decimal `json:"price"`
}

type UpdateServiceRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	DurationMin *int             `json:"duration_min,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// validateService devolve o código de erro ou "" quando está tudo certo.
func validateService(s *models.Service) string {
	if strings.TrimSpace(s.Name) == "" {
		return "invalid_request"
	}
	if s.DurationMin < 1 {
		return "invalid_duration"
	}
	if s.Price.IsNegative() {
		return "invalid_price"
	}
	return ""
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}

	q := h.db.WithContext(c.Request.Context()).
		Where("professional_id = ?", who.ProfessionalID)

	switch strings.TrimSpace(c.Query("active")) {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}

	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	svc := models.Service{
		ProfessionalID: who.ProfessionalID,
		Name:           strings.TrimSpace(req.Name),
		Description:    strings.TrimSpace(req.Description),
		DurationMin:    req.DurationMin,
		Price:          req.Price.Round(2),
		Active:         true,
	}

	if code := validateService(&svc); code != "" {
		httperr.BadRequest(c, code, "Dados do serviço inválidos.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Erro ao criar serviço.")
		return
	}

	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	svc, ok := h.find(c, who.ProfessionalID, id)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		svc.Description = strings.TrimSpace(*req.Description)
	}
	if req.DurationMin != nil {
		svc.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		svc.Price = req.Price.Round(2)
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if code := validateService(svc); code != "" {
		httperr.BadRequest(c, code, "Dados do serviço inválidos.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao atualizar serviço.")
		return
	}

	httpresp.OK(c, svc)
}

// Delete só desativa: agendamentos antigos continuam apontando para o serviço.
func (h *ServiceHandler) Delete(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	svc, ok := h.find(c, who.ProfessionalID, id)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(svc).
		Update("active", false).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Erro ao remover serviço.")
		return
	}

	httpresp.NoContent(c)
}

func (h *ServiceHandler) find(c *gin.Context, professionalID, id uint) (*models.Service, bool) {
	var svc models.Service
	err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND professional_id = ?", id, professionalID).
		First(&svc).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return nil, false
	}
	if err != nil {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return nil, false
	}
	return &svc, true
}
