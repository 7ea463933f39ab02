package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
	"github.com/BruksfildServices01/pro-scheduler/internal/timezone"
	"github.com/BruksfildServices01/pro-scheduler/internal/validators"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

// UpdateProfileRequest lista tudo que o profissional pode alterar em si mesmo.
// E-mail, senha e plano ficam de fora.
type UpdateProfileRequest struct {
	Name              *string `json:"name"`
	BusinessName      *string `json:"business_name"`
	Phone             *string `json:"phone"`
	Document          *string `json:"document"`
	Address           *string `json:"address"`
	City              *string `json:"city"`
	Timezone          *string `json:"timezone"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
	TelegramChatID    *int64  `json:"telegram_chat_id"`
}

// apply copia os campos presentes; devolve o código de erro quando inválido.
func (r UpdateProfileRequest) apply(p *models.Professional) string {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			return "invalid_name"
		}
		p.Name = name
	}
	if r.BusinessName != nil {
		p.BusinessName = strings.TrimSpace(*r.BusinessName)
	}
	if r.Phone != nil {
		p.Phone = validators.NormalizePhone(*r.Phone)
	}
	if r.Document != nil {
		p.Document = strings.TrimSpace(*r.Document)
	}
	if r.Address != nil {
		p.Address = strings.TrimSpace(*r.Address)
	}
	if r.City != nil {
		p.City = strings.TrimSpace(*r.City)
	}
	if r.Timezone != nil {
		tz := strings.TrimSpace(*r.Timezone)
		if !timezone.IsValid(tz) {
			return "invalid_timezone"
		}
		p.Timezone = tz
	}
	if r.MinAdvanceMinutes != nil {
		if *r.MinAdvanceMinutes < 0 {
			return "invalid_min_advance"
		}
		p.MinAdvanceMinutes = *r.MinAdvanceMinutes
	}
	if r.TelegramChatID != nil {
		if *r.TelegramChatID == 0 {
			p.TelegramChatID = nil
		} else {
			id := *r.TelegramChatID
			p.TelegramChatID = &id
		}
	}
	return ""
}

func (h *MeHandler) GetMe(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}

	prof, ok := h.load(c, who.ProfessionalID)
	if !ok {
		return
	}

	httpresp.OK(c, prof)
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}

	prof, ok := h.load(c, who.ProfessionalID)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	if code := req.apply(prof); code != "" {
		httperr.BadRequest(c, code, "Dados do perfil inválidos.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Omit("Plan").
		Save(prof).Error; err != nil {
		httperr.Internal(c, "failed_to_update_professional", "Erro ao salvar o perfil.")
		return
	}

	httpresp.OK(c, prof)
}

func (h *MeHandler) load(c *gin.Context, id uint) (*models.Professional, bool) {
	var prof models.Professional
	err := h.db.WithContext(c.Request.Context()).Preload("Plan").First(&prof, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return nil, false
	}
	if err != nil {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return nil, false
	}
	return &prof, true
}
