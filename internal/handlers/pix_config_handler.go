package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

var pixKeyTypes = map[string]bool{
	"":       true,
	"cpf":    true,
	"cnpj":   true,
	"email":  true,
	"phone":  true,
	"random": true,
}

type PixConfigHandler struct {
	db *gorm.DB
}

func NewPixConfigHandler(db *gorm.DB) *PixConfigHandler {
	return &PixConfigHandler{db: db}
}

type PixConfigRequest struct {
	PixKey         string `json:"pix_key" binding:"required"`
	PixKeyType     string `json:"pix_key_type"`
	AcceptsOnlyPix bool   `json:"accepts_only_pix"`
}

func (h *PixConfigHandler) Show(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}

	var cfg models.PixConfig
	err := h.db.WithContext(c.Request.Context()).
		Where("professional_id = ?", who.ProfessionalID).
		First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "pix_config_not_found", "Nenhuma configuração Pix encontrada.")
		return
	}
	if err != nil {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	httpresp.OK(c, cfg)
}

// Upsert cria ou substitui a única configuração Pix do profissional.
func (h *PixConfigHandler) Upsert(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}

	var req PixConfigRequest
	if !bindJSON(c, &req) {
		return
	}

	keyType := strings.ToLower(strings.TrimSpace(req.PixKeyType))
	key := strings.TrimSpace(req.PixKey)
	if key == "" || !pixKeyTypes[keyType] {
		httperr.BadRequest(c, "invalid_pix_key", "Chave Pix inválida.")
		return
	}

	cfg := models.PixConfig{
		ProfessionalID: who.ProfessionalID,
		PixKey:         key,
		PixKeyType:     keyType,
		AcceptsOnlyPix: req.AcceptsOnlyPix,
	}

	err := h.db.WithContext(c.Request.Context()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "professional_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"pix_key", "pix_key_type", "accepts_only_pix", "updated_at"}),
		}).
		Create(&cfg).Error
	if err != nil {
		httperr.Internal(c, "failed_to_save_pix_config", "Erro ao salvar configuração Pix.")
		return
	}

	httpresp.OK(c, cfg)
}

func (h *PixConfigHandler) Delete(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Where("professional_id = ?", who.ProfessionalID).
		Delete(&models.PixConfig{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_pix_config", "Erro ao remover configuração Pix.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "pix_config_not_found", "Nenhuma configuração Pix encontrada.")
		return
	}

	httpresp.NoContent(c)
}
