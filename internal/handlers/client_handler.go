package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
	"github.com/BruksfildServices01/pro-scheduler/internal/validators"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

type ClientRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Document string `json:"document"`
}

// apply normaliza e copia o pedido; devolve o código de erro quando inválido.
func (r ClientRequest) apply(cl *models.Client) string {
	cl.Name = strings.TrimSpace(r.Name)
	cl.Phone = validators.NormalizePhone(r.Phone)
	cl.Email = validators.NormalizeEmail(r.Email)
	cl.Document = strings.TrimSpace(r.Document)

	if cl.Name == "" {
		return "invalid_request"
	}
	if cl.Email != "" && !validators.IsEmailSyntaxValid(cl.Email) {
		return "invalid_email"
	}
	return ""
}

// ======================================================
// LIST CLIENTS
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).
		Where("professional_id = ?", who.ProfessionalID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {

		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	httpresp.List(c, clients)
}

// ======================================================
// CREATE / UPDATE / DELETE
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}

	var req ClientRequest
	if !bindJSON(c, &req) {
		return
	}

	client := models.Client{ProfessionalID: who.ProfessionalID}
	if code := req.apply(&client); code != "" {
		httperr.BadRequest(c, code, "Dados do cliente inválidos.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&client).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "client_email_taken", "Já existe cliente com este e-mail.")
			return
		}
		httperr.Internal(c, "failed_to_create_client", "Erro ao criar cliente.")
		return
	}

	httpresp.Created(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	client, ok := h.find(c, who.ProfessionalID, id)
	if !ok {
		return
	}

	var req ClientRequest
	if !bindJSON(c, &req) {
		return
	}
	if code := req.apply(client); code != "" {
		httperr.BadRequest(c, code, "Dados do cliente inválidos.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(client).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "client_email_taken", "Já existe cliente com este e-mail.")
			return
		}
		httperr.Internal(c, "failed_to_update_client", "Erro ao atualizar cliente.")
		return
	}

	httpresp.OK(c, client)
}

// Delete recusa cliente com histórico de agendamentos.
func (h *ClientHandler) Delete(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	client, ok := h.find(c, who.ProfessionalID, id)
	if !ok {
		return
	}

	var count int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Appointment{}).
		Where("client_id = ?", client.ID).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}
	if count > 0 {
		httperr.Conflict(c, "client_has_appointments", "Cliente possui agendamentos.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(client).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_client", "Erro ao remover cliente.")
		return
	}

	httpresp.NoContent(c)
}

func (h *ClientHandler) find(c *gin.Context, professionalID, id uint) (*models.Client, bool) {
	var client models.Client
	err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND professional_id = ?", id, professionalID).
		First(&client).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return nil, false
	}
	if err != nil {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return nil, false
	}
	return &client, true
}
