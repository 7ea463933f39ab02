package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/pro-scheduler/internal/config"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
	"github.com/BruksfildServices01/pro-scheduler/internal/timezone"
	"github.com/BruksfildServices01/pro-scheduler/internal/validators"
)

const (
	tokenTTL  = 24 * time.Hour
	roleOwner = "owner"
)

type AuthHandler struct {
	db          *gorm.DB
	config      *config.Config
	checkDomain func(email string) bool
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, checkDomain: validators.IsEmailDomainValid}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name         string `json:"name" binding:"required"`
	BusinessName string `json:"business_name"`
	Email        string `json:"email" binding:"required"`
	Password     string `json:"password" binding:"required,min=6"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	Timezone     string `json:"timezone"`
	PlanID       *uint  `json:"plan_id"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	email := validators.NormalizeEmail(req.Email)
	if !validators.IsEmailSyntaxValid(email) {
		httperr.BadRequest(c, "invalid_email", "E-mail inválido.")
		return
	}
	if h.checkDomain != nil && !h.checkDomain(email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	tz := strings.TrimSpace(req.Timezone)
	if tz == "" {
		tz = timezone.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
		return
	}

	ctx := c.Request.Context()

	var count int64
	h.db.WithContext(ctx).Model(&models.Professional{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "email_already_registered", "E-mail já cadastrado.")
		return
	}

	if req.PlanID != nil {
		var plan models.Plan
		if err := h.db.WithContext(ctx).First(&plan, *req.PlanID).Error; err != nil {
			httperr.BadRequest(c, "invalid_plan", "Plano inválido.")
			return
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro interno.")
		return
	}

	prof := models.Professional{
		Name:         strings.TrimSpace(req.Name),
		BusinessName: strings.TrimSpace(req.BusinessName),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        validators.NormalizePhone(req.Phone),
		City:         strings.TrimSpace(req.City),
		Timezone:     tz,
		PlanID:       req.PlanID,
	}

	if err := h.db.WithContext(ctx).Create(&prof).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "email_already_registered", "E-mail já cadastrado.")
			return
		}
		httperr.Internal(c, "failed_to_create_professional", "Erro ao criar cadastro.")
		return
	}

	token, err := GenerateToken(h.config.JWTSecret, &prof, time.Now())
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro interno.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"professional": prof,
		"token":        token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	var prof models.Professional
	err := h.db.WithContext(c.Request.Context()).
		Preload("Plan").
		Where("email = ?", validators.NormalizeEmail(req.Email)).
		First(&prof).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
			return
		}
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(prof.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
		return
	}

	token, err := GenerateToken(h.config.JWTSecret, &prof, time.Now())
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro interno.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"professional": prof,
		"token":        token,
	})
}

// --------- JWT ---------

// GenerateToken emite o token lido pelo AuthMiddleware.
func GenerateToken(secret string, prof *models.Professional, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":            prof.ID,
		"professionalId": prof.ID,
		"role":           roleOwner,
		"exp":            now.Add(tokenTTL).Unix(),
		"iat":            now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
