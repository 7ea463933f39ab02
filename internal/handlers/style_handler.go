package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/pro-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// lado máximo de cada imagem enviada, em pixels
var uploadSides = map[string]int{
	"logo":          512,
	"profile-photo": 800,
}

type StyleHandler struct {
	db    *gorm.DB
	store storage.ObjectStore
	log   *zap.Logger
}

// NewStyleHandler: store nil desliga os uploads.
func NewStyleHandler(db *gorm.DB, store storage.ObjectStore, log *zap.Logger) *StyleHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &StyleHandler{db: db, store: store, log: log}
}

type StyleRequest struct {
	CardBackgroundColor     *string `json:"card_background_color"`
	ButtonColor             *string `json:"button_color"`
	TextColor               *string `json:"text_color"`
	ProfessionalName        *string `json:"professional_name"`
	ProfessionalSpecialty   *string `json:"professional_specialty"`
	ProfessionalDescription *string `json:"professional_description"`
	WhatsappNumber          *string `json:"whatsapp_number"`
	InstagramHandle         *string `json:"instagram_handle"`
	FacebookHandle          *string `json:"facebook_handle"`
}

func (r StyleRequest) apply(s *models.Style) string {
	for _, color := range []struct {
		in  *string
		out *string
	}{
		{r.CardBackgroundColor, &s.CardBackgroundColor},
		{r.ButtonColor, &s.ButtonColor},
		{r.TextColor, &s.TextColor},
	} {
		if color.in == nil {
			continue
		}
		v := strings.TrimSpace(*color.in)
		if !hexColor.MatchString(v) {
			return "invalid_color"
		}
		*color.out = strings.ToLower(v)
	}

	set := func(in *string, out *string) {
		if in != nil {
			*out = strings.TrimSpace(*in)
		}
	}
	set(r.ProfessionalName, &s.ProfessionalName)
	set(r.ProfessionalSpecialty, &s.ProfessionalSpecialty)
	set(r.ProfessionalDescription, &s.ProfessionalDescription)
	set(r.WhatsappNumber, &s.WhatsappNumber)
	set(r.InstagramHandle, &s.InstagramHandle)
	set(r.FacebookHandle, &s.FacebookHandle)

	s.InstagramHandle = strings.TrimPrefix(s.InstagramHandle, "@")
	return ""
}

// ======================================================
// SHOW / UPDATE
// ======================================================

func (h *StyleHandler) Show(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}

	style, err := h.load(c, who.ProfessionalID)
	if err != nil {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	httpresp.OK(c, style)
}

func (h *StyleHandler) Update(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}

	var req StyleRequest
	if !bindJSON(c, &req) {
		return
	}

	style, err := h.load(c, who.ProfessionalID)
	if err != nil {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	if code := req.apply(style); code != "" {
		httperr.BadRequest(c, code, "Cor inválida, use o formato #RRGGBB.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(style).Error; err != nil {
		httperr.Internal(c, "failed_to_save_style", "Erro ao salvar estilo.")
		return
	}

	httpresp.OK(c, style)
}

// ======================================================
// UPLOADS
// ======================================================

// Upload recebe multipart "file" em /me/style/:kind (logo ou profile-photo),
// converte para WebP e grava a URL pública no estilo.
func (h *StyleHandler) Upload(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}

	kind := c.Param("kind")
	maxSide, ok := uploadSides[kind]
	if !ok {
		httperr.NotFound(c, "not_found", "Recurso não encontrado.")
		return
	}

	if h.store == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "storage_not_configured", "Upload de imagens indisponível.")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, storage.MaxUploadBytes+(1<<20))

	fh, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "invalid_file", "Envie a imagem no campo file.")
		return
	}
	if fh.Size > storage.MaxUploadBytes {
		httperr.BadRequest(c, "file_too_large", "Imagem maior que 5MB.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_file", "Envie a imagem no campo file.")
		return
	}
	defer f.Close()

	data, err := storage.ToWebP(f, maxSide)
	if errors.Is(err, storage.ErrUnsupportedImage) {
		httperr.BadRequest(c, "unsupported_image", "Formato de imagem não suportado.")
		return
	}
	if err != nil {
		h.log.Error("webp conversion failed", zap.Error(err))
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	key := fmt.Sprintf("styles/%d/%s/%s.webp", who.ProfessionalID, kind, uuid.NewString())

	url, err := h.store.Put(c.Request.Context(), key, data, "image/webp")
	if err != nil {
		h.log.Error("upload failed", zap.String("key", key), zap.Error(err))
		httperr.Write(c, http.StatusBadGateway, "upload_failed", "Falha ao enviar a imagem.")
		return
	}

	style, err := h.load(c, who.ProfessionalID)
	if err != nil {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	if kind == "logo" {
		style.LogoURL = url
	} else {
		style.ProfilePhotoURL = url
	}

	if err := h.db.WithContext(c.Request.Context()).Save(style).Error; err != nil {
		httperr.Internal(c, "failed_to_save_style", "Erro ao salvar estilo.")
		return
	}

	httpresp.OK(c, style)
}

// load garante uma linha de estilo para o profissional, criando a padrão se faltar.
func (h *StyleHandler) load(c *gin.Context, professionalID uint) (*models.Style, error) {
	style := models.DefaultStyle(professionalID)
	err := h.db.WithContext(c.Request.Context()).
		Clauses(clause.OnConflict{DoNothing: true}).
		Where(models.Style{ProfessionalID: professionalID}).
		FirstOrCreate(&style).Error
	if err != nil {
		return nil, err
	}
	return &style, nil
}
