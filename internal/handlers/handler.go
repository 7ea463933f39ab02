package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/pro-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/middleware"
)

// ======================================================
// HELPERS COMPARTILHADOS
// ======================================================

// whoAmI lê a identidade gravada pelo AuthMiddleware. Sem ela a rota não
// deveria ter sido alcançada, então responde 401.
func whoAmI(c *gin.Context) (identity.Identity, bool) {
	who, ok := middleware.IdentityFrom(c)
	if !ok || who.ProfessionalID == 0 {
		httperr.Unauthorized(c, "unauthorized", "Não autenticado.")
		return identity.Identity{}, false
	}
	return who, true
}

// uintParam lê um id de rota; zero ou texto viram 400.
func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Identificador inválido.")
		return 0, false
	}
	return uint(v), true
}

// uintQuery devolve 0 quando o parâmetro está ausente.
func uintQuery(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_"+name, "Parâmetro inválido.")
		return 0, false
	}
	return uint(v), true
}

func intQuery(c *gin.Context, name string, def int) int {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return false
	}
	return true
}
