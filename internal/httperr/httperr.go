package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// StatusFor traduz o tipo do erro de negócio para o status HTTP.
func StatusFor(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden, KindQuotaExceeded:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	case KindScheduleUnavailable, KindSlotConflict:
		return http.StatusConflict
	case KindGatewayFailure:
		return http.StatusBadGateway
	case KindAlreadyProcessed:
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}

// Respond escreve qualquer erro vindo dos use cases.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		Write(c, StatusFor(be.Kind), be.Code, messageFor(be.Code))
		return
	}
	Internal(c, "internal_error", "Erro interno.")
}

var messages = map[string]string{
	"professional_not_found": "Profissional não encontrado.",
	"service_not_found":      "Serviço não encontrado.",
	"client_not_found":       "Cliente não encontrado.",
	"appointment_not_found":  "Agendamento não encontrado.",
	"exception_not_found":    "Exceção de horário não encontrada.",
	"pix_config_not_found":   "Nenhuma configuração Pix encontrada.",
	"forbidden":              "Não autorizado.",
	"plan_limit_exceeded":    "Profissional atingiu o limite de agendamentos.",
	"day_not_available":      "Profissional não trabalha neste dia.",
	"day_blocked":            "Data bloqueada na agenda do profissional.",
	"outside_working_hours":  "O horário selecionado está fora do horário de trabalho do profissional.",
	"time_conflict":          "O horário selecionado não está disponível.",
	"slot_busy":              "Horário em processamento, tente novamente.",
	"too_soon":               "Horário inválido.",
	"invalid_date_or_time":   "Data ou hora inválida.",
	"invalid_request":        "Dados inválidos.",
	"invalid_status":         "Status inválido.",
	"invalid_state":          "Agendamento não pode ser alterado.",
	"invalid_payment_method": "Forma de pagamento inválida.",
	"invalid_time_range":     "Horário inicial deve ser anterior ao final.",
	"incomplete_time_range":  "Informe início e fim, ou nenhum dos dois.",
	"invalid_weekday":        "Dia da semana inválido.",
	"duplicate_weekday":      "Dia da semana repetido.",
	"invalid_duration":       "Duração inválida.",
	"payment_gateway_failed": "Falha ao gerar cobrança.",
	"already_processed":      "Evento já processado.",
}

func messageFor(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return code
}

// IsUniqueViolation reconhece violação de índice único no Postgres.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// IsExclusionConflict reconhece violação de exclusion constraint no Postgres.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01"
	}
	return false
}
