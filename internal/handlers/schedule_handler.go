package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/httpresp"
	ucCalendar "github.com/BruksfildServices01/pro-scheduler/internal/usecase/calendar"
)

// ScheduleHandler expõe a grade semanal e as exceções de data.
type ScheduleHandler struct {
	listRules       *ucCalendar.ListWeeklyRules
	replaceRules    *ucCalendar.ReplaceWeeklyRules
	listExceptions  *ucCalendar.ListExceptions
	createException *ucCalendar.CreateException
	deleteException *ucCalendar.DeleteException
}

func NewScheduleHandler(
	listRules *ucCalendar.ListWeeklyRules,
	replaceRules *ucCalendar.ReplaceWeeklyRules,
	listExceptions *ucCalendar.ListExceptions,
	createException *ucCalendar.CreateException,
	deleteException *ucCalendar.DeleteException,
) *ScheduleHandler {
	return &ScheduleHandler{
		listRules:       listRules,
		replaceRules:    replaceRules,
		listExceptions:  listExceptions,
		createException: createException,
		deleteException: deleteException,
	}
}

type WeeklyRulesRequest struct {
	Days []ucCalendar.WeeklyRuleInput `json:"days" binding:"required"`
}

// ======================================================
// WEEKLY RULES
// ======================================================

func (h *ScheduleHandler) GetWeeklyRules(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}

	rules, err := h.listRules.Execute(c.Request.Context(), who)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, rules)
}

// ReplaceWeeklyRules sobrescreve a semana: dia ausente fica fechado.
func (h *ScheduleHandler) ReplaceWeeklyRules(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}

	var req WeeklyRulesRequest
	if !bindJSON(c, &req) {
		return
	}

	rules, err := h.replaceRules.Execute(c.Request.Context(), who, req.Days)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, rules)
}

// ======================================================
// EXCEPTIONS
// ======================================================

func (h *ScheduleHandler) ListExceptions(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}

	items, err := h.listExceptions.Execute(
		c.Request.Context(),
		who,
		strings.TrimSpace(c.Query("from")),
		strings.TrimSpace(c.Query("to")),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, items)
}

func (h *ScheduleHandler) CreateException(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}

	var req ucCalendar.ExceptionInput
	if !bindJSON(c, &req) {
		return
	}

	ex, err := h.createException.Execute(c.Request.Context(), who, req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, ex)
}

func (h *ScheduleHandler) DeleteException(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.deleteException.Execute(c.Request.Context(), who, id); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}
