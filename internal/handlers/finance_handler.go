package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/pro-scheduler/internal/usecase/appointment"
)

type FinanceHandler struct {
	summary *appointment.GetFinanceSummary
	pending *appointment.ListPendingPayments
}

func NewFinanceHandler(
	summary *appointment.GetFinanceSummary,
	pending *appointment.ListPendingPayments,
) *FinanceHandler {
	return &FinanceHandler{summary: summary, pending: pending}
}

func (h *FinanceHandler) Summary(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}

	summary, err := h.summary.Execute(c.Request.Context(), who)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, summary)
}

func (h *FinanceHandler) Pending(c *gin.Context) {
	who, ok := whoAmI(c)
	if !ok {
		return
	}

	items, err := h.pending.Execute(c.Request.Context(), who)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, items)
}
