package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sangkips/backoffice-api/internal/application/service"
	"github.com/sangkips/backoffice-api/internal/presentation/http/dto/request"
	"github.com/sangkips/backoffice-api/internal/presentation/http/dto/response"
)

// DebtHandler handles customer debt HTTP requests
type DebtHandler struct {
	debtService *service.DebtService
}

// NewDebtHandler creates a new debt handler
func NewDebtHandler(debtService *service.DebtService) *DebtHandler {
	return &DebtHandler{debtService: debtService}
}

// List handles listing debts
func (h *DebtHandler) List(c *gin.Context) {
	var filter request.ListFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query: "+err.Error())
		return
	}
	params, err := filter.ToParams()
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.debtService.ListDebts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, "Debts retrieved successfully", result)
}

// Get handles fetching a single debt
func (h *DebtHandler) Get(c *gin.Context) {
	view, err := h.debtService.GetDebt(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Debt retrieved successfully", view, driftWarnings(view.Drift)...)
}

// RecordPayment handles adding a payment to a debt
func (h *DebtHandler) RecordPayment(c *gin.Context) {
	var req request.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := req.ToInput()
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.debtService.RecordPayment(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", result, overpaidWarnings(result.Receipt)...)
}
