package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sangkips/backoffice-api/internal/application/service"
	"github.com/sangkips/backoffice-api/internal/presentation/http/dto/request"
	"github.com/sangkips/backoffice-api/internal/presentation/http/dto/response"
	"github.com/sangkips/backoffice-api/pkg/ledger"
)

// BillHandler handles bill-related HTTP requests
type BillHandler struct {
	billingService *service.BillingService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billingService *service.BillingService) *BillHandler {
	return &BillHandler{billingService: billingService}
}

// Preview recalculates an unsaved bill. The kind query parameter selects the
// party role used in problem messages and defaults to customer bills.
func (h *BillHandler) Preview(c *gin.Context) {
	kind, ok := ledger.ParseKind(c.DefaultQuery("kind", string(ledger.KindCustomerBill)))
	if !ok {
		response.BadRequest(c, "Unknown bill kind")
		return
	}

	var req request.BillRequest
	if !bindJSON(c, &req) {
		return
	}
	bill, err := req.ToBill(kind)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill calculated", h.billingService.Preview(bill))
}

// List handles listing bills of one kind
func (h *BillHandler) List(c *gin.Context) {
	kind, ok := GetKind(c)
	if !ok {
		return
	}

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

	result, err := h.billingService.ListBills(c.Request.Context(), kind, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, "Bills retrieved successfully", result)
}

// Get handles fetching a single bill
func (h *BillHandler) Get(c *gin.Context) {
	kind, ok := GetKind(c)
	if !ok {
		return
	}

	view, err := h.billingService.GetBill(c.Request.Context(), kind, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", view, driftWarnings(view.Drift)...)
}

// Create handles bill creation
func (h *BillHandler) Create(c *gin.Context) {
	kind, ok := GetKind(c)
	if !ok {
		return
	}

	var req request.BillRequest
	if !bindJSON(c, &req) {
		return
	}
	bill, err := req.ToBill(kind)
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.billingService.SubmitBill(c.Request.Context(), bill)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill created successfully", view)
}

// Update handles replacing a bill
func (h *BillHandler) Update(c *gin.Context) {
	kind, ok := GetKind(c)
	if !ok {
		return
	}

	var req request.BillRequest
	if !bindJSON(c, &req) {
		return
	}
	bill, err := req.ToBill(kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	bill.ID = c.Param("id")

	view, err := h.billingService.UpdateBill(c.Request.Context(), bill)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill updated successfully", view)
}

// RecordPayment handles adding a payment to a bill
func (h *BillHandler) RecordPayment(c *gin.Context) {
	kind, ok := GetKind(c)
	if !ok {
		return
	}

	var req request.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := req.ToInput()
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.billingService.RecordPayment(c.Request.Context(), kind, c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", result, overpaidWarnings(result.Receipt)...)
}
