package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sangkips/backoffice-api/internal/application/service"
	"github.com/sangkips/backoffice-api/internal/domain/repository"
	"github.com/sangkips/backoffice-api/internal/presentation/http/dto/request"
	"github.com/sangkips/backoffice-api/internal/presentation/http/dto/response"
	"github.com/sangkips/backoffice-api/pkg/ledger"
	"github.com/sangkips/backoffice-api/pkg/pagination"
)

// DraftHandler handles HTTP requests for bills the store API rejected
type DraftHandler struct {
	draftService *service.DraftService
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(draftService *service.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

// List handles listing the caller's drafts
func (h *DraftHandler) List(c *gin.Context) {
	var filter request.DraftFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query: "+err.Error())
		return
	}

	params := &repository.DraftFilterParams{
		Pagination: &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage},
		Search:     filter.Search,
	}
	if filter.Kind != "" {
		kind, ok := ledger.ParseKind(filter.Kind)
		if !ok {
			response.BadRequest(c, "Unknown bill kind")
			return
		}
		params.Kind = string(kind)
	}

	result, err := h.draftService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, "Drafts retrieved successfully", result)
}

// Get handles fetching a single draft
func (h *DraftHandler) Get(c *gin.Context) {
	id, ok := GetUUID(c, "id")
	if !ok {
		return
	}

	draft, err := h.draftService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Draft retrieved successfully", draft)
}

// Retry handles resubmitting a draft to the store
func (h *DraftHandler) Retry(c *gin.Context) {
	id, ok := GetUUID(c, "id")
	if !ok {
		return
	}

	view, err := h.draftService.Retry(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Draft submitted successfully", view)
}

// Delete handles discarding a draft
func (h *DraftHandler) Delete(c *gin.Context) {
	id, ok := GetUUID(c, "id")
	if !ok {
		return
	}

	if err := h.draftService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
