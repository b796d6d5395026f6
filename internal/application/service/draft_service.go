package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/sangkips/backoffice-api/internal/domain/entity"
	"github.com/sangkips/backoffice-api/internal/domain/repository"
	"github.com/sangkips/backoffice-api/pkg/apperror"
	"github.com/sangkips/backoffice-api/pkg/pagination"
)

// DraftService manages bills the store API rejected.
type DraftService struct {
	draftRepo repository.DraftRepository
	billing   *BillingService
}

// NewDraftService creates a new draft service
func NewDraftService(draftRepo repository.DraftRepository, billing *BillingService) *DraftService {
	return &DraftService{
		draftRepo: draftRepo,
		billing:   billing,
	}
}

// List returns the caller's drafts, newest first.
func (s *DraftService) List(ctx context.Context, params *repository.DraftFilterParams) (*pagination.PaginatedResult[entity.BillDraft], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	drafts, total, err := s.draftRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(drafts, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}

// Get returns one draft.
func (s *DraftService) Get(ctx context.Context, id uuid.UUID) (*entity.BillDraft, error) {
	draft, err := s.draftRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, apperror.NewNotFoundError("Draft")
	}
	return draft, nil
}

// Delete discards a draft.
func (s *DraftService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.draftRepo.Delete(ctx, id)
}

// Retry submits a draft to the store again.
func (s *DraftService) Retry(ctx context.Context, id uuid.UUID) (*BillView, error) {
	draft, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.billing.resubmit(ctx, draft)
}
