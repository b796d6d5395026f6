package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/backoffice-api/internal/domain/entity"
	"github.com/sangkips/backoffice-api/pkg/pagination"
)

// DraftRepository defines the interface for bill draft data operations.
// Every call is scoped to the caller attached to ctx.
type DraftRepository interface {
	Create(ctx context.Context, draft *entity.BillDraft) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.BillDraft, error)
	Update(ctx context.Context, draft *entity.BillDraft) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *DraftFilterParams) ([]entity.BillDraft, int64, error)
}

// DraftFilterParams contains filtering parameters for draft queries
type DraftFilterParams struct {
	Pagination *pagination.PaginationParams
	Kind       string
	Search     string
}
