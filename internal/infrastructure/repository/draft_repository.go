package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/backoffice-api/internal/domain/entity"
	domainRepo "github.com/sangkips/backoffice-api/internal/domain/repository"
	"github.com/sangkips/backoffice-api/pkg/pagination"
	"gorm.io/gorm"
)

type draftRepository struct {
	db *gorm.DB
}

// NewDraftRepository creates a new bill draft repository
func NewDraftRepository(db *gorm.DB) domainRepo.DraftRepository {
	return &draftRepository{db: db}
}

func (r *draftRepository) Create(ctx context.Context, draft *entity.BillDraft) error {
	return r.db.WithContext(ctx).Create(draft).Error
}

func (r *draftRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.BillDraft, error) {
	var draft entity.BillDraft
	err := r.db.WithContext(ctx).
		Scopes(CallerScope(ctx)).
		First(&draft, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &draft, err
}

func (r *draftRepository) Update(ctx context.Context, draft *entity.BillDraft) error {
	return r.db.WithContext(ctx).Save(draft).Error
}

func (r *draftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Scopes(CallerScope(ctx)).
		Delete(&entity.BillDraft{}, "id = ?", id).Error
}

func (r *draftRepository) List(ctx context.Context, params *domainRepo.DraftFilterParams) ([]entity.BillDraft, int64, error) {
	var drafts []entity.BillDraft
	var total int64

	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}

	query := r.db.WithContext(ctx).Model(&entity.BillDraft{}).Scopes(CallerScope(ctx))

	if params.Kind != "" {
		query = query.Where("kind = ?", params.Kind)
	}

	if params.Search != "" {
		query = query.Where("party_name ILIKE ? OR reference ILIKE ?", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("updated_at DESC").
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.PerPage).
		Find(&drafts).Error

	return drafts, total, err
}
