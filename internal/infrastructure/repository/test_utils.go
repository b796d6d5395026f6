package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/backoffice-api/internal/domain/entity"
	domainRepo "github.com/sangkips/backoffice-api/internal/domain/repository"
	"github.com/sangkips/backoffice-api/pkg/pagination"
)

// FakeDraftRepo is an in-memory DraftRepository used for testing
type FakeDraftRepo struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]*entity.BillDraft
	// Err, when set, is returned by every method
	Err error
}

func (m *FakeDraftRepo) Create(ctx context.Context, draft *entity.BillDraft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if m.drafts == nil {
		m.drafts = make(map[uuid.UUID]*entity.BillDraft)
	}
	if draft.ID == uuid.Nil {
		draft.ID = uuid.New()
	}
	now := time.Now()
	draft.CreatedAt, draft.UpdatedAt = now, now
	cp := *draft
	m.drafts[draft.ID] = &cp
	return nil
}

func (m *FakeDraftRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.BillDraft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	caller, _ := GetCaller(ctx)
	if d, ok := m.drafts[id]; ok && d.Caller == caller {
		cp := *d
		return &cp, nil
	}
	return nil, nil
}

func (m *FakeDraftRepo) Update(ctx context.Context, draft *entity.BillDraft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	draft.UpdatedAt = time.Now()
	cp := *draft
	m.drafts[draft.ID] = &cp
	return nil
}

func (m *FakeDraftRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	caller, _ := GetCaller(ctx)
	if d, ok := m.drafts[id]; ok && d.Caller == caller {
		delete(m.drafts, id)
	}
	return nil
}

func (m *FakeDraftRepo) List(ctx context.Context, params *domainRepo.DraftFilterParams) ([]entity.BillDraft, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, 0, m.Err
	}
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}

	caller, _ := GetCaller(ctx)
	var out []entity.BillDraft
	for _, d := range m.drafts {
		if d.Caller != caller {
			continue
		}
		if params.Kind != "" && d.Kind != params.Kind {
			continue
		}
		if params.Search != "" && !strings.Contains(strings.ToLower(d.PartyName), strings.ToLower(params.Search)) {
			continue
		}
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Reference > out[j].Reference })

	total := int64(len(out))
	start := params.Pagination.Offset()
	if start > len(out) {
		start = len(out)
	}
	end := start + params.Pagination.PerPage
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

// Len returns the number of stored drafts
func (m *FakeDraftRepo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.drafts)
}

// FakeIdempotencyRepo is an in-memory IdempotencyRepository used for testing
type FakeIdempotencyRepo struct {
	mu   sync.Mutex
	keys map[string]*entity.IdempotencyKey
}

func (m *FakeIdempotencyRepo) GetByKey(ctx context.Context, key, caller string) (*entity.IdempotencyKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if k, ok := m.keys[caller+"|"+key]; ok {
		cp := *k
		return &cp, nil
	}
	return nil, nil
}

func (m *FakeIdempotencyRepo) Reserve(ctx context.Context, ikey *entity.IdempotencyKey, now time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.keys == nil {
		m.keys = make(map[string]*entity.IdempotencyKey)
	}
	id := ikey.Caller + "|" + ikey.Key
	if k, ok := m.keys[id]; ok && !k.ExpiresAt.Before(now) {
		return false, nil
	}
	cp := *ikey
	m.keys[id] = &cp
	return true, nil
}

func (m *FakeIdempotencyRepo) Release(ctx context.Context, key, caller string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if k, ok := m.keys[caller+"|"+key]; ok && k.IsPending() {
		delete(m.keys, caller+"|"+key)
	}
	return nil
}

func (m *FakeIdempotencyRepo) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.keys == nil {
		m.keys = make(map[string]*entity.IdempotencyKey)
	}
	cp := *ikey
	m.keys[ikey.Caller+"|"+ikey.Key] = &cp
	return nil
}

func (m *FakeIdempotencyRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k, v := range m.keys {
		if v.IsExpired(now) {
			delete(m.keys, k)
			n++
		}
	}
	return n, nil
}
