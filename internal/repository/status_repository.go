package repository

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/rutushah/To-do-application/internal/model"
)

// StatusRepository resolves status names to surrogate ids and back. The
// status table is a fixed enumeration, so all rows are cached on first use
// instead of being queried per operation.
type StatusRepository struct {
	db *gorm.DB

	mu      sync.Mutex
	byName  map[string]uint
	byID    map[uint]string
}

func NewStatusRepository(db *gorm.DB) *StatusRepository {
	return &StatusRepository{db: db}
}

// IDByName resolves a status name to its id. Returns gorm.ErrRecordNotFound
// for names outside the vocabulary.
func (r *StatusRepository) IDByName(ctx context.Context, name string) (uint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.loadLocked(ctx); err != nil {
		return 0, err
	}
	id, ok := r.byName[name]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	return id, nil
}

// NameByID is the inverse lookup, used when gating transitions on a task's
// current status.
func (r *StatusRepository) NameByID(ctx context.Context, id uint) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.loadLocked(ctx); err != nil {
		return "", err
	}
	name, ok := r.byID[id]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	return name, nil
}

func (r *StatusRepository) ListAll(ctx context.Context) ([]model.Status, error) {
	var statuses []model.Status
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&statuses).Error; err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	return statuses, nil
}

func (r *StatusRepository) loadLocked(ctx context.Context) error {
	if r.byName != nil {
		return nil
	}

	var rows []model.Status
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return fmt.Errorf("load statuses: %w", err)
	}

	r.byName = make(map[string]uint, len(rows))
	r.byID = make(map[uint]string, len(rows))
	for _, s := range rows {
		r.byName[s.StatusName] = s.ID
		r.byID[s.ID] = s.StatusName
	}
	return nil
}
