package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rutushah/To-do-application/internal/model"
)

// ErrTaskNotFound is returned when an update matches no row.
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository issues the per-task statements. Every mutating statement
// sets updated_date as part of the same write.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, name string, statusID, userID, categoryID uint) (*model.Task, error) {
	now := time.Now()
	task := model.Task{
		TaskName:    name,
		StatusID:    statusID,
		UserID:      userID,
		CategoryID:  categoryID,
		CreatedDate: now,
		UpdatedDate: now,
	}
	if err := r.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return &task, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, taskID).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// IsOwnedBy reports whether the task exists and belongs to the user, as a
// single existence query.
func (r *TaskRepository) IsOwnedBy(ctx context.Context, taskID, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check task ownership: %w", err)
	}
	return count > 0, nil
}

func (r *TaskRepository) UpdateNameAndStatus(ctx context.Context, taskID uint, name string, statusID uint) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"task_name":    name,
			"status_id":    statusID,
			"updated_date": time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) UpdateOwnerAndStatus(ctx context.Context, taskID, ownerID, statusID uint) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"user_id":      ownerID,
			"status_id":    statusID,
			"updated_date": time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("assign task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, taskID, statusID uint) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"status_id":    statusID,
			"updated_date": time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("update task status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// listQuery is the shared projection for task listings: joined names,
// most-recently-updated first.
func (r *TaskRepository) listQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("tasks AS t").
		Select("t.id, t.task_name, u.name AS username, s.status_name, c.category_name, t.created_date, t.updated_date").
		Joins("LEFT JOIN status s ON t.status_id = s.id").
		Joins("LEFT JOIN category c ON t.category_id = c.id").
		Joins("LEFT JOIN users u ON t.user_id = u.id").
		Order("t.updated_date DESC")
}

// ListByOwner returns all of the user's tasks regardless of status,
// including soft-deleted ones.
func (r *TaskRepository) ListByOwner(ctx context.Context, userID uint) ([]model.TaskView, error) {
	var out []model.TaskView
	if err := r.listQuery(ctx).Where("t.user_id = ?", userID).Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return out, nil
}

// ListActiveByOwner excludes soft-deleted tasks.
func (r *TaskRepository) ListActiveByOwner(ctx context.Context, userID uint) ([]model.TaskView, error) {
	var out []model.TaskView
	if err := r.listQuery(ctx).
		Where("t.user_id = ? AND s.status_name <> ?", userID, model.StatusDeleted).
		Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("list active tasks: %w", err)
	}
	return out, nil
}

// ListStartableByOwner restricts to tasks that may enter in_progress.
func (r *TaskRepository) ListStartableByOwner(ctx context.Context, userID uint) ([]model.TaskView, error) {
	var out []model.TaskView
	if err := r.listQuery(ctx).
		Where("t.user_id = ? AND s.status_name IN ?", userID, []string{model.StatusReadyToPick, model.StatusBlocked}).
		Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("list startable tasks: %w", err)
	}
	return out, nil
}

// ListByOwnerFiltered applies optional status and category name equality
// filters on top of the ownership filter. Empty strings mean no constraint.
func (r *TaskRepository) ListByOwnerFiltered(ctx context.Context, userID uint, statusName, categoryName string) ([]model.TaskView, error) {
	q := r.listQuery(ctx).Where("t.user_id = ?", userID)
	if statusName != "" {
		q = q.Where("s.status_name = ?", statusName)
	}
	if categoryName != "" {
		q = q.Where("c.category_name = ?", categoryName)
	}

	var out []model.TaskView
	if err := q.Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("filter tasks: %w", err)
	}
	return out, nil
}
