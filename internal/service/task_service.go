package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/rutushah/To-do-application/internal/model"
	"github.com/rutushah/To-do-application/internal/repository"
)

// TaskService enforces the task lifecycle: which status transitions are
// allowed, and that only a task's owner may mutate it. Symbolic status and
// category names are resolved to surrogate keys before every write.
type TaskService struct {
	tasks      *repository.TaskRepository
	statuses   *repository.StatusRepository
	categories *repository.CategoryRepository
}

func NewTaskService(tasks *repository.TaskRepository, statuses *repository.StatusRepository, categories *repository.CategoryRepository) *TaskService {
	return &TaskService{tasks: tasks, statuses: statuses, categories: categories}
}

// AddTask creates a task in ready_to_pick owned by ownerID.
func (s *TaskService) AddTask(ctx context.Context, name string, ownerID uint, categoryName string) (*model.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationf("Task name cannot be empty.")
	}

	categoryName = strings.TrimSpace(categoryName)
	categoryID, err := s.categories.IDByName(ctx, categoryName)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, validationf("Category not found: %s", categoryName)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve category: %w", err)
	}

	readyID, err := s.statusID(ctx, model.StatusReadyToPick)
	if err != nil {
		return nil, err
	}

	return s.tasks.Create(ctx, name, readyID, ownerID, categoryID)
}

// EditTask renames a task. Editing marks the task in_progress as a side
// effect.
func (s *TaskService) EditTask(ctx context.Context, taskID uint, newName string, userID uint) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return validationf("Task name cannot be empty.")
	}

	task, err := s.ownedTask(ctx, taskID, userID)
	if err != nil {
		return err
	}
	if err := s.rejectDeleted(ctx, task, "edit"); err != nil {
		return err
	}

	inProgressID, err := s.statusID(ctx, model.StatusInProgress)
	if err != nil {
		return err
	}
	return s.mapTaskErr(s.tasks.UpdateNameAndStatus(ctx, taskID, newName, inProgressID), taskID)
}

// StartTask moves a task into in_progress. Only ready_to_pick and blocked
// tasks may be started.
func (s *TaskService) StartTask(ctx context.Context, taskID, userID uint) error {
	task, err := s.ownedTask(ctx, taskID, userID)
	if err != nil {
		return err
	}

	current, err := s.statusName(ctx, task.StatusID)
	if err != nil {
		return err
	}
	if current != model.StatusReadyToPick && current != model.StatusBlocked {
		return validationf("Task can only be started from ready_to_pick or blocked status.")
	}

	inProgressID, err := s.statusID(ctx, model.StatusInProgress)
	if err != nil {
		return err
	}
	return s.mapTaskErr(s.tasks.UpdateStatus(ctx, taskID, inProgressID), taskID)
}

func (s *TaskService) MarkCompleted(ctx context.Context, taskID, userID uint) error {
	return s.markStatus(ctx, taskID, userID, model.StatusCompleted)
}

func (s *TaskService) MarkBlocked(ctx context.Context, taskID, userID uint) error {
	return s.markStatus(ctx, taskID, userID, model.StatusBlocked)
}

// DeleteTask soft-deletes: the row stays queryable by id but leaves default
// listings.
func (s *TaskService) DeleteTask(ctx context.Context, taskID, userID uint) error {
	task, err := s.ownedTask(ctx, taskID, userID)
	if err != nil {
		return err
	}
	if err := s.rejectDeleted(ctx, task, "delete"); err != nil {
		return err
	}

	deletedID, err := s.statusID(ctx, model.StatusDeleted)
	if err != nil {
		return err
	}
	return s.mapTaskErr(s.tasks.UpdateStatus(ctx, taskID, deletedID), taskID)
}

// AssignTask hands a task to another user and marks it in_progress. There is
// no ownership check here: assignment is a privileged escalation.
func (s *TaskService) AssignTask(ctx context.Context, taskID, assigneeID uint) error {
	inProgressID, err := s.statusID(ctx, model.StatusInProgress)
	if err != nil {
		return err
	}
	return s.mapTaskErr(s.tasks.UpdateOwnerAndStatus(ctx, taskID, assigneeID, inProgressID), taskID)
}

// ListStatuses returns the status vocabulary, so front ends can show the
// valid names when filtering.
func (s *TaskService) ListStatuses(ctx context.Context) ([]model.Status, error) {
	return s.statuses.ListAll(ctx)
}

// ViewMyTasks returns every task the user owns, newest update first,
// including soft-deleted ones.
func (s *TaskService) ViewMyTasks(ctx context.Context, userID uint) ([]model.TaskView, error) {
	return s.tasks.ListByOwner(ctx, userID)
}

// GetActiveTasks excludes soft-deleted tasks.
func (s *TaskService) GetActiveTasks(ctx context.Context, userID uint) ([]model.TaskView, error) {
	return s.tasks.ListActiveByOwner(ctx, userID)
}

// GetStartableTasks restricts to ready_to_pick and blocked.
func (s *TaskService) GetStartableTasks(ctx context.Context, userID uint) ([]model.TaskView, error) {
	return s.tasks.ListStartableByOwner(ctx, userID)
}

// FilterMyTasksByNames applies zero, one or both name filters on top of the
// ownership filter. Blank means no constraint; unknown names simply match
// nothing.
func (s *TaskService) FilterMyTasksByNames(ctx context.Context, userID uint, statusName, categoryName string) ([]model.TaskView, error) {
	return s.tasks.ListByOwnerFiltered(ctx, userID, strings.TrimSpace(statusName), strings.TrimSpace(categoryName))
}

func (s *TaskService) markStatus(ctx context.Context, taskID, userID uint, statusName string) error {
	task, err := s.ownedTask(ctx, taskID, userID)
	if err != nil {
		return err
	}
	if err := s.rejectDeleted(ctx, task, "modify"); err != nil {
		return err
	}

	statusID, err := s.statusID(ctx, statusName)
	if err != nil {
		return err
	}
	return s.mapTaskErr(s.tasks.UpdateStatus(ctx, taskID, statusID), taskID)
}

// ownedTask verifies ownership and loads the row. A missing task and a
// foreign task produce the same error, so task existence is not leaked.
func (s *TaskService) ownedTask(ctx context.Context, taskID, userID uint) (*model.Task, error) {
	owned, err := s.tasks.IsOwnedBy(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, validationf("Task not found or not owned by you.")
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, validationf("Task not found or not owned by you.")
	}
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}

// rejectDeleted keeps "deleted" terminal.
func (s *TaskService) rejectDeleted(ctx context.Context, task *model.Task, verb string) error {
	current, err := s.statusName(ctx, task.StatusID)
	if err != nil {
		return err
	}
	if current == model.StatusDeleted {
		return validationf("Cannot %s a deleted task.", verb)
	}
	return nil
}

func (s *TaskService) statusID(ctx context.Context, name string) (uint, error) {
	id, err := s.statuses.IDByName(ctx, name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, validationf("Status not found: %s", name)
	}
	if err != nil {
		return 0, fmt.Errorf("resolve status: %w", err)
	}
	return id, nil
}

func (s *TaskService) statusName(ctx context.Context, id uint) (string, error) {
	name, err := s.statuses.NameByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("resolve status id %d: %w", id, err)
	}
	return name, nil
}

func (s *TaskService) mapTaskErr(err error, taskID uint) error {
	if errors.Is(err, repository.ErrTaskNotFound) {
		return validationf("Task not found: %d", taskID)
	}
	return err
}
