package service

import (
	"context"
	"testing"
	"time"

	"github.com/rutushah/To-do-application/internal/model"
)

func TestAddTaskStartsReadyToPick(t *testing.T) {
	auth, tasks := newServices(t)
	user := registerUser(t, auth, "alice")
	ctx := context.Background()

	if _, err := tasks.AddTask(ctx, "Finish assignment", user.ID, "work"); err != nil {
		t.Fatalf("add task: %v", err)
	}

	mine, err := tasks.ViewMyTasks(ctx, user.ID)
	if err != nil {
		t.Fatalf("view tasks: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 task, got %d", len(mine))
	}

	got := mine[0]
	if got.TaskName != "Finish assignment" {
		t.Errorf("expected task name to round-trip, got %q", got.TaskName)
	}
	if got.StatusName != model.StatusReadyToPick {
		t.Errorf("expected status %s, got %s", model.StatusReadyToPick, got.StatusName)
	}
	if got.CategoryName != "work" {
		t.Errorf("expected category work, got %s", got.CategoryName)
	}
	if got.Username != "alice" {
		t.Errorf("expected owner alice, got %s", got.Username)
	}
	if got.CreatedDate.IsZero() || got.UpdatedDate.IsZero() {
		t.Error("expected timestamps to be set")
	}
	if !got.CreatedDate.Equal(got.UpdatedDate) {
		t.Error("expected created == updated at creation")
	}
}

func TestAddTaskValidation(t *testing.T) {
	auth, tasks := newServices(t)
	user := registerUser(t, auth, "alice")
	ctx := context.Background()

	if _, err := tasks.AddTask(ctx, "   ", user.ID, "work"); !IsValidation(err) {
		t.Errorf("empty name: expected validation error, got %v", err)
	}

	_, err := tasks.AddTask(ctx, "Plan trip", user.ID, "chores")
	if !IsValidation(err) {
		t.Fatalf("unknown category: expected validation error, got %v", err)
	}
	if err.Error() != "Category not found: chores" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestStartTaskOnlyFromReadyOrBlocked(t *testing.T) {
	auth, tasks := newServices(t)
	user := registerUser(t, auth, "alice")
	ctx := context.Background()

	task, err := tasks.AddTask(ctx, "Write report", user.ID, "work")
	if err != nil {
		t.Fatalf("add task: %v", err)
	}

	if err := tasks.StartTask(ctx, task.ID, user.ID); err != nil {
		t.Fatalf("start from ready_to_pick: %v", err)
	}
	if got := statusOf(t, tasks, user.ID, task.ID); got != model.StatusInProgress {
		t.Errorf("expected in_progress, got %s", got)
	}

	if err := tasks.StartTask(ctx, task.ID, user.ID); !IsValidation(err) {
		t.Errorf("start from in_progress: expected validation error, got %v", err)
	}

	if err := tasks.MarkBlocked(ctx, task.ID, user.ID); err != nil {
		t.Fatalf("mark blocked: %v", err)
	}
	if err := tasks.StartTask(ctx, task.ID, user.ID); err != nil {
		t.Errorf("start from blocked: %v", err)
	}
}

func TestMutationsRequireOwnership(t *testing.T) {
	auth, tasks := newServices(t)
	owner := registerUser(t, auth, "alice")
	stranger := registerUser(t, auth, "bob")
	ctx := context.Background()

	task, err := tasks.AddTask(ctx, "Private task", owner.ID, "work")
	if err != nil {
		t.Fatalf("add task: %v", err)
	}

	ops := map[string]error{
		"start":    tasks.StartTask(ctx, task.ID, stranger.ID),
		"edit":     tasks.EditTask(ctx, task.ID, "Hijacked", stranger.ID),
		"complete": tasks.MarkCompleted(ctx, task.ID, stranger.ID),
		"block":    tasks.MarkBlocked(ctx, task.ID, stranger.ID),
		"delete":   tasks.DeleteTask(ctx, task.ID, stranger.ID),
	}
	for op, err := range ops {
		if !IsValidation(err) {
			t.Errorf("%s by non-owner: expected validation error, got %v", op, err)
		}
	}

	// The task is untouched.
	if got := statusOf(t, tasks, owner.ID, task.ID); got != model.StatusReadyToPick {
		t.Errorf("expected task to stay ready_to_pick, got %s", got)
	}
}

func TestEditForcesInProgress(t *testing.T) {
	auth, tasks := newServices(t)
	user := registerUser(t, auth, "alice")
	ctx := context.Background()

	task, err := tasks.AddTask(ctx, "Draft", user.ID, "study")
	if err != nil {
		t.Fatalf("add task: %v", err)
	}

	if err := tasks.EditTask(ctx, task.ID, "Final draft", user.ID); err != nil {
		t.Fatalf("edit task: %v", err)
	}

	mine, err := tasks.ViewMyTasks(ctx, user.ID)
	if err != nil {
		t.Fatalf("view tasks: %v", err)
	}
	if mine[0].TaskName != "Final draft" {
		t.Errorf("expected renamed task, got %q", mine[0].TaskName)
	}
	if mine[0].StatusName != model.StatusInProgress {
		t.Errorf("edit must force in_progress, got %s", mine[0].StatusName)
	}

	if err := tasks.EditTask(ctx, task.ID, "  ", user.ID); !IsValidation(err) {
		t.Errorf("empty new name: expected validation error, got %v", err)
	}
}

func TestMutationBumpsUpdatedDateOnly(t *testing.T) {
	auth, tasks := newServices(t)
	user := registerUser(t, auth, "alice")
	ctx := context.Background()

	task, err := tasks.AddTask(ctx, "Slow task", user.ID, "work")
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	before := viewOf(t, tasks, user.ID, task.ID)

	time.Sleep(20 * time.Millisecond)
	if err := tasks.MarkCompleted(ctx, task.ID, user.ID); err != nil {
		t.Fatalf("mark completed: %v", err)
	}

	after := viewOf(t, tasks, user.ID, task.ID)
	if !after.UpdatedDate.After(before.UpdatedDate) {
		t.Errorf("expected updated_date to advance: before=%v after=%v", before.UpdatedDate, after.UpdatedDate)
	}
	if !after.CreatedDate.Equal(before.CreatedDate) {
		t.Errorf("created_date must not change: before=%v after=%v", before.CreatedDate, after.CreatedDate)
	}
}

func TestSoftDeleteIsTerminal(t *testing.T) {
	auth, tasks := newServices(t)
	user := registerUser(t, auth, "alice")
	ctx := context.Background()

	keep, err := tasks.AddTask(ctx, "Keep me", user.ID, "work")
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	doomed, err := tasks.AddTask(ctx, "Delete me", user.ID, "work")
	if err != nil {
		t.Fatalf("add task: %v", err)
	}

	if err := tasks.DeleteTask(ctx, doomed.ID, user.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}

	active, err := tasks.GetActiveTasks(ctx, user.ID)
	if err != nil {
		t.Fatalf("active tasks: %v", err)
	}
	if len(active) != 1 || active[0].ID != keep.ID {
		t.Errorf("active listing must exclude the deleted task, got %v", active)
	}

	// Still visible in the unfiltered view, as deleted.
	if got := statusOf(t, tasks, user.ID, doomed.ID); got != model.StatusDeleted {
		t.Errorf("expected deleted status, got %s", got)
	}

	// Deleted is terminal: further mutation is rejected, still owner-checked.
	if err := tasks.EditTask(ctx, doomed.ID, "Zombie", user.ID); !IsValidation(err) {
		t.Errorf("edit deleted: expected validation error, got %v", err)
	}
	if err := tasks.MarkCompleted(ctx, doomed.ID, user.ID); !IsValidation(err) {
		t.Errorf("complete deleted: expected validation error, got %v", err)
	}
	if err := tasks.StartTask(ctx, doomed.ID, user.ID); !IsValidation(err) {
		t.Errorf("start deleted: expected validation error, got %v", err)
	}
	if err := tasks.DeleteTask(ctx, doomed.ID, user.ID); !IsValidation(err) {
		t.Errorf("delete twice: expected validation error, got %v", err)
	}
}

func TestAssignTaskReassignsOwner(t *testing.T) {
	auth, tasks := newServices(t)
	alice := registerUser(t, auth, "alice")
	bob := registerUser(t, auth, "bob")
	ctx := context.Background()

	task, err := tasks.AddTask(ctx, "Shared work", alice.ID, "work")
	if err != nil {
		t.Fatalf("add task: %v", err)
	}

	if err := tasks.AssignTask(ctx, task.ID, bob.ID); err != nil {
		t.Fatalf("assign task: %v", err)
	}

	bobsTasks, err := tasks.ViewMyTasks(ctx, bob.ID)
	if err != nil {
		t.Fatalf("view bob's tasks: %v", err)
	}
	if len(bobsTasks) != 1 || bobsTasks[0].ID != task.ID {
		t.Fatalf("expected bob to own the task, got %v", bobsTasks)
	}
	if bobsTasks[0].StatusName != model.StatusInProgress {
		t.Errorf("assignment must force in_progress, got %s", bobsTasks[0].StatusName)
	}

	alicesTasks, err := tasks.ViewMyTasks(ctx, alice.ID)
	if err != nil {
		t.Fatalf("view alice's tasks: %v", err)
	}
	if len(alicesTasks) != 0 {
		t.Errorf("expected alice to lose the task, got %v", alicesTasks)
	}

	if err := tasks.AssignTask(ctx, 9999, bob.ID); !IsValidation(err) {
		t.Errorf("assign missing task: expected validation error, got %v", err)
	}
}

func TestFilterMyTasksByNames(t *testing.T) {
	auth, tasks := newServices(t)
	user := registerUser(t, auth, "alice")
	other := registerUser(t, auth, "bob")
	ctx := context.Background()

	workTask, err := tasks.AddTask(ctx, "Work thing", user.ID, "work")
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	leisureTask, err := tasks.AddTask(ctx, "Fun thing", user.ID, "leisure")
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	if _, err := tasks.AddTask(ctx, "Bob's thing", other.ID, "work"); err != nil {
		t.Fatalf("add task: %v", err)
	}
	if err := tasks.StartTask(ctx, leisureTask.ID, user.ID); err != nil {
		t.Fatalf("start task: %v", err)
	}

	both, err := tasks.FilterMyTasksByNames(ctx, user.ID, model.StatusReadyToPick, "work")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(both) != 1 || both[0].ID != workTask.ID {
		t.Errorf("two filters: expected only the ready work task, got %v", both)
	}

	statusOnly, err := tasks.FilterMyTasksByNames(ctx, user.ID, model.StatusInProgress, "")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(statusOnly) != 1 || statusOnly[0].ID != leisureTask.ID {
		t.Errorf("status filter: expected only the started task, got %v", statusOnly)
	}

	// Blank filters are unconstrained: a superset of any filtered result.
	all, err := tasks.FilterMyTasksByNames(ctx, user.ID, "", "")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("no filters: expected both of alice's tasks, got %v", all)
	}

	none, err := tasks.FilterMyTasksByNames(ctx, user.ID, "nope", "")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("unknown status name should match nothing, got %v", none)
	}
}

func TestStartableTasksListing(t *testing.T) {
	auth, tasks := newServices(t)
	user := registerUser(t, auth, "alice")
	ctx := context.Background()

	first, err := tasks.AddTask(ctx, "First", user.ID, "work")
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	second, err := tasks.AddTask(ctx, "Second", user.ID, "work")
	if err != nil {
		t.Fatalf("add task: %v", err)
	}

	if err := tasks.StartTask(ctx, first.ID, user.ID); err != nil {
		t.Fatalf("start task: %v", err)
	}

	startable, err := tasks.GetStartableTasks(ctx, user.ID)
	if err != nil {
		t.Fatalf("startable tasks: %v", err)
	}
	if len(startable) != 1 || startable[0].ID != second.ID {
		t.Errorf("expected only the untouched task to be startable, got %v", startable)
	}

	if err := tasks.MarkBlocked(ctx, first.ID, user.ID); err != nil {
		t.Fatalf("mark blocked: %v", err)
	}
	startable, err = tasks.GetStartableTasks(ctx, user.ID)
	if err != nil {
		t.Fatalf("startable tasks: %v", err)
	}
	if len(startable) != 2 {
		t.Errorf("blocked tasks are startable again, got %v", startable)
	}
}

func statusOf(t *testing.T, tasks *TaskService, userID, taskID uint) string {
	t.Helper()
	return viewOf(t, tasks, userID, taskID).StatusName
}

func viewOf(t *testing.T, tasks *TaskService, userID, taskID uint) model.TaskView {
	t.Helper()

	mine, err := tasks.ViewMyTasks(context.Background(), userID)
	if err != nil {
		t.Fatalf("view tasks: %v", err)
	}
	for _, v := range mine {
		if v.ID == taskID {
			return v
		}
	}
	t.Fatalf("task %d not in listing for user %d", taskID, userID)
	return model.TaskView{}
}
