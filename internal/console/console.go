package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rutushah/To-do-application/internal/model"
	"github.com/rutushah/To-do-application/internal/service"
)

// Console is the menu-driven front end. It reads lines from in and prints to
// out, so tests can drive it with a scripted reader. One Console owns one
// Session for its whole run.
type Console struct {
	in         *bufio.Scanner
	out        io.Writer
	auth       *service.AuthService
	tasks      *service.TaskService
	categories *service.CategoryService
	sess       *service.Session
}

func New(in io.Reader, out io.Writer, auth *service.AuthService, tasks *service.TaskService, categories *service.CategoryService) *Console {
	return &Console{
		in:         bufio.NewScanner(in),
		out:        out,
		auth:       auth,
		tasks:      tasks,
		categories: categories,
		sess:       service.NewSession(),
	}
}

// Run alternates between the auth menu and the task menu until the user
// exits or input ends. Errors from individual operations are printed and the
// loop continues; only input exhaustion ends the run.
func (c *Console) Run(ctx context.Context) error {
	for {
		if !c.sess.LoggedIn() {
			exit, ok := c.authMenu(ctx)
			if exit || !ok {
				return nil
			}
			continue
		}
		if ok := c.taskMenu(ctx); !ok {
			return nil
		}
	}
}

// authMenu returns exit=true when the user picked Exit and ok=false on EOF.
func (c *Console) authMenu(ctx context.Context) (exit, ok bool) {
	fmt.Fprintln(c.out, "\n=== Collaborative To-Do ===")
	fmt.Fprintln(c.out, "1) Register")
	fmt.Fprintln(c.out, "2) Login")
	fmt.Fprintln(c.out, "3) Exit")

	choice, ok := c.readLine("Choose: ")
	if !ok {
		return false, false
	}

	switch choice {
	case "1":
		name, ok := c.readLine("Username: ")
		if !ok {
			return false, false
		}
		password, ok := c.readLine("Password: ")
		if !ok {
			return false, false
		}
		user, err := c.auth.Register(ctx, c.sess, name, password)
		if err != nil {
			c.reportErr(err)
			return false, true
		}
		fmt.Fprintf(c.out, "Registered and logged in as %s.\n", user.Name)
	case "2":
		name, ok := c.readLine("Username: ")
		if !ok {
			return false, false
		}
		password, ok := c.readLine("Password: ")
		if !ok {
			return false, false
		}
		user, err := c.auth.Login(ctx, c.sess, name, password)
		if err != nil {
			c.reportErr(err)
			return false, true
		}
		fmt.Fprintf(c.out, "Welcome back, %s.\n", user.Name)
	case "3":
		fmt.Fprintln(c.out, "Bye.")
		return true, true
	default:
		fmt.Fprintln(c.out, "Invalid option. Please choose 1-3.")
	}
	return false, true
}

// taskMenu runs one round of the logged-in menu; returns false on EOF.
func (c *Console) taskMenu(ctx context.Context) bool {
	user := c.sess.User()

	fmt.Fprintf(c.out, "\n=== Task Menu (User: %s) ===\n", user.Name)
	fmt.Fprintln(c.out, "1) Add Task")
	fmt.Fprintln(c.out, "2) Edit Task Name")
	fmt.Fprintln(c.out, "3) Start/Resume Task")
	fmt.Fprintln(c.out, "4) Mark Completed")
	fmt.Fprintln(c.out, "5) Mark Blocked")
	fmt.Fprintln(c.out, "6) Delete Task")
	fmt.Fprintln(c.out, "7) View My Tasks")
	fmt.Fprintln(c.out, "8) Filter My Tasks (by status name/category name)")
	fmt.Fprintln(c.out, "0) Logout")

	choice, ok := c.readLine("Choose: ")
	if !ok {
		return false
	}

	var err error
	switch choice {
	case "1":
		ok, err = c.addTask(ctx, user)
	case "2":
		ok, err = c.editTask(ctx, user)
	case "3":
		ok, err = c.startTask(ctx, user)
	case "4":
		ok, err = c.markTask(ctx, user, "Mark Completed", c.tasks.MarkCompleted)
	case "5":
		ok, err = c.markTask(ctx, user, "Mark Blocked", c.tasks.MarkBlocked)
	case "6":
		ok, err = c.deleteTask(ctx, user)
	case "7":
		err = c.viewMyTasks(ctx, user)
	case "8":
		ok, err = c.filterMyTasks(ctx, user)
	case "0":
		c.auth.Logout(c.sess)
		fmt.Fprintln(c.out, "Logged out.")
		return true
	default:
		fmt.Fprintln(c.out, "Invalid option. Please choose 0-8.")
		return true
	}

	if err != nil {
		c.reportErr(err)
	}
	return ok
}

func (c *Console) addTask(ctx context.Context, user *model.User) (bool, error) {
	name, ok := c.readLine("Task name: ")
	if !ok {
		return false, nil
	}

	categories, err := c.categories.List(ctx)
	if err != nil {
		return true, err
	}
	fmt.Fprintln(c.out, "\nAvailable categories:")
	for _, cat := range categories {
		fmt.Fprintf(c.out, " - %s\n", cat.CategoryName)
	}

	categoryName, ok := c.readLine("\nCategory name (type exactly as above): ")
	if !ok {
		return false, nil
	}

	if _, err := c.tasks.AddTask(ctx, name, user.ID, categoryName); err != nil {
		return true, err
	}
	fmt.Fprintln(c.out, "Task added successfully.")
	return true, nil
}

func (c *Console) editTask(ctx context.Context, user *model.User) (bool, error) {
	tasks, err := c.tasks.ViewMyTasks(ctx, user.ID)
	if err != nil {
		return true, err
	}

	selected, ok := c.pickTask(tasks, "My Tasks (choose a task to edit)")
	if !ok {
		return false, nil
	}
	if selected == nil {
		return true, nil
	}

	fmt.Fprintf(c.out, "Selected: %s\n", selected.TaskName)
	newName, ok := c.readLine("New task name: ")
	if !ok {
		return false, nil
	}

	if err := c.tasks.EditTask(ctx, selected.ID, newName, user.ID); err != nil {
		return true, err
	}
	fmt.Fprintln(c.out, "Task updated successfully.")
	return true, nil
}

func (c *Console) startTask(ctx context.Context, user *model.User) (bool, error) {
	tasks, err := c.tasks.GetStartableTasks(ctx, user.ID)
	if err != nil {
		return true, err
	}
	if len(tasks) == 0 {
		fmt.Fprintln(c.out, "(No startable tasks. Only ready_to_pick or blocked tasks can be started.)")
		return true, nil
	}

	selected, ok := c.pickTask(tasks, "Start Task (Ready to Pick / Blocked)")
	if !ok {
		return false, nil
	}
	if selected == nil {
		return true, nil
	}

	if err := c.tasks.StartTask(ctx, selected.ID, user.ID); err != nil {
		return true, err
	}
	fmt.Fprintf(c.out, "Started: %s (status set to in_progress)\n", selected.TaskName)
	return true, nil
}

func (c *Console) markTask(ctx context.Context, user *model.User, title string, mark func(context.Context, uint, uint) error) (bool, error) {
	tasks, err := c.tasks.GetActiveTasks(ctx, user.ID)
	if err != nil {
		return true, err
	}

	selected, ok := c.pickTask(tasks, title)
	if !ok {
		return false, nil
	}
	if selected == nil {
		return true, nil
	}

	if err := mark(ctx, selected.ID, user.ID); err != nil {
		return true, err
	}
	fmt.Fprintf(c.out, "Done: %s\n", selected.TaskName)
	return true, nil
}

func (c *Console) deleteTask(ctx context.Context, user *model.User) (bool, error) {
	tasks, err := c.tasks.GetActiveTasks(ctx, user.ID)
	if err != nil {
		return true, err
	}

	selected, ok := c.pickTask(tasks, "Delete Task")
	if !ok {
		return false, nil
	}
	if selected == nil {
		return true, nil
	}

	confirm, ok := c.readLine(fmt.Sprintf("Are you sure you want to delete %q? (y/n): ", selected.TaskName))
	if !ok {
		return false, nil
	}
	if confirm != "y" && confirm != "Y" {
		fmt.Fprintln(c.out, "Cancelled.")
		return true, nil
	}

	if err := c.tasks.DeleteTask(ctx, selected.ID, user.ID); err != nil {
		return true, err
	}
	fmt.Fprintf(c.out, "Task deleted (soft delete): %s\n", selected.TaskName)
	return true, nil
}

func (c *Console) viewMyTasks(ctx context.Context, user *model.User) error {
	tasks, err := c.tasks.ViewMyTasks(ctx, user.ID)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, "\n--- My Tasks ---")
	c.renderTasks(tasks)
	return nil
}

func (c *Console) filterMyTasks(ctx context.Context, user *model.User) (bool, error) {
	statuses, err := c.tasks.ListStatuses(ctx)
	if err != nil {
		return true, err
	}
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.StatusName)
	}
	fmt.Fprintf(c.out, "Statuses: %s\n", strings.Join(names, ", "))

	statusName, ok := c.readLine("Status name (press Enter to skip): ")
	if !ok {
		return false, nil
	}
	categoryName, ok := c.readLine("Category name (e.g. work/leisure) (press Enter to skip): ")
	if !ok {
		return false, nil
	}

	tasks, err := c.tasks.FilterMyTasksByNames(ctx, user.ID, statusName, categoryName)
	if err != nil {
		return true, err
	}

	fmt.Fprintln(c.out, "\n--- Filtered Tasks ---")
	c.renderTasks(tasks)
	return true, nil
}

func (c *Console) renderTasks(tasks []model.TaskView) {
	if len(tasks) == 0 {
		fmt.Fprintln(c.out, "(No tasks found)")
		return
	}
	for _, t := range tasks {
		fmt.Fprintf(c.out, "[%d] %s | %s | Status=%s | Category=%s | Created=%s | Updated=%s\n",
			t.ID, t.Username, t.TaskName, t.StatusName, t.CategoryName,
			t.CreatedDate.Format("2006-01-02 15:04"), t.UpdatedDate.Format("2006-01-02 15:04"))
	}
}

// pickTask shows a numbered list and reads a 1-based position. Returns a nil
// task (with ok=true) when the list is empty or the pick is invalid; the
// caller just returns to the menu. ok=false means input ended.
func (c *Console) pickTask(tasks []model.TaskView, title string) (*model.TaskView, bool) {
	if len(tasks) == 0 {
		fmt.Fprintln(c.out, "(No tasks found)")
		return nil, true
	}

	fmt.Fprintf(c.out, "\n--- %s ---\n", title)
	for i, t := range tasks {
		fmt.Fprintf(c.out, "%d) [%d] %s | Status=%s | Category=%s\n", i+1, t.ID, t.TaskName, t.StatusName, t.CategoryName)
	}

	input, ok := c.readLine(fmt.Sprintf("\nChoose task number (1-%d): ", len(tasks)))
	if !ok {
		return nil, false
	}

	pick, err := strconv.Atoi(input)
	if err != nil {
		fmt.Fprintln(c.out, "Invalid input. Please enter a number.")
		return nil, true
	}
	if pick < 1 || pick > len(tasks) {
		fmt.Fprintf(c.out, "Invalid choice. Please select between 1 and %d.\n", len(tasks))
		return nil, true
	}

	return &tasks[pick-1], true
}

// reportErr prints validation failures as plain messages and everything else
// with an Error prefix. The loop continues either way.
func (c *Console) reportErr(err error) {
	if service.IsValidation(err) {
		fmt.Fprintln(c.out, err.Error())
		return
	}
	fmt.Fprintf(c.out, "Error: %v\n", err)
}

func (c *Console) readLine(prompt string) (string, bool) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}
