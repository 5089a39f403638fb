package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gorm.io/gorm"

	"github.com/rutushah/To-do-application/internal/model"
	"github.com/rutushah/To-do-application/internal/service"
)

const helpText = `Commands:
/register <name> <password> - create an account
/login <name> <password> - sign in
/logout - sign out
/add <category> <task name> - add a task (ready_to_pick)
/tasks - all my tasks
/active - tasks that are not deleted
/startable - tasks I can start
/begin <id> - start/resume a task
/done <id> - mark completed
/block <id> - mark blocked
/del <id> - delete (soft)
/edit <id> <new name> - rename (marks in_progress)
/assign <id> <username> - hand a task to another user
/filter <status|-> <category|-> - filter my tasks
/summary - today's task summary`

// Bot is the Telegram front end. Each chat gets its own Session, so several
// users can be logged in at once through one bot process.
type Bot struct {
	api        *tgbotapi.BotAPI
	auth       *service.AuthService
	tasks      *service.TaskService
	categories *service.CategoryService
	reminders  *service.ReminderService
	users      userFinder

	mu       sync.Mutex
	sessions map[int64]*service.Session
}

// userFinder resolves usernames for /assign.
type userFinder interface {
	FindByName(ctx context.Context, name string) (*model.User, error)
}

func New(token string, auth *service.AuthService, tasks *service.TaskService, categories *service.CategoryService, reminders *service.ReminderService, users userFinder) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	return &Bot{
		api:        api,
		auth:       auth,
		tasks:      tasks,
		categories: categories,
		reminders:  reminders,
		users:      users,
		sessions:   make(map[int64]*service.Session),
	}, nil
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Println("[info] start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		if update.Message == nil || update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
			continue
		}
		if err := b.handleMessage(ctx, update.Message); err != nil {
			log.Printf("handle message: %v", err)
		}
	}

	return nil
}

func (b *Bot) session(chatID int64) *service.Session {
	b.mu.Lock()
	defer b.mu.Unlock()

	sess, ok := b.sessions[chatID]
	if !ok {
		sess = service.NewSession()
		b.sessions[chatID] = sess
	}
	return sess
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID
	sess := b.session(chatID)

	fields := strings.Fields(msg.Text)
	if len(fields) == 0 {
		return b.reply(chatID, helpText)
	}
	command, args := fields[0], fields[1:]

	switch command {
	case "/start", "/help":
		return b.reply(chatID, "Collaborative To-Do bot.\n\n"+helpText)
	case "/register":
		text, err := b.register(ctx, sess, args)
		return b.answer(chatID, text, err)
	case "/login":
		text, err := b.login(ctx, sess, args)
		return b.answer(chatID, text, err)
	case "/logout":
		b.auth.Logout(sess)
		return b.reply(chatID, "Logged out.")
	}

	if !sess.LoggedIn() {
		return b.reply(chatID, "Please /login or /register first.")
	}
	user := sess.User()

	var text string
	var err error
	switch command {
	case "/add":
		text, err = b.addTask(ctx, user, args)
	case "/tasks":
		text, err = b.listTasks(b.tasks.ViewMyTasks(ctx, user.ID))
	case "/active":
		text, err = b.listTasks(b.tasks.GetActiveTasks(ctx, user.ID))
	case "/startable":
		text, err = b.listTasks(b.tasks.GetStartableTasks(ctx, user.ID))
	case "/begin":
		text, err = b.withTaskID(command, args, func(id uint) error {
			return b.tasks.StartTask(ctx, id, user.ID)
		}, "Task started (in_progress).")
	case "/done":
		text, err = b.withTaskID(command, args, func(id uint) error {
			return b.tasks.MarkCompleted(ctx, id, user.ID)
		}, "Task marked completed.")
	case "/block":
		text, err = b.withTaskID(command, args, func(id uint) error {
			return b.tasks.MarkBlocked(ctx, id, user.ID)
		}, "Task marked blocked.")
	case "/del":
		text, err = b.withTaskID(command, args, func(id uint) error {
			return b.tasks.DeleteTask(ctx, id, user.ID)
		}, "Task deleted (soft delete).")
	case "/edit":
		text, err = b.editTask(ctx, user, args)
	case "/assign":
		text, err = b.assignTask(ctx, args)
	case "/filter":
		text, err = b.filterTasks(ctx, user, args)
	case "/summary":
		text, err = b.summary(ctx, user)
	default:
		return b.reply(chatID, "Unknown command.\n\n"+helpText)
	}
	return b.answer(chatID, text, err)
}

// listTasks adapts a listing result to the reply shape.
func (b *Bot) listTasks(tasks []model.TaskView, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return formatTasks(tasks), nil
}

func (b *Bot) register(ctx context.Context, sess *service.Session, args []string) (string, error) {
	if len(args) != 2 {
		return "Usage: /register <name> <password>", nil
	}
	user, err := b.auth.Register(ctx, sess, args[0], args[1])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Registered and logged in as %s.", user.Name), nil
}

func (b *Bot) login(ctx context.Context, sess *service.Session, args []string) (string, error) {
	if len(args) != 2 {
		return "Usage: /login <name> <password>", nil
	}
	user, err := b.auth.Login(ctx, sess, args[0], args[1])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Welcome back, %s.", user.Name), nil
}

func (b *Bot) addTask(ctx context.Context, user *model.User, args []string) (string, error) {
	if len(args) < 2 {
		categories, err := b.categories.List(ctx)
		if err != nil {
			return "", err
		}
		names := make([]string, 0, len(categories))
		for _, c := range categories {
			names = append(names, c.CategoryName)
		}
		return "Usage: /add <category> <task name>\nCategories: " + strings.Join(names, ", "), nil
	}
	task, err := b.tasks.AddTask(ctx, strings.Join(args[1:], " "), user.ID, args[0])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Task [%d] added (%s).", task.ID, model.StatusReadyToPick), nil
}

func (b *Bot) editTask(ctx context.Context, user *model.User, args []string) (string, error) {
	if len(args) < 2 {
		return "Usage: /edit <id> <new name>", nil
	}
	id, err := parseTaskID(args[0])
	if err != nil {
		return "", err
	}
	if err := b.tasks.EditTask(ctx, id, strings.Join(args[1:], " "), user.ID); err != nil {
		return "", err
	}
	return "Task updated.", nil
}

func (b *Bot) assignTask(ctx context.Context, args []string) (string, error) {
	if len(args) != 2 {
		return "Usage: /assign <id> <username>", nil
	}
	id, err := parseTaskID(args[0])
	if err != nil {
		return "", err
	}
	assignee, err := b.users.FindByName(ctx, args[1])
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", &service.ValidationError{Message: "User not found: " + args[1]}
	}
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}
	if err := b.tasks.AssignTask(ctx, id, assignee.ID); err != nil {
		return "", err
	}
	return fmt.Sprintf("Task [%d] assigned to %s (in_progress).", id, assignee.Name), nil
}

func (b *Bot) filterTasks(ctx context.Context, user *model.User, args []string) (string, error) {
	statusName, categoryName := "", ""
	if len(args) > 0 && args[0] != "-" {
		statusName = args[0]
	}
	if len(args) > 1 && args[1] != "-" {
		categoryName = args[1]
	}
	tasks, err := b.tasks.FilterMyTasksByNames(ctx, user.ID, statusName, categoryName)
	if err != nil {
		return "", err
	}
	return formatTasks(tasks), nil
}

func (b *Bot) summary(ctx context.Context, user *model.User) (string, error) {
	return b.reminders.DailySummary(ctx, user, time.Now())
}

func (b *Bot) withTaskID(command string, args []string, op func(uint) error, success string) (string, error) {
	if len(args) != 1 {
		return "Usage: " + command + " <task id>", nil
	}
	id, err := parseTaskID(args[0])
	if err != nil {
		return "", err
	}
	if err := op(id); err != nil {
		return "", err
	}
	return success, nil
}

// answer sends text on success and routes errors through replyErr.
func (b *Bot) answer(chatID int64, text string, err error) error {
	if err != nil {
		return b.replyErr(chatID, err)
	}
	return b.reply(chatID, text)
}

// replyErr sends validation messages verbatim; system errors get a generic
// reply and propagate for logging.
func (b *Bot) replyErr(chatID int64, err error) error {
	if service.IsValidation(err) {
		return b.reply(chatID, err.Error())
	}
	if sendErr := b.reply(chatID, "Something went wrong, please try again."); sendErr != nil {
		return sendErr
	}
	return err
}

func (b *Bot) reply(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// SendDailySummaries pushes the daily summary to every chat with a logged-in
// session. Called from the cron job.
func (b *Bot) SendDailySummaries(ctx context.Context) error {
	b.mu.Lock()
	recipients := make(map[int64]*model.User)
	for chatID, sess := range b.sessions {
		if sess.LoggedIn() {
			recipients[chatID] = sess.User()
		}
	}
	b.mu.Unlock()

	for chatID, user := range recipients {
		if err := ctx.Err(); err != nil {
			return err
		}
		summary, err := b.reminders.DailySummary(ctx, user, time.Now())
		if err != nil {
			log.Printf("summary for %s: %v", user.Name, err)
			continue
		}
		if err := b.reply(chatID, summary); err != nil {
			log.Printf("send summary to chat %d: %v", chatID, err)
		}
	}
	return nil
}

func parseTaskID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, &service.ValidationError{Message: "Task id must be a number."}
	}
	return uint(id), nil
}

func formatTasks(tasks []model.TaskView) string {
	if len(tasks) == 0 {
		return "(No tasks found)"
	}
	var sb strings.Builder
	for _, t := range tasks {
		sb.WriteString(fmt.Sprintf("[%d] %s | Status=%s | Category=%s | Updated=%s\n",
			t.ID, t.TaskName, t.StatusName, t.CategoryName, t.UpdatedDate.Format("2006-01-02 15:04")))
	}
	return strings.TrimSpace(sb.String())
}
