package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rutushah/To-do-application/internal/bot"
	"github.com/rutushah/To-do-application/internal/config"
	"github.com/rutushah/To-do-application/internal/repository"
	"github.com/rutushah/To-do-application/internal/service"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Start the Telegram front end",
	Long:  "Starts the Telegram bot with per-chat sessions and the daily summary scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		if cfg.TelegramToken == "" {
			return fmt.Errorf("TELEGRAM_TOKEN is required")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		db, err := repository.NewDB(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		userRepo := repository.NewUserRepository(db)
		statusRepo := repository.NewStatusRepository(db)
		categoryRepo := repository.NewCategoryRepository(db)
		taskRepo := repository.NewTaskRepository(db)

		auth := service.NewAuthService(userRepo)
		tasks := service.NewTaskService(taskRepo, statusRepo, categoryRepo)
		categories := service.NewCategoryService(categoryRepo)
		reminders := service.NewReminderService(tasks)

		b, err := bot.New(cfg.TelegramToken, auth, tasks, categories, reminders, userRepo)
		if err != nil {
			return err
		}

		scheduler := service.NewSchedulerService(time.Local)
		if _, err := scheduler.ScheduleDaily(cfg.SummaryTime, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := b.SendDailySummaries(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("summary: %v", err)
			}
		}); err != nil {
			return fmt.Errorf("schedule summaries: %w", err)
		}
		scheduler.Start()
		defer scheduler.Stop()

		log.Println("To-do bot started.")
		if err := b.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		log.Println("Shutdown complete.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(botCmd)
}
