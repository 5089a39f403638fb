package cmd

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rutushah/To-do-application/internal/config"
	"github.com/rutushah/To-do-application/internal/console"
	"github.com/rutushah/To-do-application/internal/repository"
	"github.com/rutushah/To-do-application/internal/service"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Start the interactive console",
	Long:  "Starts the menu-driven console front end on stdin/stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()

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

		c := console.New(os.Stdin, os.Stdout, auth, tasks, categories)
		return c.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
	// Running the binary with no subcommand opens the console.
	rootCmd.RunE = consoleCmd.RunE
}
