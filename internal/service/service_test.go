package service

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/rutushah/To-do-application/internal/model"
	"github.com/rutushah/To-do-application/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := repository.NewDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	// A pooled second connection would see its own empty in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func newServices(t *testing.T) (*AuthService, *TaskService) {
	t.Helper()

	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	statusRepo := repository.NewStatusRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	return NewAuthService(userRepo), NewTaskService(taskRepo, statusRepo, categoryRepo)
}

func registerUser(t *testing.T, auth *AuthService, name string) *model.User {
	t.Helper()

	user, err := auth.Register(context.Background(), NewSession(), name, "secret")
	if err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	return user
}
