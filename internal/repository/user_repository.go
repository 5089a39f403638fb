package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rutushah/To-do-application/internal/model"
)

// UserRepository handles lookups and creation of user accounts.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByName looks a user up by exact (case-sensitive) name. Returns
// gorm.ErrRecordNotFound when no row matches.
func (r *UserRepository) FindByName(ctx context.Context, name string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, name, password string) (*model.User, error) {
	user := model.User{
		Name:        name,
		Password:    password,
		CreatedDate: time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// ValidateCredentials matches name and password in a single statement.
// Returns gorm.ErrRecordNotFound when either is wrong.
func (r *UserRepository) ValidateCredentials(ctx context.Context, name, password string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("name = ? AND password = ?", name, password).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
