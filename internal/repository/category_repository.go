package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/rutushah/To-do-application/internal/model"
)

// CategoryRepository reads the seeded category lookup table.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// IDByName resolves a category name to its id. Returns
// gorm.ErrRecordNotFound when no such category exists.
func (r *CategoryRepository) IDByName(ctx context.Context, name string) (uint, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("category_name = ?", name).First(&category).Error; err != nil {
		return 0, err
	}
	return category.ID, nil
}

func (r *CategoryRepository) ListAll(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Order("category_name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}
