package service

import (
	"context"

	"github.com/rutushah/To-do-application/internal/model"
	"github.com/rutushah/To-do-application/internal/repository"
)

// CategoryService provides helpers around the seeded category table.
type CategoryService struct {
	repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.repo.ListAll(ctx)
}
