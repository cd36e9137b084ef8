package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"library-catalog/internal/data/entity"
	"library-catalog/internal/data/repository"
	"library-catalog/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxCategoryNameLength = 100

var ErrCategoryExists = errors.New("category already exists")

type CategoryService interface {
	ListCategories(ctx context.Context) (*response.CategoryListPage, error)
	CreateCategory(ctx context.Context, name string) (*response.CategoryResponse, error)
}

type categoryService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCategoryService(repo *repository.Repository, log *zap.Logger) CategoryService {
	return &categoryService{
		repo: repo,
		log:  log.With(zap.String("service", "category")),
	}
}

func (s *categoryService) ListCategories(ctx context.Context) (*response.CategoryListPage, error) {
	categories, err := s.repo.Category.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return &response.CategoryListPage{
		Categories: response.CategoriesToResponse(categories),
	}, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, name string) (*response.CategoryResponse, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return nil, newValidationError(map[string]string{"name": "This field is required."})
	case utf8.RuneCountInString(name) > maxCategoryNameLength:
		return nil, newValidationError(map[string]string{
			"name": fmt.Sprintf("Ensure this value has at most %d characters.", maxCategoryNameLength),
		})
	}

	category := &entity.Category{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: name,
	}

	if err := s.repo.Category.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.log.Info("Category created",
		zap.String("category_id", category.ID.String()),
		zap.String("name", category.Name),
	)

	resp := response.CategoryToResponse(category)
	return &resp, nil
}
