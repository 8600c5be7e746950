package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"linkdir/internal/authz"
	"linkdir/internal/cache"
	apperrors "linkdir/internal/errors"
	"linkdir/internal/model"
	"linkdir/internal/repository"
	"linkdir/internal/validation"
)

// CategoryService exposes category operations. Reads are public; writes are
// gated to elevated actors.
type CategoryService interface {
	List(ctx context.Context, title string) ([]model.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Category, error)
	Create(ctx context.Context, actor *authz.Actor, req *validation.CreateCategoryRequest) (*model.Category, error)
	Patch(ctx context.Context, actor *authz.Actor, id uuid.UUID, req *validation.PatchCategoryRequest) (*model.Category, error)
	Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error
}

type categoryService struct {
	categories repository.CategoryRepository
	cache      *cache.Client
}

// NewCategoryService builds a CategoryService with repository and cache.
func NewCategoryService(categories repository.CategoryRepository, cache *cache.Client) CategoryService {
	return &categoryService{categories: categories, cache: cache}
}

func (s *categoryService) List(ctx context.Context, title string) ([]model.Category, error) {
	return s.categories.List(ctx, title)
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return category, nil
}

// Create inserts a new category. The title pre-check gives a fast 409; the
// case-insensitive unique index is the authoritative guard and its
// duplicate-key signal maps to the same conflict outcome.
func (s *categoryService) Create(ctx context.Context, actor *authz.Actor, req *validation.CreateCategoryRequest) (*model.Category, error) {
	if !authz.CanManageCatalog(actor) {
		return nil, apperrors.ErrAccessDenied
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	if existing, err := s.categories.FindByTitle(ctx, req.Title); err == nil && existing != nil {
		return nil, apperrors.ErrCategoryTitleTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check title: %w", err)
	}

	category := &model.Category{Title: req.Title}
	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrCategoryTitleTaken
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *categoryService) Patch(ctx context.Context, actor *authz.Actor, id uuid.UUID, req *validation.PatchCategoryRequest) (*model.Category, error) {
	if !authz.CanManageCatalog(actor) {
		return nil, apperrors.ErrAccessDenied
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	if req.Title != nil && !strings.EqualFold(*req.Title, category.Title) {
		if existing, err := s.categories.FindByTitle(ctx, *req.Title); err == nil && existing != nil {
			return nil, apperrors.ErrCategoryTitleTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check title: %w", err)
		}
		category.Title = *req.Title
	} else if req.Title != nil {
		// Same title, possibly with different casing.
		category.Title = *req.Title
	}

	if err := s.categories.Update(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrCategoryTitleTaken
		}
		return nil, fmt.Errorf("update category: %w", err)
	}

	// The enrichment cache must never serve the old title.
	_ = s.cache.Delete(ctx, categoryTitleKey(id))
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error {
	if !authz.CanManageCatalog(actor) {
		return apperrors.ErrAccessDenied
	}

	if _, err := s.categories.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return fmt.Errorf("find category: %w", err)
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	_ = s.cache.Delete(ctx, categoryTitleKey(id))
	return nil
}
