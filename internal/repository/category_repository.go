package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"linkdir/internal/model"
)

// CategoryRepository defines category persistence operations.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	FindByTitle(ctx context.Context, title string) (*model.Category, error)
	List(ctx context.Context, title string) ([]model.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository builds a GORM-backed repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Category{}, "id = ?", id).Error
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByTitle matches the exact title case-insensitively, for the uniqueness
// pre-check.
func (r *categoryRepository) FindByTitle(ctx context.Context, title string) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("LOWER(title) = ?", strings.ToLower(title)).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context, title string) ([]model.Category, error) {
	q := r.db.WithContext(ctx).Model(&model.Category{})
	if title != "" {
		q = q.Where("title LIKE ?", "%"+title+"%")
	}

	var categories []model.Category
	if err := q.Order("title ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
