package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"linkdir/internal/model"
)

// EntryFilter narrows the entry list query. Title and Description are
// case-insensitive partial matches; Suggestion selects between published
// entries and pending suggestions; Limit caps the result count.
type EntryFilter struct {
	Title       string
	Description string
	CategoryID  *uuid.UUID
	Suggestion  bool
	Limit       int
}

// EntryRepository defines entry persistence operations.
type EntryRepository interface {
	Create(ctx context.Context, entry *model.Entry) error
	Update(ctx context.Context, entry *model.Entry) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Entry, error)
	List(ctx context.Context, filter EntryFilter) ([]model.Entry, error)
	Random(ctx context.Context) (*model.Entry, error)
}

type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository builds a GORM-backed repository.
func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &entryRepository{db: db}
}

func (r *entryRepository) Create(ctx context.Context, entry *model.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *entryRepository) Update(ctx context.Context, entry *model.Entry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *entryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Entry{}, "id = ?", id).Error
}

func (r *entryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Entry, error) {
	var entry model.Entry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns entries sorted by title then description ascending.
func (r *entryRepository) List(ctx context.Context, filter EntryFilter) ([]model.Entry, error) {
	q := r.db.WithContext(ctx).Model(&model.Entry{}).Where("suggestion = ?", filter.Suggestion)
	if filter.Title != "" {
		q = q.Where("title LIKE ?", "%"+filter.Title+"%")
	}
	if filter.Description != "" {
		q = q.Where("description LIKE ?", "%"+filter.Description+"%")
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var entries []model.Entry
	if err := q.Order("title ASC, description ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Random picks one published entry uniformly at random.
func (r *entryRepository) Random(ctx context.Context) (*model.Entry, error) {
	var entry model.Entry
	if err := r.db.WithContext(ctx).
		Where("suggestion = ?", false).
		Order("RAND()").
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}
