package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"linkdir/internal/model"
)

// CategoryNameFallback is attached to entries whose category reference is
// absent, malformed, or dangling.
const CategoryNameFallback = "Other"

const categoryTitleTTL = 5 * time.Minute

func categoryTitleKey(id uuid.UUID) string {
	return fmt.Sprintf("category:title:%s", id)
}

// EntryWithCategory is an entry decorated with its resolved category name.
type EntryWithCategory struct {
	model.Entry
	CategoryName string `json:"categoryName"`
}

// categoryName resolves a category reference to its display title. This is
// best-effort decoration: any failure — dangling reference, store error —
// yields the fallback name, never an error. Titles are cached and the cache
// is invalidated on category writes, so results stay identical to the naive
// per-entry lookup.
func (s *entryService) categoryName(ctx context.Context, id *uuid.UUID) string {
	if id == nil {
		return CategoryNameFallback
	}

	if data, _ := s.cache.Get(ctx, categoryTitleKey(*id)); data != nil {
		return string(data)
	}

	category, err := s.categories.FindByID(ctx, *id)
	if err != nil {
		return CategoryNameFallback
	}

	_ = s.cache.Set(ctx, categoryTitleKey(*id), []byte(category.Title), categoryTitleTTL)
	return category.Title
}

func (s *entryService) withCategoryName(ctx context.Context, entry *model.Entry) *EntryWithCategory {
	return &EntryWithCategory{
		Entry:        *entry,
		CategoryName: s.categoryName(ctx, entry.CategoryID),
	}
}

func (s *entryService) withCategoryNames(ctx context.Context, entries []model.Entry) []EntryWithCategory {
	out := make([]EntryWithCategory, 0, len(entries))
	for i := range entries {
		out = append(out, *s.withCategoryName(ctx, &entries[i]))
	}
	return out
}
