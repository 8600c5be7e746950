package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"linkdir/internal/authz"
	"linkdir/internal/cache"
	apperrors "linkdir/internal/errors"
	"linkdir/internal/model"
	"linkdir/internal/repository"
	"linkdir/internal/validation"
)

// defaultEntryLimit caps the published entry list when the caller does not
// ask for a specific limit.
const defaultEntryLimit = 20

// PublishedEntryQuery narrows the public entry listing. Category holds the
// raw query parameter; an unparseable value matches nothing, in keeping with
// the weak-reference rule that a bad reference is never an error.
type PublishedEntryQuery struct {
	Title       string
	Description string
	Category    string
	Limit       int
}

// EntryService exposes published entries and pending suggestions, which share
// one underlying collection split by the suggestion flag. The /entries
// operations see only published rows and the /suggestions operations only
// pending ones; an id on the wrong side is not found.
type EntryService interface {
	ListPublished(ctx context.Context, q PublishedEntryQuery) ([]EntryWithCategory, error)
	Random(ctx context.Context) (*EntryWithCategory, error)
	GetPublished(ctx context.Context, id uuid.UUID) (*EntryWithCategory, error)
	CreatePublished(ctx context.Context, actor *authz.Actor, req *validation.CreateEntryRequest) (*EntryWithCategory, error)
	PatchPublished(ctx context.Context, actor *authz.Actor, id uuid.UUID, req *validation.PatchEntryRequest) error
	DeletePublished(ctx context.Context, actor *authz.Actor, id uuid.UUID) error

	ListSuggestions(ctx context.Context, actor *authz.Actor) ([]EntryWithCategory, error)
	GetSuggestion(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*EntryWithCategory, error)
	CreateSuggestion(ctx context.Context, actor *authz.Actor, req *validation.CreateEntryRequest) (*EntryWithCategory, error)
	PatchSuggestion(ctx context.Context, actor *authz.Actor, id uuid.UUID, req *validation.PatchEntryRequest) error
	DeleteSuggestion(ctx context.Context, actor *authz.Actor, id uuid.UUID) error
}

type entryService struct {
	entries    repository.EntryRepository
	categories repository.CategoryRepository
	cache      *cache.Client
}

// NewEntryService builds an EntryService.
func NewEntryService(entries repository.EntryRepository, categories repository.CategoryRepository, cache *cache.Client) EntryService {
	return &entryService{entries: entries, categories: categories, cache: cache}
}

func (s *entryService) ListPublished(ctx context.Context, q PublishedEntryQuery) ([]EntryWithCategory, error) {
	filter := repository.EntryFilter{
		Title:       q.Title,
		Description: q.Description,
		Suggestion:  false,
		Limit:       q.Limit,
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultEntryLimit
	}
	if q.Category != "" {
		categoryID, err := uuid.Parse(q.Category)
		if err != nil {
			// A malformed category reference matches no entries.
			return []EntryWithCategory{}, nil
		}
		filter.CategoryID = &categoryID
	}

	entries, err := s.entries.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return s.withCategoryNames(ctx, entries), nil
}

func (s *entryService) Random(ctx context.Context) (*EntryWithCategory, error) {
	entry, err := s.entries.Random(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, fmt.Errorf("random entry: %w", err)
	}
	return s.withCategoryName(ctx, entry), nil
}

func (s *entryService) GetPublished(ctx context.Context, id uuid.UUID) (*EntryWithCategory, error) {
	entry, err := s.findScoped(ctx, id, false)
	if err != nil {
		return nil, err
	}
	return s.withCategoryName(ctx, entry), nil
}

func (s *entryService) CreatePublished(ctx context.Context, actor *authz.Actor, req *validation.CreateEntryRequest) (*EntryWithCategory, error) {
	if !authz.CanManageCatalog(actor) {
		return nil, apperrors.ErrAccessDenied
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	categoryID, err := s.resolveCategoryRef(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	suggestion := false
	if req.Suggestion != nil {
		suggestion = *req.Suggestion
	}

	entry := &model.Entry{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
		CategoryID:  categoryID,
		UserID:      actor.ID,
		Suggestion:  suggestion,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	return s.withCategoryName(ctx, entry), nil
}

func (s *entryService) PatchPublished(ctx context.Context, actor *authz.Actor, id uuid.UUID, req *validation.PatchEntryRequest) error {
	entry, err := s.findScoped(ctx, id, false)
	if err != nil {
		return err
	}
	if !authz.CanManageCatalog(actor) {
		return apperrors.ErrAccessDenied
	}
	if err := validation.Struct(req); err != nil {
		return err
	}
	return s.applyPatch(ctx, entry, req)
}

func (s *entryService) DeletePublished(ctx context.Context, actor *authz.Actor, id uuid.UUID) error {
	if _, err := s.findScoped(ctx, id, false); err != nil {
		return err
	}
	if !authz.CanManageCatalog(actor) {
		return apperrors.ErrAccessDenied
	}
	return s.entries.Delete(ctx, id)
}

func (s *entryService) ListSuggestions(ctx context.Context, actor *authz.Actor) ([]EntryWithCategory, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	entries, err := s.entries.List(ctx, repository.EntryFilter{Suggestion: true})
	if err != nil {
		return nil, fmt.Errorf("list suggestions: %w", err)
	}
	return s.withCategoryNames(ctx, entries), nil
}

func (s *entryService) GetSuggestion(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*EntryWithCategory, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	entry, err := s.findScoped(ctx, id, true)
	if err != nil {
		return nil, err
	}
	return s.withCategoryName(ctx, entry), nil
}

// CreateSuggestion records a pending submission owned by the actor. The
// suggestion flag is forced true regardless of the payload.
func (s *entryService) CreateSuggestion(ctx context.Context, actor *authz.Actor, req *validation.CreateEntryRequest) (*EntryWithCategory, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	categoryID, err := s.resolveCategoryRef(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	entry := &model.Entry{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
		CategoryID:  categoryID,
		UserID:      actor.ID,
		Suggestion:  true,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create suggestion: %w", err)
	}
	return s.withCategoryName(ctx, entry), nil
}

// PatchSuggestion lets the owner edit their pending submission and elevated
// actors approve it. Flipping the suggestion flag is the approval action and
// is allowed only for elevated actors; ownership is checked before the
// payload, so a non-owner is denied even with a schema-valid body.
func (s *entryService) PatchSuggestion(ctx context.Context, actor *authz.Actor, id uuid.UUID, req *validation.PatchEntryRequest) error {
	entry, err := s.findScoped(ctx, id, true)
	if err != nil {
		return err
	}

	changesFlag := req.Suggestion != nil && *req.Suggestion != entry.Suggestion
	if !authz.CanPatchSuggestion(actor, entry.UserID, changesFlag) {
		return apperrors.ErrAccessDenied
	}
	if err := validation.Struct(req); err != nil {
		return err
	}
	return s.applyPatch(ctx, entry, req)
}

func (s *entryService) DeleteSuggestion(ctx context.Context, actor *authz.Actor, id uuid.UUID) error {
	if _, err := s.findScoped(ctx, id, true); err != nil {
		return err
	}
	if !authz.CanDeleteSuggestion(actor) {
		return apperrors.ErrAccessDenied
	}
	return s.entries.Delete(ctx, id)
}

// findScoped loads an entry and checks it sits on the requested side of the
// suggestion flag.
func (s *entryService) findScoped(ctx context.Context, id uuid.UUID, suggestion bool) (*model.Entry, error) {
	notFound := apperrors.ErrEntryNotFound
	if suggestion {
		notFound = apperrors.ErrSuggestionNotFound
	}

	entry, err := s.entries.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		return nil, fmt.Errorf("find entry: %w", err)
	}
	if entry.Suggestion != suggestion {
		return nil, notFound
	}
	return entry, nil
}

// resolveCategoryRef validates a category reference supplied on a write.
// Unlike reads, writes reject a reference to a category that does not exist.
func (s *entryService) resolveCategoryRef(ctx context.Context, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, apperrors.ErrCategoryMissing
	}
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryMissing
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &id, nil
}

func (s *entryService) applyPatch(ctx context.Context, entry *model.Entry, req *validation.PatchEntryRequest) error {
	if req.Title != nil {
		entry.Title = *req.Title
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Link != nil {
		entry.Link = *req.Link
	}
	if req.CategoryID != nil {
		categoryID, err := s.resolveCategoryRef(ctx, req.CategoryID)
		if err != nil {
			return err
		}
		entry.CategoryID = categoryID
	}
	if req.Suggestion != nil {
		entry.Suggestion = *req.Suggestion
	}

	if err := s.entries.Update(ctx, entry); err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	return nil
}
