package service

import (
	"context"
	"errors"

	"github.com/emrgen/bookpost/internal/cache"
	"github.com/emrgen/bookpost/internal/model"
	"github.com/emrgen/bookpost/internal/store"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewUnderlineService creates a new UnderlineService.
func NewUnderlineService(store store.Store, postCache cache.PostCache) *UnderlineService {
	return &UnderlineService{
		store: store,
		cache: postCache,
	}
}

// UnderlineService manages quote-only highlights on post paragraphs.
type UnderlineService struct {
	store store.Store
	cache cache.PostCache
}

type CreateUnderlineInput struct {
	PostID       string
	ParagraphSeq int
	Quote        string
}

func (s *UnderlineService) CreateUnderline(ctx context.Context, in CreateUnderlineInput) (*UnderlineView, error) {
	if _, err := s.store.GetPost(ctx, in.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	paragraph, err := s.store.GetParagraphBySeq(ctx, in.PostID, in.ParagraphSeq)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParagraphNotInPost
		}
		return nil, err
	}

	underline := &model.Underline{
		ID:          uuid.New().String(),
		PostID:      in.PostID,
		ParagraphID: paragraph.ID,
		Quote:       in.Quote,
	}

	if err := s.store.CreateUnderline(ctx, underline); err != nil {
		return nil, err
	}

	underline.Paragraph = *paragraph
	_ = s.cache.DeletePost(ctx, in.PostID)

	view := newUnderlineView(underline)
	return &view, nil
}

func (s *UnderlineService) ListUnderlines(ctx context.Context, postID string) ([]UnderlineView, error) {
	underlines, err := s.store.ListUnderlines(ctx, postID)
	if err != nil {
		return nil, err
	}

	views := make([]UnderlineView, 0, len(underlines))
	for _, underline := range underlines {
		views = append(views, newUnderlineView(underline))
	}

	return views, nil
}

func (s *UnderlineService) DeleteUnderline(ctx context.Context, id string) error {
	if err := s.store.DeleteUnderline(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnderlineNotFound
		}
		return err
	}

	return nil
}
