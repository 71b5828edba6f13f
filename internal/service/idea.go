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

// NewIdeaService creates a new IdeaService.
func NewIdeaService(store store.Store, postCache cache.PostCache) *IdeaService {
	return &IdeaService{
		store: store,
		cache: postCache,
	}
}

// IdeaService manages the annotations attached to post paragraphs.
type IdeaService struct {
	store store.Store
	cache cache.PostCache
}

// CreateIdeaInput references the paragraph by its per-post sequence
// number, matching what the frontend holds.
type CreateIdeaInput struct {
	PostID       string
	ParagraphSeq int
	Quote        string
	Note         string
}

// CreateIdea attaches an idea to a paragraph of an existing post. The
// paragraph must belong to that post.
func (s *IdeaService) CreateIdea(ctx context.Context, in CreateIdeaInput) (*IdeaView, error) {
	paragraph, err := s.resolveParagraph(ctx, in.PostID, in.ParagraphSeq)
	if err != nil {
		return nil, err
	}

	idea := &model.Idea{
		ID:          uuid.New().String(),
		PostID:      in.PostID,
		ParagraphID: paragraph.ID,
		Quote:       in.Quote,
		Note:        in.Note,
	}

	if err := s.store.CreateIdea(ctx, idea); err != nil {
		return nil, err
	}

	idea.Paragraph = *paragraph
	s.invalidate(ctx, in.PostID)

	view := newIdeaView(idea)
	return &view, nil
}

// ListIdeas returns the ideas of a post, newest first.
func (s *IdeaService) ListIdeas(ctx context.Context, postID string) ([]IdeaView, error) {
	if _, err := s.store.GetPost(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	ideas, err := s.store.ListIdeas(ctx, postID)
	if err != nil {
		return nil, err
	}

	views := make([]IdeaView, 0, len(ideas))
	for _, idea := range ideas {
		views = append(views, newIdeaView(idea))
	}

	return views, nil
}

// UpdateIdea changes quote and note only.
func (s *IdeaService) UpdateIdea(ctx context.Context, id, quote, note string) (*IdeaView, error) {
	idea, err := s.store.GetIdea(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIdeaNotFound
		}
		return nil, err
	}

	if quote != "" {
		idea.Quote = quote
	}
	if note != "" {
		idea.Note = note
	}

	if err := s.store.UpdateIdea(ctx, idea); err != nil {
		return nil, err
	}

	s.invalidate(ctx, idea.PostID)

	view := newIdeaView(idea)
	return &view, nil
}

// DeleteIdea removes a single idea.
func (s *IdeaService) DeleteIdea(ctx context.Context, id string) error {
	idea, err := s.store.GetIdea(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrIdeaNotFound
		}
		return err
	}

	if err := s.store.DeleteIdea(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, idea.PostID)

	return nil
}

func (s *IdeaService) resolveParagraph(ctx context.Context, postID string, seq int) (*model.Paragraph, error) {
	if _, err := s.store.GetPost(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	paragraph, err := s.store.GetParagraphBySeq(ctx, postID, seq)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParagraphNotInPost
		}
		return nil, err
	}

	return paragraph, nil
}

func (s *IdeaService) invalidate(ctx context.Context, postID string) {
	_ = s.cache.DeletePost(ctx, postID)
}
