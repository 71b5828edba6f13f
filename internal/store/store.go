package store

import (
	"context"

	"github.com/emrgen/bookpost/internal/model"
)

type Store interface {
	PostStore
	ParagraphStore
	IdeaStore
	UnderlineStore
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

type PostStore interface {
	// CreatePost creates a new post.
	CreatePost(ctx context.Context, post *model.Post) error
	// GetPost retrieves a post with its paragraphs and ideas preloaded.
	GetPost(ctx context.Context, id string) (*model.Post, error)
	// ListPosts retrieves all posts, newest first.
	ListPosts(ctx context.Context) ([]*model.Post, error)
	// UpdatePost updates a post.
	UpdatePost(ctx context.Context, post *model.Post) error
	// DeletePost deletes a post and everything it owns.
	DeletePost(ctx context.Context, id string) error
}

type ParagraphStore interface {
	// CreateParagraph creates a new paragraph.
	CreateParagraph(ctx context.Context, paragraph *model.Paragraph) error
	// GetParagraphBySeq retrieves a paragraph by owning post and sequence number.
	GetParagraphBySeq(ctx context.Context, postID string, seq int) (*model.Paragraph, error)
}

type IdeaStore interface {
	// CreateIdea creates a new idea.
	CreateIdea(ctx context.Context, idea *model.Idea) error
	// GetIdea retrieves an idea with its paragraph preloaded.
	GetIdea(ctx context.Context, id string) (*model.Idea, error)
	// ListIdeas retrieves the ideas of a post, newest first.
	ListIdeas(ctx context.Context, postID string) ([]*model.Idea, error)
	// UpdateIdea updates an idea.
	UpdateIdea(ctx context.Context, idea *model.Idea) error
	// DeleteIdea deletes an idea by ID.
	DeleteIdea(ctx context.Context, id string) error
}

type UnderlineStore interface {
	// CreateUnderline creates a new underline.
	CreateUnderline(ctx context.Context, underline *model.Underline) error
	// ListUnderlines retrieves the underlines of a post, newest first.
	ListUnderlines(ctx context.Context, postID string) ([]*model.Underline, error)
	// DeleteUnderline deletes an underline by ID.
	DeleteUnderline(ctx context.Context, id string) error
}
