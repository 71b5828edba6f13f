package cache

import (
	"context"

	"github.com/emrgen/bookpost/internal/model"
)

// PostCache keeps assembled posts close to the serving path. A miss is
// (nil, nil); callers always fall back to the database.
type PostCache interface {
	// GetPost gets a post from the cache.
	GetPost(ctx context.Context, id string) (*model.Post, error)
	// SetPost sets a post in the cache.
	SetPost(ctx context.Context, post *model.Post) error
	// DeletePost removes a post from the cache.
	DeletePost(ctx context.Context, id string) error
}

var _ PostCache = (*Nop)(nil)

// Nop is used when no redis address is configured.
type Nop struct{}

func NewNop() *Nop {
	return &Nop{}
}

func (n *Nop) GetPost(ctx context.Context, id string) (*model.Post, error) {
	return nil, nil
}

func (n *Nop) SetPost(ctx context.Context, post *model.Post) error {
	return nil
}

func (n *Nop) DeletePost(ctx context.Context, id string) error {
	return nil
}
