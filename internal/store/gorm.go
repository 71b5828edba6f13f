package store

import (
	"context"

	"github.com/emrgen/bookpost/internal/model"
	"gorm.io/gorm"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

func (g *GormStore) CreatePost(ctx context.Context, post *model.Post) error {
	return g.db.WithContext(ctx).Create(post).Error
}

func (g *GormStore) GetPost(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := g.db.WithContext(ctx).
		Preload("Content", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq asc")
		}).
		Preload("Ideas", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc")
		}).
		Preload("Ideas.Paragraph").
		Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}

	return &post, nil
}

func (g *GormStore) ListPosts(ctx context.Context) ([]*model.Post, error) {
	var posts []*model.Post
	err := g.db.WithContext(ctx).Order("created_at desc").Find(&posts).Error
	return posts, err
}

func (g *GormStore) UpdatePost(ctx context.Context, post *model.Post) error {
	return g.db.WithContext(ctx).Save(post).Error
}

// DeletePost removes the post and everything it owns. The child deletes
// are explicit so cascade behavior does not depend on the sqlite
// foreign_keys pragma.
func (g *GormStore) DeletePost(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.Idea{}).Error; err != nil {
			return err
		}

		if err := tx.Where("post_id = ?", id).Delete(&model.Underline{}).Error; err != nil {
			return err
		}

		if err := tx.Where("post_id = ?", id).Delete(&model.Paragraph{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&model.Post{}).Error
	})
}

func (g *GormStore) CreateParagraph(ctx context.Context, paragraph *model.Paragraph) error {
	return g.db.WithContext(ctx).Create(paragraph).Error
}

func (g *GormStore) GetParagraphBySeq(ctx context.Context, postID string, seq int) (*model.Paragraph, error) {
	var paragraph model.Paragraph
	err := g.db.WithContext(ctx).Where("post_id = ? AND seq = ?", postID, seq).First(&paragraph).Error
	if err != nil {
		return nil, err
	}

	return &paragraph, nil
}

func (g *GormStore) CreateIdea(ctx context.Context, idea *model.Idea) error {
	return g.db.WithContext(ctx).Create(idea).Error
}

func (g *GormStore) GetIdea(ctx context.Context, id string) (*model.Idea, error) {
	var idea model.Idea
	err := g.db.WithContext(ctx).Preload("Paragraph").Where("id = ?", id).First(&idea).Error
	if err != nil {
		return nil, err
	}

	return &idea, nil
}

func (g *GormStore) ListIdeas(ctx context.Context, postID string) ([]*model.Idea, error) {
	var ideas []*model.Idea
	err := g.db.WithContext(ctx).Preload("Paragraph").
		Where("post_id = ?", postID).Order("created_at desc").Find(&ideas).Error
	return ideas, err
}

func (g *GormStore) UpdateIdea(ctx context.Context, idea *model.Idea) error {
	return g.db.WithContext(ctx).Save(idea).Error
}

func (g *GormStore) DeleteIdea(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Idea{}).Error
}

func (g *GormStore) CreateUnderline(ctx context.Context, underline *model.Underline) error {
	return g.db.WithContext(ctx).Create(underline).Error
}

func (g *GormStore) ListUnderlines(ctx context.Context, postID string) ([]*model.Underline, error) {
	var underlines []*model.Underline
	err := g.db.WithContext(ctx).Preload("Paragraph").
		Where("post_id = ?", postID).Order("created_at desc").Find(&underlines).Error
	return underlines, err
}

func (g *GormStore) DeleteUnderline(ctx context.Context, id string) error {
	res := g.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Underline{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}
