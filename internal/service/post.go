package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/emrgen/bookpost/internal/cache"
	"github.com/emrgen/bookpost/internal/compress"
	"github.com/emrgen/bookpost/internal/model"
	"github.com/emrgen/bookpost/internal/ocr"
	"github.com/emrgen/bookpost/internal/split"
	"github.com/emrgen/bookpost/internal/storage"
	"github.com/emrgen/bookpost/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yuin/goldmark"
	"gorm.io/gorm"
)

const (
	defaultTitle  = "Untitled Post"
	defaultAuthor = "Anonymous"
	titleMaxLen   = 50
)

// NewPostService wires the upload pipeline: storage for the image, the
// OCR client for extraction, the splitter for segmentation and the store
// for the transactional write.
func NewPostService(store store.Store, ocrClient ocr.Client, splitter split.Splitter,
	images storage.Store, postCache cache.PostCache, compress compress.Compress) *PostService {
	return &PostService{
		store:    store,
		ocr:      ocrClient,
		splitter: splitter,
		images:   images,
		cache:    postCache,
		compress: compress,
	}
}

// PostService manages posts and the upload orchestration.
type PostService struct {
	store    store.Store
	ocr      ocr.Client
	splitter split.Splitter
	images   storage.Store
	cache    cache.PostCache
	compress compress.Compress
}

// UploadInput carries one multipart upload.
type UploadInput struct {
	Image       []byte
	ContentType string
	Filename    string
	Title       string
	Author      string
}

// Upload runs the whole pipeline as one logical unit: validate, store the
// image, extract text, split into paragraphs and create the post with its
// paragraphs in a single transaction. Any OCR failure aborts the
// operation, removes the stored image and leaves no database state.
func (s *PostService) Upload(ctx context.Context, in UploadInput) (*PostDetail, error) {
	input := ocr.Input{Data: in.Image, ContentType: in.ContentType}
	if err := ocr.Validate(input); err != nil {
		return nil, err
	}

	ref, err := s.images.Save(ctx, in.Filename, in.Image)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	text, err := s.ocr.ExtractText(ctx, input)
	if err != nil {
		if derr := s.images.Delete(ctx, ref); derr != nil {
			logrus.Warnf("failed to remove image %s after ocr failure: %v", ref, derr)
		}
		return nil, err
	}

	paragraphs := s.splitter.Split(text)

	title := in.Title
	if title == "" || title == defaultTitle {
		title = titleFromParagraphs(paragraphs)
	}
	author := in.Author
	if author == "" {
		author = defaultAuthor
	}

	raw, err := s.compress.Encode([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("compress raw text: %w", err)
	}

	post := &model.Post{
		ID:          uuid.New().String(),
		Title:       title,
		Author:      author,
		ImageRef:    ref,
		RawText:     raw,
		Compression: s.compress.Name(),
	}

	err = s.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.CreatePost(ctx, post); err != nil {
			return err
		}

		for seq, text := range paragraphs {
			paragraph := &model.Paragraph{
				ID:     uuid.New().String(),
				PostID: post.ID,
				Seq:    seq,
				Text:   text,
			}
			if err := tx.CreateParagraph(ctx, paragraph); err != nil {
				return err
			}

			post.Content = append(post.Content, *paragraph)
		}

		return nil
	})
	if err != nil {
		if derr := s.images.Delete(ctx, ref); derr != nil {
			logrus.Warnf("failed to remove image %s after create failure: %v", ref, derr)
		}
		return nil, fmt.Errorf("create post: %w", err)
	}

	logrus.Infof("created post %s with %d paragraphs via %s", post.ID, len(paragraphs), s.ocr.Name())

	s.cachePost(ctx, post)

	return s.detail(post), nil
}

// ListPosts returns all post summaries, newest first.
func (s *PostService) ListPosts(ctx context.Context) ([]*PostSummary, error) {
	posts, err := s.store.ListPosts(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]*PostSummary, 0, len(posts))
	for _, post := range posts {
		summaries = append(summaries, &PostSummary{
			ID:          post.ID,
			Title:       post.Title,
			Author:      post.Author,
			PublishDate: post.PublishDate(),
			ImageURL:    s.imageURL(post),
		})
	}

	return summaries, nil
}

// GetPost returns the full post with ordered paragraphs and ideas.
func (s *PostService) GetPost(ctx context.Context, id string) (*PostDetail, error) {
	if cached, err := s.cache.GetPost(ctx, id); err == nil && cached != nil {
		return s.detail(cached), nil
	} else if err != nil {
		logrus.Warnf("post cache read failed for %s: %v", id, err)
	}

	post, err := s.loadPost(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cachePost(ctx, post)

	return s.detail(post), nil
}

// UpdatePost changes title and author only; everything else on the post
// is immutable after upload.
func (s *PostService) UpdatePost(ctx context.Context, id, title, author string) (*PostDetail, error) {
	post, err := s.loadPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if title != "" {
		post.Title = title
	}
	if author != "" {
		post.Author = author
	}

	if err := s.store.UpdatePost(ctx, post); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)

	return s.detail(post), nil
}

// DeletePost removes the post, its paragraphs, ideas, underlines and the
// stored page image.
func (s *PostService) DeletePost(ctx context.Context, id string) error {
	post, err := s.loadPost(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeletePost(ctx, id); err != nil {
		return err
	}

	if post.ImageRef != "" {
		if err := s.images.Delete(ctx, post.ImageRef); err != nil {
			logrus.Warnf("failed to remove image %s of deleted post %s: %v", post.ImageRef, id, err)
		}
	}

	s.invalidate(ctx, id)

	return nil
}

// ExportHTML renders the extracted text to HTML. The extraction prompt
// asks the vendor for markdown headings, so the raw text is treated as
// markdown.
func (s *PostService) ExportHTML(ctx context.Context, id string) ([]byte, error) {
	post, err := s.loadPost(ctx, id)
	if err != nil {
		return nil, err
	}

	source, err := s.rawText(post)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := goldmark.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("render post %s: %w", id, err)
	}

	return buf.Bytes(), nil
}

func (s *PostService) rawText(post *model.Post) ([]byte, error) {
	if len(post.RawText) == 0 {
		var buf bytes.Buffer
		for i, paragraph := range post.Content {
			if i > 0 {
				buf.WriteString("\n\n")
			}
			buf.WriteString(paragraph.Text)
		}
		return buf.Bytes(), nil
	}

	return compress.FromName(post.Compression).Decode(post.RawText)
}

func (s *PostService) loadPost(ctx context.Context, id string) (*model.Post, error) {
	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	return post, nil
}

func (s *PostService) cachePost(ctx context.Context, post *model.Post) {
	if err := s.cache.SetPost(ctx, post); err != nil {
		logrus.Warnf("post cache write failed for %s: %v", post.ID, err)
	}
}

func (s *PostService) invalidate(ctx context.Context, id string) {
	if err := s.cache.DeletePost(ctx, id); err != nil {
		logrus.Warnf("post cache invalidation failed for %s: %v", id, err)
	}
}

func (s *PostService) imageURL(post *model.Post) string {
	if post.ImageURL != "" {
		return post.ImageURL
	}

	return s.images.URL(post.ImageRef)
}

func (s *PostService) detail(post *model.Post) *PostDetail {
	detail := &PostDetail{
		ID:          post.ID,
		Title:       post.Title,
		Author:      post.Author,
		PublishDate: post.PublishDate(),
		ImageURL:    s.imageURL(post),
		Content:     make([]ParagraphView, 0, len(post.Content)),
		Ideas:       make([]IdeaView, 0, len(post.Ideas)),
	}

	for _, paragraph := range post.Content {
		detail.Content = append(detail.Content, ParagraphView{ID: paragraph.Seq, Text: paragraph.Text})
	}

	for i := range post.Ideas {
		detail.Ideas = append(detail.Ideas, newIdeaView(&post.Ideas[i]))
	}

	return detail
}

func titleFromParagraphs(paragraphs []string) string {
	if len(paragraphs) == 0 {
		return defaultTitle
	}

	first := paragraphs[0]
	if len(first) > titleMaxLen {
		return first[:titleMaxLen] + "..."
	}

	return first
}
