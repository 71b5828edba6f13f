package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func uploadTwoPosts(t *testing.T) (*PostService, *IdeaService, *PostDetail, *PostDetail) {
	t.Helper()

	text := "First paragraph of the page, long enough.\n\nSecond paragraph of the page, long enough."
	posts, _ := newTestPostService(t, &fakeOCR{text: text}, 20)
	ideas := NewIdeaService(posts.store, posts.cache)

	one, err := posts.Upload(context.TODO(), pageUpload("Post One", "Jane Reader"))
	assert.NoError(t, err)

	two, err := posts.Upload(context.TODO(), pageUpload("Post Two", "Jane Reader"))
	assert.NoError(t, err)

	return posts, ideas, one, two
}

func TestIdeaService_CreateIdea(t *testing.T) {
	_, ideas, post, _ := uploadTwoPosts(t)

	view, err := ideas.CreateIdea(context.TODO(), CreateIdeaInput{
		PostID:       post.ID,
		ParagraphSeq: 1,
		Quote:        "Second paragraph",
		Note:         "this is the interesting part",
	})
	assert.NoError(t, err)
	assert.NotNil(t, view)

	assert.NotEmpty(t, view.ID)
	assert.Equal(t, 1, view.ParagraphID)
	assert.Equal(t, "Second paragraph", view.Quote)
	assert.Equal(t, "this is the interesting part", view.Note)
	assert.NotEmpty(t, view.Timestamp)

	listed, err := ideas.ListIdeas(context.TODO(), post.ID)
	assert.NoError(t, err)
	assert.Len(t, listed, 1)
	assert.Equal(t, view.ID, listed[0].ID)
}

func TestIdeaService_CreateIdeaValidation(t *testing.T) {
	_, ideas, post, _ := uploadTwoPosts(t)

	tests := []struct {
		name    string
		input   CreateIdeaInput
		wantErr error
	}{
		{
			name:    "missing post",
			input:   CreateIdeaInput{PostID: "missing-id", ParagraphSeq: 0, Quote: "q", Note: "n"},
			wantErr: ErrPostNotFound,
		},
		{
			name:    "paragraph not in post",
			input:   CreateIdeaInput{PostID: post.ID, ParagraphSeq: 99, Quote: "q", Note: "n"},
			wantErr: ErrParagraphNotInPost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := ideas.CreateIdea(context.TODO(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, view)
		})
	}

	// nothing was created
	listed, err := ideas.ListIdeas(context.TODO(), post.ID)
	assert.NoError(t, err)
	assert.Empty(t, listed)
}

func TestIdeaService_IdeasScopedToPost(t *testing.T) {
	_, ideas, one, two := uploadTwoPosts(t)

	_, err := ideas.CreateIdea(context.TODO(), CreateIdeaInput{
		PostID:       one.ID,
		ParagraphSeq: 0,
		Quote:        "First paragraph",
		Note:         "note on post one",
	})
	assert.NoError(t, err)

	listedOne, err := ideas.ListIdeas(context.TODO(), one.ID)
	assert.NoError(t, err)
	assert.Len(t, listedOne, 1)

	listedTwo, err := ideas.ListIdeas(context.TODO(), two.ID)
	assert.NoError(t, err)
	assert.Empty(t, listedTwo)
}

func TestIdeaService_UpdateIdea(t *testing.T) {
	_, ideas, post, _ := uploadTwoPosts(t)

	view, err := ideas.CreateIdea(context.TODO(), CreateIdeaInput{
		PostID:       post.ID,
		ParagraphSeq: 0,
		Quote:        "old quote",
		Note:         "old note",
	})
	assert.NoError(t, err)

	updated, err := ideas.UpdateIdea(context.TODO(), view.ID, "", "new note")
	assert.NoError(t, err)
	assert.Equal(t, "old quote", updated.Quote)
	assert.Equal(t, "new note", updated.Note)
	assert.Equal(t, view.ParagraphID, updated.ParagraphID)

	_, err = ideas.UpdateIdea(context.TODO(), "missing-id", "q", "n")
	assert.ErrorIs(t, err, ErrIdeaNotFound)
}

func TestIdeaService_DeleteIdea(t *testing.T) {
	_, ideas, post, _ := uploadTwoPosts(t)

	view, err := ideas.CreateIdea(context.TODO(), CreateIdeaInput{
		PostID:       post.ID,
		ParagraphSeq: 0,
		Quote:        "quote",
		Note:         "note",
	})
	assert.NoError(t, err)

	assert.NoError(t, ideas.DeleteIdea(context.TODO(), view.ID))

	listed, err := ideas.ListIdeas(context.TODO(), post.ID)
	assert.NoError(t, err)
	assert.Empty(t, listed)

	assert.ErrorIs(t, ideas.DeleteIdea(context.TODO(), view.ID), ErrIdeaNotFound)
}

func TestUnderlineService(t *testing.T) {
	posts, _, post, _ := uploadTwoPosts(t)
	underlines := NewUnderlineService(posts.store, posts.cache)

	view, err := underlines.CreateUnderline(context.TODO(), CreateUnderlineInput{
		PostID:       post.ID,
		ParagraphSeq: 1,
		Quote:        "Second paragraph",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, view.ParagraphID)

	_, err = underlines.CreateUnderline(context.TODO(), CreateUnderlineInput{
		PostID:       post.ID,
		ParagraphSeq: 42,
		Quote:        "nope",
	})
	assert.ErrorIs(t, err, ErrParagraphNotInPost)

	listed, err := underlines.ListUnderlines(context.TODO(), post.ID)
	assert.NoError(t, err)
	assert.Len(t, listed, 1)

	assert.NoError(t, underlines.DeleteUnderline(context.TODO(), view.ID))

	listed, err = underlines.ListUnderlines(context.TODO(), post.ID)
	assert.NoError(t, err)
	assert.Empty(t, listed)
}
