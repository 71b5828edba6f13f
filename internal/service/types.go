package service

import (
	"time"

	"github.com/emrgen/bookpost/internal/model"
)

// View types mirror the JSON shapes the frontend consumes. Paragraphs are
// exposed under their per-post sequence number, not their database ID.

type PostSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	PublishDate string `json:"publishDate"`
	ImageURL    string `json:"imageUrl"`
}

type ParagraphView struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

type IdeaView struct {
	ID          string `json:"id"`
	ParagraphID int    `json:"paragraphId"`
	Quote       string `json:"quote"`
	Note        string `json:"note"`
	Timestamp   string `json:"timestamp"`
}

type UnderlineView struct {
	ID          string `json:"id"`
	ParagraphID int    `json:"paragraphId"`
	Quote       string `json:"quote"`
	Timestamp   string `json:"timestamp"`
}

type PostDetail struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	PublishDate string          `json:"publishDate"`
	ImageURL    string          `json:"imageUrl"`
	Content     []ParagraphView `json:"content"`
	Ideas       []IdeaView      `json:"ideas"`
}

func newIdeaView(idea *model.Idea) IdeaView {
	return IdeaView{
		ID:          idea.ID,
		ParagraphID: idea.Paragraph.Seq,
		Quote:       idea.Quote,
		Note:        idea.Note,
		Timestamp:   idea.CreatedAt.Format(time.RFC3339),
	}
}

func newUnderlineView(underline *model.Underline) UnderlineView {
	return UnderlineView{
		ID:          underline.ID,
		ParagraphID: underline.Paragraph.Seq,
		Quote:       underline.Quote,
		Timestamp:   underline.CreatedAt.Format(time.RFC3339),
	}
}
