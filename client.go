// Package bookpost provides a Go client for the bookpost REST API.
package bookpost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// Post is a blog post as returned by the API. Content is ordered by
// paragraph sequence number.
type Post struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Author      string      `json:"author"`
	PublishDate string      `json:"publishDate"`
	ImageURL    string      `json:"imageUrl"`
	Content     []Paragraph `json:"content"`
	Ideas       []Idea      `json:"ideas"`
}

type Paragraph struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

type Idea struct {
	ID          string `json:"id"`
	ParagraphID int    `json:"paragraphId"`
	Quote       string `json:"quote"`
	Note        string `json:"note"`
	Timestamp   string `json:"timestamp"`
}

// Client talks to a bookpost server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given server origin,
// e.g. http://localhost:8000.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{},
	}
}

// ListPosts returns all post summaries. Content and Ideas are empty in
// listings.
func (c *Client) ListPosts(ctx context.Context) ([]*Post, error) {
	var posts []*Post
	if err := c.do(ctx, http.MethodGet, "/api/posts/", nil, "", &posts); err != nil {
		return nil, err
	}

	return posts, nil
}

// GetPost returns the full post with paragraphs and ideas.
func (c *Client) GetPost(ctx context.Context, id string) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodGet, "/api/posts/"+id+"/", nil, "", &post); err != nil {
		return nil, err
	}

	return &post, nil
}

// UploadPost uploads a page image and returns the created post.
func (c *Client) UploadPost(ctx context.Context, image []byte, filename, title, author string) (*Post, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("image", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(image); err != nil {
		return nil, err
	}
	if title != "" {
		_ = form.WriteField("title", title)
	}
	if author != "" {
		_ = form.WriteField("author", author)
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	var post Post
	if err := c.do(ctx, http.MethodPost, "/api/posts/upload/", &body, form.FormDataContentType(), &post); err != nil {
		return nil, err
	}

	return &post, nil
}

// UpdatePost changes the title and author of a post.
func (c *Client) UpdatePost(ctx context.Context, id, title, author string) (*Post, error) {
	payload, err := json.Marshal(map[string]string{"title": title, "author": author})
	if err != nil {
		return nil, err
	}

	var post Post
	if err := c.do(ctx, http.MethodPut, "/api/posts/"+id+"/", bytes.NewReader(payload), "application/json", &post); err != nil {
		return nil, err
	}

	return &post, nil
}

// DeletePost removes a post with everything it owns.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/posts/"+id+"/", nil, "", nil)
}

// ListIdeas returns the ideas of a post.
func (c *Client) ListIdeas(ctx context.Context, postID string) ([]*Idea, error) {
	var ideas []*Idea
	if err := c.do(ctx, http.MethodGet, "/api/ideas/?post="+postID, nil, "", &ideas); err != nil {
		return nil, err
	}

	return ideas, nil
}

// CreateIdea annotates a paragraph of a post. paragraphID is the
// sequence number shown in Post.Content.
func (c *Client) CreateIdea(ctx context.Context, postID string, paragraphID int, quote, note string) (*Idea, error) {
	payload, err := json.Marshal(map[string]any{
		"post_id":     postID,
		"paragraphId": paragraphID,
		"quote":       quote,
		"note":        note,
	})
	if err != nil {
		return nil, err
	}

	var idea Idea
	if err := c.do(ctx, http.MethodPost, "/api/ideas/", bytes.NewReader(payload), "application/json", &idea); err != nil {
		return nil, err
	}

	return &idea, nil
}

// DeleteIdea removes a single idea.
func (c *Client) DeleteIdea(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/ideas/"+id+"/", nil, "", nil)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apierr struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apierr); err == nil && apierr.Error != "" {
			return fmt.Errorf("bookpost: %s (%s)", apierr.Error, apierr.Code)
		}
		return fmt.Errorf("bookpost: unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
