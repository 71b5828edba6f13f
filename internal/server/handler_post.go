package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/emrgen/bookpost/internal/ocr"
	"github.com/emrgen/bookpost/internal/service"
)

// uploadMemoryLimit is the in-memory buffer for multipart parsing; larger
// parts spill to disk.
const uploadMemoryLimit = 8 << 20

type PostHandler struct {
	posts *service.PostService
}

func NewPostHandler(posts *service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.posts.ListPosts(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

func (h *PostHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(uploadMemoryLimit); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "expected multipart form data")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "image file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, ocr.MaxImageSize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "error reading image")
		return
	}

	detail, err := h.posts.Upload(r.Context(), service.UploadInput{
		Image:       data,
		ContentType: header.Header.Get("Content-Type"),
		Filename:    header.Filename,
		Title:       r.FormValue("title"),
		Author:      r.FormValue("author"),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, detail)
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.posts.GetPost(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	// only title and author are updatable; other fields are ignored
	var body struct {
		Title  string `json:"title"`
		Author string `json:"author"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid json body")
		return
	}

	detail, err := h.posts.UpdatePost(r.Context(), r.PathValue("id"), body.Title, body.Author)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.posts.DeletePost(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PostHandler) Export(w http.ResponseWriter, r *http.Request) {
	html, err := h.posts.ExportHTML(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(html)
}
