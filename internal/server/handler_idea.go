package server

import (
	"encoding/json"
	"net/http"

	"github.com/emrgen/bookpost/internal/service"
)

type IdeaHandler struct {
	ideas *service.IdeaService
}

func NewIdeaHandler(ideas *service.IdeaService) *IdeaHandler {
	return &IdeaHandler{ideas: ideas}
}

func (h *IdeaHandler) List(w http.ResponseWriter, r *http.Request) {
	postID := r.URL.Query().Get("post")
	if postID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "post query parameter is required")
		return
	}

	views, err := h.ideas.ListIdeas(r.Context(), postID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

func (h *IdeaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PostID      string `json:"post_id"`
		ParagraphID *int   `json:"paragraphId"`
		Quote       string `json:"quote"`
		Note        string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid json body")
		return
	}

	if body.PostID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "post_id is required")
		return
	}
	if body.ParagraphID == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "paragraphId is required")
		return
	}

	view, err := h.ideas.CreateIdea(r.Context(), service.CreateIdeaInput{
		PostID:       body.PostID,
		ParagraphSeq: *body.ParagraphID,
		Quote:        body.Quote,
		Note:         body.Note,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

func (h *IdeaHandler) Update(w http.ResponseWriter, r *http.Request) {
	// only quote and note are updatable
	var body struct {
		Quote string `json:"quote"`
		Note  string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid json body")
		return
	}

	view, err := h.ideas.UpdateIdea(r.Context(), r.PathValue("id"), body.Quote, body.Note)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *IdeaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.ideas.DeleteIdea(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
