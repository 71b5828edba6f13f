package server

import (
	"encoding/json"
	"net/http"

	"github.com/emrgen/bookpost/internal/service"
)

type UnderlineHandler struct {
	underlines *service.UnderlineService
}

func NewUnderlineHandler(underlines *service.UnderlineService) *UnderlineHandler {
	return &UnderlineHandler{underlines: underlines}
}

func (h *UnderlineHandler) List(w http.ResponseWriter, r *http.Request) {
	postID := r.URL.Query().Get("post")
	if postID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "post query parameter is required")
		return
	}

	views, err := h.underlines.ListUnderlines(r.Context(), postID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

func (h *UnderlineHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PostID      string `json:"post_id"`
		ParagraphID *int   `json:"paragraphId"`
		Quote       string `json:"quote"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid json body")
		return
	}

	if body.PostID == "" || body.ParagraphID == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "post_id and paragraphId are required")
		return
	}

	view, err := h.underlines.CreateUnderline(r.Context(), service.CreateUnderlineInput{
		PostID:       body.PostID,
		ParagraphSeq: *body.ParagraphID,
		Quote:        body.Quote,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

func (h *UnderlineHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.underlines.DeleteUnderline(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
