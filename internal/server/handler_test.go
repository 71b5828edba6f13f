package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/emrgen/bookpost/internal/cache"
	"github.com/emrgen/bookpost/internal/compress"
	"github.com/emrgen/bookpost/internal/ocr"
	"github.com/emrgen/bookpost/internal/service"
	"github.com/emrgen/bookpost/internal/split"
	"github.com/emrgen/bookpost/internal/storage"
	"github.com/emrgen/bookpost/internal/store"
	"github.com/emrgen/bookpost/internal/tester"
	"github.com/stretchr/testify/assert"
)

type fakeOCR struct {
	text string
	err  error
}

func (f *fakeOCR) Name() string { return "fake" }

func (f *fakeOCR) ExtractText(ctx context.Context, in ocr.Input) (string, error) {
	if f.err != nil {
		return "", f.err
	}

	return f.text, nil
}

func newTestRouter(t *testing.T, ocrClient ocr.Client) *http.ServeMux {
	t.Helper()
	tester.Setup()

	images, err := storage.NewLocal(t.TempDir(), "http://localhost:8000")
	assert.NoError(t, err)

	gs := store.NewGormStore(tester.TestDB())
	postCache := cache.NewNop()

	posts := service.NewPostService(gs, ocrClient, split.NewSplitter(20), images, postCache, compress.NewGZip())
	ideas := service.NewIdeaService(gs, postCache)
	underlines := service.NewUnderlineService(gs, postCache)

	return NewRouter(posts, ideas, underlines, images)
}

func uploadRequest(t *testing.T, title, author string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="page.jpg"`)
	header.Set("Content-Type", "image/jpeg")
	part, err := form.CreatePart(header)
	assert.NoError(t, err)
	_, err = part.Write([]byte("fake jpeg bytes"))
	assert.NoError(t, err)

	assert.NoError(t, form.WriteField("title", title))
	assert.NoError(t, form.WriteField("author", author))
	assert.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/posts/upload/", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())

	return req
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&out))

	return out
}

func TestPostEndpoints(t *testing.T) {
	text := "First paragraph of the page, long enough.\n\nSecond paragraph of the page, long enough."
	router := newTestRouter(t, &fakeOCR{text: text})

	// upload
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "My Book Page", "Jane Reader"))
	assert.Equal(t, http.StatusCreated, rec.Code)

	created := decodeBody[service.PostDetail](t, rec)
	assert.Equal(t, "My Book Page", created.Title)
	assert.Equal(t, "Jane Reader", created.Author)
	assert.Len(t, created.Content, 2)
	assert.Equal(t, 0, created.Content[0].ID)
	assert.Equal(t, 1, created.Content[1].ID)
	assert.Empty(t, created.Ideas)
	assert.Contains(t, created.ImageURL, "/media/book_pages/")

	// list
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/posts/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]service.PostSummary](t, rec), 1)

	// detail
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/posts/"+created.ID+"/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[service.PostDetail](t, rec)
	assert.Equal(t, created.Content, got.Content)

	// update title only
	rec = httptest.NewRecorder()
	update := httptest.NewRequest(http.MethodPut, "/api/posts/"+created.ID+"/",
		bytes.NewReader([]byte(`{"title":"Renamed"}`)))
	router.ServeHTTP(rec, update)
	assert.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[service.PostDetail](t, rec)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "Jane Reader", updated.Author)

	// delete
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/posts/"+created.ID+"/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// gone
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/posts/"+created.ID+"/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadEndpointErrors(t *testing.T) {
	tests := []struct {
		name       string
		ocrErr     error
		wantStatus int
		wantCode   string
	}{
		{name: "unavailable", ocrErr: ocr.ErrServiceUnavailable, wantStatus: http.StatusBadGateway, wantCode: "ocr_unavailable"},
		{name: "timeout", ocrErr: ocr.ErrTimeout, wantStatus: http.StatusBadGateway, wantCode: "ocr_timeout"},
		{name: "quota", ocrErr: ocr.ErrQuotaExceeded, wantStatus: http.StatusServiceUnavailable, wantCode: "ocr_quota_exceeded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, &fakeOCR{err: tt.ocrErr})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, uploadRequest(t, "My Book Page", "Jane Reader"))
			assert.Equal(t, tt.wantStatus, rec.Code)

			body := decodeBody[map[string]string](t, rec)
			assert.Equal(t, tt.wantCode, body["code"])

			// nothing was created
			rec = httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/posts/", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Empty(t, decodeBody[[]service.PostSummary](t, rec))
		})
	}
}

func TestUploadEndpointMissingImage(t *testing.T) {
	router := newTestRouter(t, &fakeOCR{text: "irrelevant"})

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	assert.NoError(t, form.WriteField("title", "No Image"))
	assert.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/posts/upload/", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIdeaEndpoints(t *testing.T) {
	text := "First paragraph of the page, long enough.\n\nSecond paragraph of the page, long enough."
	router := newTestRouter(t, &fakeOCR{text: text})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "My Book Page", "Jane Reader"))
	assert.Equal(t, http.StatusCreated, rec.Code)
	post := decodeBody[service.PostDetail](t, rec)

	// create
	payload := fmt.Sprintf(`{"post_id":%q,"paragraphId":1,"quote":"Second paragraph","note":"important"}`, post.ID)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ideas/", bytes.NewReader([]byte(payload))))
	assert.Equal(t, http.StatusCreated, rec.Code)

	idea := decodeBody[service.IdeaView](t, rec)
	assert.Equal(t, 1, idea.ParagraphID)
	assert.Equal(t, "important", idea.Note)
	assert.NotEmpty(t, idea.Timestamp)

	// foreign paragraph rejected
	payload = fmt.Sprintf(`{"post_id":%q,"paragraphId":9,"quote":"q","note":"n"}`, post.ID)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ideas/", bytes.NewReader([]byte(payload))))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_paragraph", decodeBody[map[string]string](t, rec)["code"])

	// missing post_id rejected
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ideas/",
		bytes.NewReader([]byte(`{"paragraphId":0,"quote":"q","note":"n"}`))))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// list by post
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ideas/?post="+post.ID, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]service.IdeaView](t, rec), 1)

	// update
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/ideas/"+idea.ID+"/",
		bytes.NewReader([]byte(`{"note":"revised"}`))))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "revised", decodeBody[service.IdeaView](t, rec).Note)

	// delete
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/ideas/"+idea.ID+"/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ideas/?post="+post.ID, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[[]service.IdeaView](t, rec))
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, &fakeOCR{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody[map[string]string](t, rec)["status"])
}
