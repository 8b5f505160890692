package perfume

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func newTestHandler(t *testing.T) (*HTTPHandler, *MockRepository, *recordingStore) {
	svc, repo, store := newTestService(t)
	return NewHTTPHandler(svc), repo, store
}

func multipartRequest(t *testing.T, method, path string, fields map[string]string, imageName string, imageBody []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		assert.NoError(t, mw.WriteField(k, v))
	}
	if imageName != "" {
		fw, err := mw.CreateFormFile("image", imageName)
		assert.NoError(t, err)
		_, err = fw.Write(imageBody)
		assert.NoError(t, err)
	}
	assert.NoError(t, mw.Close())

	r := httptest.NewRequest(method, path, &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

var validFields = map[string]string{
	"name":        "Jardin Secret",
	"category":    "Fresh",
	"price":       "295.00",
	"image_url":   "http://cdn.local/perfumes/existing.jpg",
	"description": "Crisp green leaves",
	"notes":       "Green Tea, Citrus, Vetiver",
}

func TestHTTPHandler_List(t *testing.T) {
	testPerfume := Perfume{ID: "1", Name: "Jardin Secret", Category: "Fresh"}

	t.Run("success", func(t *testing.T) {
		handler, repo, _ := newTestHandler(t)
		repo.EXPECT().List(gomock.Any()).Return([]Perfume{testPerfume}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/perfumes", nil)

		handler.List(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Jardin Secret")
	})

	t.Run("filter params narrow the result", func(t *testing.T) {
		handler, repo, _ := newTestHandler(t)
		repo.EXPECT().List(gomock.Any()).Return([]Perfume{testPerfume}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/perfumes?category=Woody", nil)

		handler.List(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "Jardin Secret")
	})

	t.Run("store failure", func(t *testing.T) {
		handler, repo, _ := newTestHandler(t)
		repo.EXPECT().List(gomock.Any()).Return(nil, context.DeadlineExceeded)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/perfumes", nil)

		handler.List(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHTTPHandler_Get(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		handler, repo, _ := newTestHandler(t)
		repo.EXPECT().GetByID(gomock.Any(), "missing").Return(Perfume{}, ErrNotFound)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/perfumes/missing", nil)
		r.SetPathValue("id", "missing")

		handler.Get(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHTTPHandler_Create(t *testing.T) {
	t.Run("creates with existing image URL", func(t *testing.T) {
		handler, repo, store := newTestHandler(t)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		w := httptest.NewRecorder()
		r := multipartRequest(t, http.MethodPost, "/admin/perfumes", validFields, "", nil)

		handler.Create(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Zero(t, store.uploads)
	})

	t.Run("creates with uploaded image", func(t *testing.T) {
		handler, repo, store := newTestHandler(t)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		fields := map[string]string{}
		for k, v := range validFields {
			fields[k] = v
		}
		delete(fields, "image_url")

		w := httptest.NewRecorder()
		r := multipartRequest(t, http.MethodPost, "/admin/perfumes", fields, "bottle.jpg", bytes.Repeat([]byte("x"), 512))

		handler.Create(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, store.uploads)
	})

	t.Run("missing required fields rejected before any store call", func(t *testing.T) {
		handler, _, store := newTestHandler(t)

		w := httptest.NewRecorder()
		r := multipartRequest(t, http.MethodPost, "/admin/perfumes",
			map[string]string{"description": "no name, category, or price"}, "", nil)

		handler.Create(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, store.uploads)
	})
}

func TestHTTPHandler_Delete(t *testing.T) {
	t.Run("without confirmation issues no delete call", func(t *testing.T) {
		handler, _, _ := newTestHandler(t)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodDelete, "/admin/perfumes/p1", nil)
		r.SetPathValue("id", "p1")

		handler.Delete(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "CONFIRMATION_REQUIRED")
	})

	t.Run("confirmed delete", func(t *testing.T) {
		handler, repo, _ := newTestHandler(t)
		repo.EXPECT().Delete(gomock.Any(), "p1").Return(nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodDelete, "/admin/perfumes/p1?confirm=true", nil)
		r.SetPathValue("id", "p1")

		handler.Delete(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("store failure leaves catalog unchanged", func(t *testing.T) {
		handler, repo, _ := newTestHandler(t)
		repo.EXPECT().Delete(gomock.Any(), "p1").Return(context.DeadlineExceeded)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodDelete, "/admin/perfumes/p1?confirm=true", nil)
		r.SetPathValue("id", "p1")

		handler.Delete(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
