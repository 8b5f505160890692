package perfume

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"fragranceapi/internal/httpx"

	"github.com/rs/zerolog/log"
)

// Larger multipart bodies spill to disk past this threshold.
const maxMultipartMemory = 8 << 20

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// List handles GET /api/perfumes and GET /admin/perfumes. The optional
// category and q parameters apply the shop filter to the fetched set.
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	perfumes, err := h.service.List(r.Context())
	if err != nil {
		log.Error().Err(err).Str("request_id", httpx.RequestIDFrom(r)).Msg("list perfumes")
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load perfumes", nil)
		return
	}

	query := r.URL.Query()
	filtered := Filter(perfumes, query.Get("category"), query.Get("q"))

	httpx.JSONSuccess(w, r, filtered, map[string]any{
		"total":    len(perfumes),
		"returned": len(filtered),
	})
}

// Get handles GET /api/perfumes/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Perfume not found", nil)
			return
		}
		log.Error().Err(err).Str("request_id", httpx.RequestIDFrom(r)).Msg("get perfume")
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load perfume", nil)
		return
	}
	httpx.JSONSuccess(w, r, p, nil)
}

// Create handles POST /admin/perfumes (multipart form with optional image).
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, img, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	if img != nil {
		if c, ok := img.Reader.(io.Closer); ok {
			defer c.Close()
		}
	}

	p, err := h.service.Create(r.Context(), in, img, h.logProgress(r))
	if err != nil {
		h.writeSaveError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, p)
}

// Update handles PUT /admin/perfumes/{id} with full-replace semantics.
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	in, img, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	if img != nil {
		if c, ok := img.Reader.(io.Closer); ok {
			defer c.Close()
		}
	}

	p, err := h.service.Update(r.Context(), id, in, img, h.logProgress(r))
	if err != nil {
		h.writeSaveError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, p, nil)
}

// Delete handles DELETE /admin/perfumes/{id}. The confirm=true parameter is
// the operator's explicit confirmation; without it no delete is issued.
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		httpx.JSONError(w, r, http.StatusBadRequest, "CONFIRMATION_REQUIRED",
			"Deleting a perfume requires confirm=true", nil)
		return
	}

	id := r.PathValue("id")
	err := h.service.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Perfume not found", nil)
			return
		}
		log.Error().Err(err).Str("request_id", httpx.RequestIDFrom(r)).Str("perfume_id", id).Msg("delete perfume")
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete perfume", nil)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

func (h *HTTPHandler) parseForm(w http.ResponseWriter, r *http.Request) (FormInput, *ImageFile, bool) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid multipart form", nil)
		return FormInput{}, nil, false
	}

	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	in := FormInput{
		Name:        r.FormValue("name"),
		Category:    r.FormValue("category"),
		Price:       price,
		ImageURL:    r.FormValue("image_url"),
		Description: r.FormValue("description"),
		Notes:       r.FormValue("notes"),
	}

	if validationErrors := httpx.ValidateStruct(in); len(validationErrors) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return FormInput{}, nil, false
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return in, nil, true
		}
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid image upload", nil)
		return FormInput{}, nil, false
	}

	img := &ImageFile{
		Name:   header.Filename,
		Size:   header.Size,
		Reader: file,
	}
	return in, img, true
}

func (h *HTTPHandler) writeSaveError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Perfume not found", nil)
	default:
		log.Error().Err(err).Str("request_id", httpx.RequestIDFrom(r)).Msg("save perfume")
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save perfume", nil)
	}
}

func (h *HTTPHandler) logProgress(r *http.Request) func(int) {
	requestID := httpx.RequestIDFrom(r)
	return func(percent int) {
		log.Debug().Str("request_id", requestID).Int("percent", percent).Msg("image upload progress")
	}
}
