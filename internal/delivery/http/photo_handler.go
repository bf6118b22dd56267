package delivery_http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"personal-site-service/internal/auth"
	"personal-site-service/internal/logger"
	"personal-site-service/internal/model"
	photo_service "personal-site-service/internal/service/photo"
)

type PhotoHandler struct {
	service  photo_service.Service
	validate *validator.Validate
	log      *logger.Logger
}

func NewPhotoHandler(service photo_service.Service, log *logger.Logger) *PhotoHandler {
	return &PhotoHandler{
		service:  service,
		validate: validator.New(),
		log:      log,
	}
}

func (h *PhotoHandler) List(w http.ResponseWriter, r *http.Request) {
	photos, meta, err := h.service.ListPhotos(r.Context(), &model.PhotoFilters{
		Search: queryString(r, "q"),
		Page:   pageParam(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: photos, Meta: meta})
}

func (h *PhotoHandler) ListByTag(w http.ResponseWriter, r *http.Request) {
	tagSlug := chi.URLParam(r, "slug")
	photos, meta, err := h.service.ListPhotos(r.Context(), &model.PhotoFilters{
		TagSlug: &tagSlug,
		Page:    pageParam(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: photos, Meta: meta})
}

func (h *PhotoHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeValidationError(w, "invalid photo id")
		return
	}
	photo, err := h.service.GetPhotoByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, photo)
}

func (h *PhotoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var dto model.CreatePhotoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeValidationError(w, "invalid JSON body")
		return
	}

	userID, _ := auth.UserIDFromContext(r.Context())
	dto.AuthorID = userID

	if err := h.validate.Struct(&dto); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	photo, err := h.service.CreatePhoto(r.Context(), &dto)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, photo)
}

func (h *PhotoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeValidationError(w, "invalid photo id")
		return
	}

	var dto model.UpdatePhotoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeValidationError(w, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(&dto); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	photo, err := h.service.UpdatePhoto(r.Context(), id, &dto)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, photo)
}

func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeValidationError(w, "invalid photo id")
		return
	}
	if err := h.service.DeletePhoto(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PhotoHandler) SetTags(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeValidationError(w, "invalid photo id")
		return
	}

	var body struct {
		Tags []string `json:"tags" validate:"required,dive,required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeValidationError(w, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	if err := h.service.SetTags(r.Context(), id, body.Tags); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
