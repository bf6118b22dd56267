package delivery_http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"personal-site-service/internal/auth"
	"personal-site-service/internal/logger"
	"personal-site-service/internal/model"
	bookmark_service "personal-site-service/internal/service/bookmark"
)

type BookmarkHandler struct {
	service  bookmark_service.Service
	validate *validator.Validate
	log      *logger.Logger
}

func NewBookmarkHandler(service bookmark_service.Service, log *logger.Logger) *BookmarkHandler {
	return &BookmarkHandler{
		service:  service,
		validate: validator.New(),
		log:      log,
	}
}

func (h *BookmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.UserIDFromContext(r.Context())

	filters := &model.BookmarkFilters{
		Search:    queryString(r, "q"),
		SortField: r.URL.Query().Get("sort"),
		Page:      pageParam(r),
	}
	if r.URL.Query().Get("order") == "asc" {
		filters.SortOrder = model.OrderAsc
	} else {
		filters.SortOrder = model.OrderDesc
	}
	if raw := r.URL.Query().Get("category"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeValidationError(w, "invalid category id")
			return
		}
		filters.CategoryID = &categoryID
	}
	if r.URL.Query().Get("favorite") == "true" {
		filters.FavoriteOnly = true
	}

	bookmarks, meta, err := h.service.ListBookmarks(r.Context(), ownerID, filters)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: bookmarks, Meta: meta})
}

func (h *BookmarkHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.UserIDFromContext(r.Context())
	id, err := idParam(r)
	if err != nil {
		writeValidationError(w, "invalid bookmark id")
		return
	}

	bookmark, err := h.service.GetBookmark(r.Context(), ownerID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookmark)
}

func (h *BookmarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.UserIDFromContext(r.Context())

	var dto model.CreateBookmarkDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeValidationError(w, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(&dto); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	bookmark, err := h.service.CreateBookmark(r.Context(), ownerID, &dto)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, bookmark)
}

func (h *BookmarkHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.UserIDFromContext(r.Context())
	id, err := idParam(r)
	if err != nil {
		writeValidationError(w, "invalid bookmark id")
		return
	}

	var dto model.UpdateBookmarkDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeValidationError(w, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(&dto); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	bookmark, err := h.service.UpdateBookmark(r.Context(), ownerID, id, &dto)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookmark)
}

func (h *BookmarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.UserIDFromContext(r.Context())
	id, err := idParam(r)
	if err != nil {
		writeValidationError(w, "invalid bookmark id")
		return
	}

	if err := h.service.DeleteBookmark(r.Context(), ownerID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BookmarkHandler) SetFavorite(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.UserIDFromContext(r.Context())
	id, err := idParam(r)
	if err != nil {
		writeValidationError(w, "invalid bookmark id")
		return
	}

	var body struct {
		IsFavorite *bool `json:"is_favorite" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeValidationError(w, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	bookmark, err := h.service.SetFavorite(r.Context(), ownerID, id, *body.IsFavorite)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookmark)
}

func (h *BookmarkHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *BookmarkHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeValidationError(w, "invalid category id")
		return
	}
	category, err := h.service.GetCategory(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *BookmarkHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var dto model.CreateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeValidationError(w, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(&dto); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	category, err := h.service.CreateCategory(r.Context(), &dto)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (h *BookmarkHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeValidationError(w, "invalid category id")
		return
	}

	var dto model.UpdateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeValidationError(w, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(&dto); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	category, err := h.service.UpdateCategory(r.Context(), id, &dto)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *BookmarkHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeValidationError(w, "invalid category id")
		return
	}
	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
