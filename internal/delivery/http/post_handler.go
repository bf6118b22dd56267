package delivery_http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"personal-site-service/internal/auth"
	"personal-site-service/internal/logger"
	"personal-site-service/internal/model"
	post_service "personal-site-service/internal/service/post"
)

type PostHandler struct {
	service  post_service.Service
	validate *validator.Validate
	log      *logger.Logger
}

func NewPostHandler(service post_service.Service, log *logger.Logger) *PostHandler {
	return &PostHandler{
		service:  service,
		validate: validator.New(),
		log:      log,
	}
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, meta, err := h.service.ListPosts(r.Context(), &model.PostFilters{
		Search: queryString(r, "q"),
		Page:   pageParam(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: posts, Meta: meta})
}

func (h *PostHandler) ListByTag(w http.ResponseWriter, r *http.Request) {
	tagSlug := chi.URLParam(r, "slug")
	posts, meta, err := h.service.ListPosts(r.Context(), &model.PostFilters{
		TagSlug: &tagSlug,
		Page:    pageParam(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: posts, Meta: meta})
}

// Archive serves year, year/month and year/month/day listings from a
// single handler; absent URL segments leave the filter component zero.
func (h *PostHandler) Archive(w http.ResponseWriter, r *http.Request) {
	date := model.DateFilter{}

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeValidationError(w, "invalid year")
		return
	}
	date.Year = year

	if raw := chi.URLParam(r, "month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil || month < 1 || month > 12 {
			writeValidationError(w, "invalid month")
			return
		}
		date.Month = month
	}
	if raw := chi.URLParam(r, "day"); raw != "" {
		day, err := strconv.Atoi(raw)
		if err != nil || day < 1 || day > 31 {
			writeValidationError(w, "invalid day")
			return
		}
		date.Day = day
	}

	posts, meta, err := h.service.ListPosts(r.Context(), &model.PostFilters{
		Date: &date,
		Page: pageParam(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: posts, Meta: meta})
}

func (h *PostHandler) ArchiveToday(w http.ResponseWriter, r *http.Request) {
	posts, meta, err := h.service.ListPostsToday(r.Context(), pageParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: posts, Meta: meta})
}

func (h *PostHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.GetPostBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var dto model.CreatePostDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeValidationError(w, "invalid JSON body")
		return
	}

	// The author is whoever holds the token, never the request body.
	userID, _ := auth.UserIDFromContext(r.Context())
	dto.AuthorID = userID

	if err := h.validate.Struct(&dto); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	post, err := h.service.CreatePost(r.Context(), &dto)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeValidationError(w, "invalid post id")
		return
	}

	var dto model.UpdatePostDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeValidationError(w, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(&dto); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	post, err := h.service.UpdatePost(r.Context(), id, &dto)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeValidationError(w, "invalid post id")
		return
	}
	if err := h.service.DeletePost(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PostHandler) SetTags(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeValidationError(w, "invalid post id")
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
