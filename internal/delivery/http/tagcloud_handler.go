package delivery_http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"personal-site-service/internal/logger"
	"personal-site-service/internal/model"
	tagcloud_service "personal-site-service/internal/service/tagcloud"
)

type TagCloudHandler struct {
	service tagcloud_service.Service
	log     *logger.Logger
}

func NewTagCloudHandler(service tagcloud_service.Service, log *logger.Logger) *TagCloudHandler {
	return &TagCloudHandler{service: service, log: log}
}

func (h *TagCloudHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.service.ListTags(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

func (h *TagCloudHandler) Cloud(w http.ResponseWriter, r *http.Request) {
	cloud, err := h.service.Aggregate(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cloud)
}

func (h *TagCloudHandler) CloudByKind(w http.ResponseWriter, r *http.Request) {
	kind, err := model.ParseContentKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, err)
		return
	}

	cloud, err := h.service.AggregateKind(r.Context(), kind)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cloud)
}
