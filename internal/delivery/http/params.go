package delivery_http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// queryString returns nil for absent or empty query values so services
// can distinguish "no filter" from an empty filter.
func queryString(r *http.Request, key string) *string {
	if value := r.URL.Query().Get(key); value != "" {
		return &value
	}
	return nil
}
