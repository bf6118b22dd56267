package delivery_http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"personal-site-service/internal/auth"
	"personal-site-service/internal/logger"
	"personal-site-service/internal/metrics"
)

type Handlers struct {
	Post     *PostHandler
	Photo    *PhotoHandler
	Bookmark *BookmarkHandler
	TagCloud *TagCloudHandler
}

type Server struct {
	server  *http.Server
	address string
	port    int
	log     *logger.Logger
}

func NewServer(
	handlers Handlers,
	tokens *auth.TokenService,
	address string,
	port int,
	log *logger.Logger,
	m metrics.Provider,
) *Server {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(log, m))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Route("/api", func(r chi.Router) {
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", handlers.Post.List)
			r.Get("/tag/{slug}", handlers.Post.ListByTag)
			r.Get("/archive/today", handlers.Post.ArchiveToday)
			r.Get("/archive/{year}", handlers.Post.Archive)
			r.Get("/archive/{year}/{month}", handlers.Post.Archive)
			r.Get("/archive/{year}/{month}/{day}", handlers.Post.Archive)
			r.Get("/{slug}", handlers.Post.GetBySlug)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAuth(tokens))
				r.Post("/", handlers.Post.Create)
				r.Put("/{id}", handlers.Post.Update)
				r.Delete("/{id}", handlers.Post.Delete)
				r.Put("/{id}/tags", handlers.Post.SetTags)
			})
		})

		r.Route("/photos", func(r chi.Router) {
			r.Get("/", handlers.Photo.List)
			r.Get("/tag/{slug}", handlers.Photo.ListByTag)
			r.Get("/{id}", handlers.Photo.GetByID)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAuth(tokens))
				r.Post("/", handlers.Photo.Create)
				r.Put("/{id}", handlers.Photo.Update)
				r.Delete("/{id}", handlers.Photo.Delete)
				r.Put("/{id}/tags", handlers.Photo.SetTags)
			})
		})

		// Bookmarks are private to their owner, every route needs a token.
		r.Route("/bookmarks", func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))
			r.Get("/", handlers.Bookmark.List)
			r.Post("/", handlers.Bookmark.Create)
			r.Get("/{id}", handlers.Bookmark.GetByID)
			r.Put("/{id}", handlers.Bookmark.Update)
			r.Delete("/{id}", handlers.Bookmark.Delete)
			r.Put("/{id}/favorite", handlers.Bookmark.SetFavorite)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", handlers.Bookmark.ListCategories)
			r.Get("/{id}", handlers.Bookmark.GetCategory)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAuth(tokens))
				r.Post("/", handlers.Bookmark.CreateCategory)
				r.Put("/{id}", handlers.Bookmark.UpdateCategory)
				r.Delete("/{id}", handlers.Bookmark.DeleteCategory)
			})
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", handlers.TagCloud.ListTags)
			r.Get("/cloud", handlers.TagCloud.Cloud)
			r.Get("/cloud/{kind}", handlers.TagCloud.CloudByKind)
		})
	})

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", address, port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		address: address,
		port:    port,
		log:     log,
	}
}

// Handler exposes the assembled router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Run() error {
	s.log.Info("Starting HTTP server", slog.Int("port", s.port))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
