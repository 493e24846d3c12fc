package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tasktracker/pkg/respond"
)

// NewRouter собирает все маршруты. authHandler и gate равны nil в
// варианте без аутентификации — тогда задачи открыты, а /api/auth
// не монтируется вовсе.
func NewRouter(tasks *TaskHandler, auth *AuthHandler, gate func(http.Handler) http.Handler, extra ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	for _, mw := range extra {
		r.Use(mw)
	}

	// Любой несопоставленный маршрут или метод отдает 404; хэндлеры
	// задаются до Route, чтобы саброутеры их унаследовали.
	notFound := func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, r, http.StatusNotFound, "endpoint not found")
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/tasks", func(r chi.Router) {
		if gate != nil {
			r.Use(gate)
		}
		r.Get("/", tasks.List)
		r.Post("/", tasks.Create)
		r.Get("/{id}", tasks.Get)
		r.Put("/{id}", tasks.Update)
		r.Delete("/{id}", tasks.Delete)
	})

	if auth != nil && gate != nil {
		r.Route("/api/auth", func(r chi.Router) {
			r.Post("/register", auth.Register)
			r.Post("/login", auth.Login)
			r.With(gate).Get("/me", auth.Me)
		})
	}

	return r
}
