package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/taskboard/taskboard-be/internal/api/handlers"
	"github.com/taskboard/taskboard-be/internal/auth"
	"github.com/taskboard/taskboard-be/internal/config"
	"github.com/taskboard/taskboard-be/internal/identity"
	"github.com/taskboard/taskboard-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(cfg *config.Config, taskService services.TaskServiceProvider, userService services.UserServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService, identity.ForSource(cfg.IdentitySource))

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", userHandler.Register)
			r.Post("/login", userHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(auth.JWTMiddleware())
				r.Get("/me", userHandler.GetMe)
			})
		})

		r.Route("/tasks", func(r chi.Router) {
			if cfg.IdentitySource == config.IdentityPath {
				// Legacy public variant: no auth middleware, the {userid}
				// path segment is trusted as the acting identity.
				r.Get("/", taskHandler.GetAll)
				r.Get("/user/{userid}", taskHandler.GetForUser)
				r.Get("/{id}", taskHandler.Get)
				r.Post("/{userid}", taskHandler.Create)
				r.Delete("/{id}/{userid}", taskHandler.Delete)
				return
			}

			r.Use(auth.JWTMiddleware())
			r.Get("/", taskHandler.GetAll)
			r.Get("/user", taskHandler.GetForUser)
			r.Get("/{id}", taskHandler.Get)
			r.Post("/", taskHandler.Create)
			r.Delete("/{id}", taskHandler.Delete)
		})
	})

	return r
}
