package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public catalog, the session endpoints, and the
// admin routes behind the authenticate + requireAdmin guards.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/projects", handlers.projectHandler.listProjects())
		r.Get("/project/{projectID}", handlers.projectHandler.getProject())

		r.Post("/auth/login", handlers.authHandler.login())
		r.Post("/auth/logout", handlers.authHandler.logout())
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.authenticate)

		r.Get("/auth/me", handlers.authHandler.me())

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.requireAdmin)

			r.Post("/project", handlers.projectHandler.createProject())
			r.Put("/project/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/project/{projectID}", handlers.projectHandler.deleteProject())

			r.Post("/uploads/pdf", handlers.uploadHandler.uploadPDF())
			r.Post("/uploads/images", handlers.uploadHandler.uploadImages())
		})
	})
}
