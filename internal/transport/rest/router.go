package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/hcmteam/personnel-management/internal/auth"
	"github.com/hcmteam/personnel-management/internal/department"
	"github.com/hcmteam/personnel-management/internal/transport/middleware"
	"github.com/hcmteam/personnel-management/internal/transport/swagger"
	"github.com/hcmteam/personnel-management/internal/user"
)

// RegisterAllRoutes mounts the API. All record routes sit behind the
// identity middleware; the route table carries no authorization logic of its
// own, that lives in the rbac policy consulted by the services.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	identity *auth.IdentityResolver,
	userHandler *user.Handler,
	departmentHandler *department.Handler,
	allowedOrigins string,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// OpenAPI spec and swagger UI at root
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Group(func(pr chi.Router) {
			pr.Use(identity.Middleware)

			pr.Route("/users", func(ur chi.Router) {
				ur.Get("/", userHandler.ListUsers)
				ur.Post("/", userHandler.CreateUser)
				ur.Get("/{id}", userHandler.GetUser)
				ur.Put("/{id}", userHandler.UpdateUser)
				ur.Delete("/{id}", userHandler.DeleteUser)
			})

			pr.Get("/departments", departmentHandler.GetDepartments)
		})
	})
}
