package routes

import (
	"job-board/internal/delivery/http/handler"
	"job-board/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	authMw  *middleware.AuthMiddleware
	health  *handler.HealthHandler
	auth    *handler.AuthHandler
	profile *handler.UserHandler
	jobs    *handler.JobHandler
}

func NewRegistry(
	authMw *middleware.AuthMiddleware,
	health *handler.HealthHandler,
	auth *handler.AuthHandler,
	profile *handler.UserHandler,
	jobs *handler.JobHandler,
) *Registry {
	return &Registry{authMw: authMw, health: health, auth: auth, profile: profile, jobs: jobs}
}

// Register mounts every route at the root path. Authentication is attached
// per route; a root-level group would also guard the public listings.
func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	requireAuth := r.authMw.Middleware()

	r.health.RegisterRoutes(app)
	r.auth.RegisterRoutes(app)
	r.profile.RegisterRoutes(app, requireAuth)
	r.jobs.RegisterRoutes(app, requireAuth)
}
