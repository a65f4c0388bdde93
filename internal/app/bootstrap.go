package app

import (
	"context"
	"strings"

	"job-board/internal/config"
	"job-board/internal/database/migration"
	"job-board/internal/database/seeder"
	"job-board/internal/delivery/http/handler"
	"job-board/internal/delivery/http/middleware"
	"job-board/internal/delivery/http/routes"
	"job-board/internal/logger"
	"job-board/internal/validation"
	"job-board/migrations"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/rs/zerolog"
)

type App struct {
	Fiber *fiber.App
}

// New builds the HTTP application over an already wired container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:         c.Config.App.AppName,
		StructValidator: validation.New(),
	})

	registerGlobalMiddleware(f, c.Config, c.Log)

	routes.NewRegistry(
		middleware.NewAuthMiddleware(c.Credentials),
		handler.NewHealthHandler(c.DB, c.Cache),
		handler.NewAuthHandler(c.Auth),
		handler.NewUserHandler(c.Users),
		handler.NewJobHandler(c.Jobs),
	).Register(f)

	return &App{Fiber: f}
}

// Bootstrap connects the stores, optionally migrates, verifies the schema
// and returns the app with a cleanup func that releases the stores.
func Bootstrap(ctx context.Context, cfg config.Config, log zerolog.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Database.RunMigrations {
		r := migration.Runner{FS: migrations.FS, Log: logger.Component(log, "migrate")}
		if err := r.Run(ctx, c.DB.SQLDB()); err != nil {
			_ = c.Close()
			return nil, nil, errors.Wrap(err, "run migrations")
		}
	}

	if err := seeder.VerifySchema(ctx, c.DB); err != nil {
		_ = c.Close()
		return nil, nil, errors.Wrap(err, "verify schema")
	}

	if cfg.Database.RunSeeders {
		r := seeder.Runner{
			Seeders: []seeder.Seeder{seeder.DemoSeeder{Hasher: c.Credentials}},
			Log:     logger.Component(log, "seed"),
		}
		if err := r.Run(ctx, c.DB); err != nil {
			_ = c.Close()
			return nil, nil, err
		}
	}

	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config, log zerolog.Logger) {
	if app == nil {
		return
	}

	origins := cfg.App.CORSAllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: []string{fiber.HeaderOrigin, fiber.HeaderContentType, fiber.HeaderAccept, fiber.HeaderAuthorization},
	}))

	accessMw := middleware.NewAccessLogMiddleware(log)
	app.Use(accessMw.Middleware())

	errMw := middleware.NewErrorMiddleware(log)
	app.Use(errMw.Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", errors.New("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
