package app

import (
	"context"
	"time"

	"job-board/internal/config"
	dbpostgres "job-board/internal/database/postgres"
	"job-board/internal/infrastructure/cache"
	"job-board/internal/pkg/credential"
	"job-board/internal/pkg/jwt"
	"job-board/internal/pkg/password"
	"job-board/internal/repository"
	ucauth "job-board/internal/usecase/auth"
	ucjob "job-board/internal/usecase/job"
	ucuser "job-board/internal/usecase/user"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// Container owns every long-lived dependency of the server.
type Container struct {
	Config      config.Config
	Log         zerolog.Logger
	DB          *dbpostgres.Pool
	Cache       *cache.Redis
	Credentials *credential.Service

	Auth  *ucauth.Service
	Users *ucuser.Service
	Jobs  *ucjob.Service
}

func NewContainer(ctx context.Context, cfg config.Config, log zerolog.Logger) (*Container, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database, log)
	if err != nil {
		return nil, errors.Wrap(err, "connect database")
	}

	rdb := cache.NewRedis(ctx, cfg.Redis, log)

	creds := credential.NewService(
		password.NewHasher(cfg.App.BcryptCost),
		jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn),
	)

	users := repository.NewPostgresUserRepository(db)
	jobs := repository.NewPostgresJobRepository(db)
	apps := repository.NewPostgresApplicationRepository(db)

	return &Container{
		Config:      cfg,
		Log:         log,
		DB:          db,
		Cache:       rdb,
		Credentials: creds,
		Auth:        ucauth.NewService(users, creds),
		Users:       ucuser.NewService(users, creds),
		Jobs:        ucjob.NewService(jobs, apps, rdb, log),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs error
	if c.Cache != nil {
		errs = errors.CombineErrors(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = errors.CombineErrors(errs, c.DB.Close())
	}
	return errs
}
