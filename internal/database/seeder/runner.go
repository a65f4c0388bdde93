package seeder

import (
	"context"

	"job-board/internal/database"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

type Runner struct {
	Seeders []Seeder
	Log     zerolog.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return errors.New("nil db")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, db); err != nil {
			return errors.Wrapf(err, "seed %s", s.Name())
		}
		r.Log.Info().Str("seeder", s.Name()).Msg("seeded")
	}
	return nil
}
