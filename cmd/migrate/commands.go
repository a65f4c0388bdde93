package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"job-board/internal/config"
	"job-board/internal/database/migration"
	"job-board/internal/database/seeder"
	"job-board/internal/database/sqldb"
	"job-board/internal/logger"
	"job-board/internal/pkg/credential"
	"job-board/internal/pkg/password"
	"job-board/migrations"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type env struct {
	cfg config.Config
	log zerolog.Logger
	db  *sqldb.DB
}

func newRootCmd() *cobra.Command {
	var timeout time.Duration

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the job board database schema",
		SilenceUsage: true,
	}
	root.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall deadline for the command")

	withEnv := func(run func(ctx context.Context, e env, out io.Writer) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			cfg, err := config.LoadDatabase()
			if err != nil {
				return err
			}
			log := logger.New(cfg.App.Environment, cfg.App.LogLevel)

			db, err := sqldb.Open(ctx, cfg.Database)
			if err != nil {
				return errors.Wrap(err, "connect database")
			}
			defer func() { _ = db.Close() }()

			return run(ctx, env{cfg: cfg, log: log, db: db}, cmd.OutOrStdout())
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending migrations",
			Args:  cobra.NoArgs,
			RunE:  withEnv(runUp),
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and when they were applied",
			Args:  cobra.NoArgs,
			RunE:  withEnv(runStatus),
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Insert demo accounts and jobs",
			Args:  cobra.NoArgs,
			RunE:  withEnv(runSeed),
		},
	)

	return root
}

func runUp(ctx context.Context, e env, out io.Writer) error {
	r := migration.Runner{FS: migrations.FS, Log: logger.Component(e.log, "migrate")}
	if err := r.Run(ctx, e.db.SQLDB()); err != nil {
		return err
	}
	if err := seeder.VerifySchema(ctx, e.db); err != nil {
		return err
	}
	_, err := fmt.Fprintln(out, "migrations applied")
	return err
}

func runStatus(ctx context.Context, e env, out io.Writer) error {
	r := migration.Runner{FS: migrations.FS, Log: logger.Component(e.log, "migrate")}
	states, err := r.Status(ctx, e.db.SQLDB())
	if err != nil {
		return err
	}
	return writeStatus(out, states)
}

func runSeed(ctx context.Context, e env, out io.Writer) error {
	creds := credential.NewService(password.NewHasher(e.cfg.App.BcryptCost), nil)
	r := seeder.Runner{
		Seeders: []seeder.Seeder{seeder.DemoSeeder{Hasher: creds}},
		Log:     logger.Component(e.log, "seed"),
	}
	if err := r.Run(ctx, e.db); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "demo data seeded (password %q)\n", seeder.DemoPassword)
	return err
}

func writeStatus(out io.Writer, states []migration.State) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tNAME\tAPPLIED AT")
	for _, s := range states {
		applied := "pending"
		if s.AppliedAt != nil {
			applied = s.AppliedAt.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", s.Version, s.Name, applied)
	}
	return tw.Flush()
}
