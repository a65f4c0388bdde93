package seeder

import (
	"context"

	"job-board/internal/database"

	"github.com/cockroachdb/errors"
)

// ErrSchemaMismatch marks a table that lacks a column the repositories read.
var ErrSchemaMismatch = errors.New("schema mismatch")

var requiredColumns = []struct {
	table   string
	columns []string
}{
	{table: "user", columns: []string{"id", "name", "email", "password", "role", "created_at"}},
	{table: "jobs", columns: []string{
		"id", "title", "company_name", "location", "salary", "job_type",
		"description", "about_company", "skill", "recruiter_id", "created_at",
	}},
	{table: "job_applications", columns: []string{"user_id", "job_id", "created_at"}},
}

// VerifySchema checks every table the repositories query.
func VerifySchema(ctx context.Context, db database.DB) error {
	for _, t := range requiredColumns {
		if err := EnsureTableColumns(ctx, db, t.table, t.columns...); err != nil {
			return err
		}
	}
	return nil
}

func EnsureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return errors.New("nil db")
	}
	if table == "" {
		return errors.New("empty table")
	}
	for _, col := range columns {
		if col == "" {
			return errors.New("empty column")
		}
	}

	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema='public' AND table_name=$1`,
		table,
	)
	if err != nil {
		return errors.Wrapf(err, "read columns of %s", table)
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			return errors.Mark(errors.Newf("missing column %s.%s", table, col), ErrSchemaMismatch)
		}
	}
	return nil
}
