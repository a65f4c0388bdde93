package repository

import (
	"database/sql/driver"
	"testing"
	"time"

	"job-board/internal/database/sqldb"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqldb.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return sqldb.New(db), mock
}

var jobColumnNames = []string{
	"id", "title", "company_name", "location", "salary", "job_type",
	"description", "about_company", "skill", "recruiter_id", "created_at",
}

func jobRow(id, recruiter uuid.UUID, title string, created time.Time) []driver.Value {
	return []driver.Value{
		id.String(), title, "Acme", "Pune", int64(50000), "Full Time",
		"desc", "about", "Go", recruiter.String(), created,
	}
}
