package repository

import (
	"context"

	"job-board/internal/database"
	"job-board/internal/domain/job"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) Exists(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM job_applications WHERE user_id = $1 AND job_id = $2)`,
		userID, jobID,
	)
	if err := row.Scan(&exists); err != nil {
		if database.IsNoRows(err) {
			return false, nil
		}
		return false, errors.Wrap(err, "check application")
	}
	return exists, nil
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a job.Application) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO job_applications (user_id, job_id) VALUES ($1, $2)`,
		a.UserID, a.JobID,
	)
	switch {
	case err == nil:
		return nil
	case database.IsUniqueViolation(err):
		return job.ErrAlreadyApplied
	case database.IsForeignKeyViolation(err):
		return job.ErrNotFound
	default:
		return errors.Wrap(err, "insert application")
	}
}

func (r *PostgresApplicationRepository) ListAppliedJobs(ctx context.Context, userID uuid.UUID) ([]job.Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT j.id, j.title, j.company_name, j.location, j.salary, j.job_type, j.description, j.about_company, j.skill, j.recruiter_id, j.created_at
		 FROM jobs j
		 INNER JOIN job_applications a ON a.job_id = j.id
		 WHERE a.user_id = $1
		 ORDER BY a.created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "query applied jobs")
	}
	defer rows.Close()

	return scanJobs(rows)
}
