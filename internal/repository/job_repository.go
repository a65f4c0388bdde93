package repository

import (
	"context"

	"job-board/internal/database"
	"job-board/internal/domain/job"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

const jobColumns = `id, title, company_name, location, salary, job_type, description, about_company, skill, recruiter_id, created_at`

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, title, company_name, location, salary, job_type, description, about_company, skill, recruiter_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		j.ID, j.Title, j.CompanyName, j.Location, j.Salary, j.JobType, j.Description, j.AboutCompany, j.Skill, j.RecruiterID,
	)
	return errors.Wrap(err, "insert job")
}

func (r *PostgresJobRepository) List(ctx context.Context, limit, offset int) ([]job.Job, error) {
	return r.queryJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY created_at ASC, id ASC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
}

func (r *PostgresJobRepository) Search(ctx context.Context, f job.SearchFilter) ([]job.Job, error) {
	p := newPredicates().
		contains("title", f.Title).
		contains("company_name", f.CompanyName).
		contains("job_type", f.JobType).
		contains("location", f.Location).
		contains("skill", f.Skill)
	if p.empty() {
		return nil, errors.New("search requires at least one predicate")
	}

	q := `SELECT ` + jobColumns + ` FROM jobs` + p.where("OR") + ` ORDER BY created_at ASC, id ASC`
	return r.queryJobs(ctx, q, p.args...)
}

func (r *PostgresJobRepository) Filter(ctx context.Context, f job.Filter) ([]job.Job, error) {
	p := newPredicates().
		contains("job_type", f.JobType).
		contains("company_name", f.CompanyName).
		contains("location", f.Location).
		atLeast("salary", f.MinSalary).
		atMost("salary", f.MaxSalary).
		contains("skill", f.Skill)

	q := `SELECT ` + jobColumns + ` FROM jobs` + p.where("AND")
	if f.Recent {
		q += ` ORDER BY created_at DESC, id DESC`
	} else {
		q += ` ORDER BY created_at ASC, id ASC`
	}
	q += ` LIMIT ` + p.next(f.Limit) + ` OFFSET ` + p.next(f.Offset)

	return r.queryJobs(ctx, q, p.args...)
}

func (r *PostgresJobRepository) GetDetail(ctx context.Context, jobID, userID uuid.UUID) (job.Detail, error) {
	row := r.db.QueryRow(ctx,
		`SELECT j.id, j.title, j.company_name, j.location, j.salary, j.job_type, j.description, j.about_company, j.skill, j.recruiter_id, j.created_at,
		        CASE WHEN a.user_id IS NOT NULL THEN 'Applied' ELSE 'Not Applied' END AS application_status
		 FROM jobs j
		 LEFT JOIN job_applications a ON a.job_id = j.id AND a.user_id = $1
		 WHERE j.id = $2`,
		userID, jobID,
	)

	var d job.Detail
	err := row.Scan(
		&d.ID, &d.Title, &d.CompanyName, &d.Location, &d.Salary, &d.JobType,
		&d.Description, &d.AboutCompany, &d.Skill, &d.RecruiterID, &d.CreatedAt,
		&d.ApplicationStatus,
	)
	if err != nil {
		if database.IsNoRows(err) {
			return job.Detail{}, job.ErrNotFound
		}
		return job.Detail{}, errors.Wrap(err, "get job detail")
	}
	return d, nil
}

func (r *PostgresJobRepository) Update(ctx context.Context, jobID, recruiterID uuid.UUID, c job.Changes) (int64, error) {
	var a assignments
	if c.Title != nil {
		a.set("title", *c.Title)
	}
	if c.CompanyName != nil {
		a.set("company_name", *c.CompanyName)
	}
	if c.Location != nil {
		a.set("location", *c.Location)
	}
	if c.Salary != nil {
		a.set("salary", *c.Salary)
	}
	if c.JobType != nil {
		a.set("job_type", *c.JobType)
	}
	if c.Description != nil {
		a.set("description", *c.Description)
	}
	if c.AboutCompany != nil {
		a.set("about_company", *c.AboutCompany)
	}
	if c.Skill != nil {
		a.set("skill", *c.Skill)
	}
	if a.empty() {
		return 0, nil
	}

	q := `UPDATE jobs SET ` + a.clause() + ` WHERE id = ` + a.bind(jobID) + ` AND recruiter_id = ` + a.bind(recruiterID)
	n, err := r.db.Exec(ctx, q, a.args...)
	if err != nil {
		return 0, errors.Wrap(err, "update job")
	}
	return n, nil
}

func (r *PostgresJobRepository) Delete(ctx context.Context, jobID, recruiterID uuid.UUID) (int64, error) {
	n, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1 AND recruiter_id = $2`, jobID, recruiterID)
	if err != nil {
		return 0, errors.Wrap(err, "delete job")
	}
	return n, nil
}

func (r *PostgresJobRepository) queryJobs(ctx context.Context, q string, args ...any) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query jobs")
	}
	defer rows.Close()

	return scanJobs(rows)
}

func scanJobs(rows database.Rows) ([]job.Job, error) {
	out := make([]job.Job, 0)
	for rows.Next() {
		var j job.Job
		if err := rows.Scan(
			&j.ID, &j.Title, &j.CompanyName, &j.Location, &j.Salary, &j.JobType,
			&j.Description, &j.AboutCompany, &j.Skill, &j.RecruiterID, &j.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scan job")
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate jobs")
	}
	return out, nil
}
