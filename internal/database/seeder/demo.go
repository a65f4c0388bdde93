package seeder

import (
	"context"

	"job-board/internal/database"
	"job-board/internal/domain/user"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "demo123"

type PasswordHasher interface {
	HashPassword(pw string) (string, error)
}

// DemoSeeder creates one recruiter, one seeker and a few jobs owned by the
// recruiter. Accounts are keyed by email, so rerunning it is a no-op.
type DemoSeeder struct {
	Hasher PasswordHasher
}

type demoAccount struct {
	Name  string
	Email string
	Role  user.Role
}

type demoJob struct {
	Title        string
	CompanyName  string
	Location     string
	Salary       int64
	JobType      string
	Description  string
	AboutCompany string
	Skill        string
}

var demoAccounts = []demoAccount{
	{Name: "Riya Recruiter", Email: "recruiter@example.com", Role: user.RoleRecruiter},
	{Name: "Sam Seeker", Email: "seeker@example.com", Role: user.RoleSeeker},
}

var demoJobs = []demoJob{
	{
		Title:        "Backend Engineer",
		CompanyName:  "Acme Corp",
		Location:     "Bangalore",
		Salary:       1200000,
		JobType:      "Full Time",
		Description:  "Build and operate HTTP services backed by PostgreSQL.",
		AboutCompany: "Acme builds logistics software.",
		Skill:        "Go, PostgreSQL, Redis",
	},
	{
		Title:        "Frontend Developer",
		CompanyName:  "Globex",
		Location:     "Remote",
		Salary:       900000,
		JobType:      "Contract",
		Description:  "Own the candidate-facing web app.",
		AboutCompany: "Globex runs a hiring marketplace.",
		Skill:        "React, TypeScript",
	},
	{
		Title:        "Data Analyst Intern",
		CompanyName:  "Initech",
		Location:     "Hyderabad",
		Salary:       25000,
		JobType:      "Internship",
		Description:  "Prepare weekly hiring funnel reports.",
		AboutCompany: "Initech consults on workforce analytics.",
		Skill:        "SQL, Python",
	},
}

func (DemoSeeder) Name() string { return "demo" }

func (s DemoSeeder) Run(ctx context.Context, db database.DB) error {
	if s.Hasher == nil {
		return errors.New("demo seeder: nil hasher")
	}
	if err := VerifySchema(ctx, db); err != nil {
		return err
	}

	hash, err := s.Hasher.HashPassword(DemoPassword)
	if err != nil {
		return errors.Wrap(err, "hash demo password")
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	var recruiterID uuid.UUID
	createdRecruiter := false
	for _, a := range demoAccounts {
		id := uuid.New()
		affected, err := tx.Exec(
			ctx,
			`INSERT INTO "user" (id, name, email, password, role) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (email) DO NOTHING`,
			id, a.Name, a.Email, hash, string(a.Role),
		)
		if err != nil {
			return errors.Wrapf(err, "insert %s", a.Email)
		}
		if a.Role.IsRecruiter() && affected > 0 {
			recruiterID = id
			createdRecruiter = true
		}
	}

	// Jobs are only added alongside a freshly created recruiter so reruns
	// do not duplicate them.
	if createdRecruiter {
		for _, j := range demoJobs {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO jobs (id, title, company_name, location, salary, job_type, description, about_company, skill, recruiter_id)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
				uuid.New(), j.Title, j.CompanyName, j.Location, j.Salary, j.JobType, j.Description, j.AboutCompany, j.Skill, recruiterID,
			)
			if err != nil {
				return errors.Wrapf(err, "insert job %q", j.Title)
			}
		}
	}

	return tx.Commit(ctx)
}
