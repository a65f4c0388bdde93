package job

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusApplied    = "Applied"
	StatusNotApplied = "Not Applied"
)

type Job struct {
	ID           uuid.UUID
	Title        string
	CompanyName  string
	Location     string
	Salary       int64
	JobType      string
	Description  string
	AboutCompany string
	Skill        string
	RecruiterID  uuid.UUID
	CreatedAt    time.Time
}

// Detail is a Job annotated with whether the viewing user applied to it.
type Detail struct {
	Job
	ApplicationStatus string
}

type Application struct {
	UserID    uuid.UUID
	JobID     uuid.UUID
	CreatedAt time.Time
}

// Changes holds a partial job update; nil fields are left untouched.
type Changes struct {
	Title        *string
	CompanyName  *string
	Location     *string
	Salary       *int64
	JobType      *string
	Description  *string
	AboutCompany *string
	Skill        *string
}

func (c Changes) Empty() bool {
	return c.Title == nil && c.CompanyName == nil && c.Location == nil && c.Salary == nil &&
		c.JobType == nil && c.Description == nil && c.AboutCompany == nil && c.Skill == nil
}

// SearchFilter fields are substring matches combined with OR.
type SearchFilter struct {
	Title       string
	JobType     string
	CompanyName string
	Location    string
	Skill       string
}

func (f SearchFilter) Empty() bool {
	return f.Title == "" && f.JobType == "" && f.CompanyName == "" && f.Location == "" && f.Skill == ""
}

// Filter fields are combined with AND. Salary bounds are inclusive.
type Filter struct {
	JobType     string
	CompanyName string
	Location    string
	Skill       string
	MinSalary   *int64
	MaxSalary   *int64
	Recent      bool
	Limit       int
	Offset      int
}
