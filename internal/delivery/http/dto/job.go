package dto

import (
	"time"

	"job-board/internal/domain/job"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	CompanyName  string    `json:"company_name"`
	Location     string    `json:"location"`
	Salary       int64     `json:"salary"`
	JobType      string    `json:"job_type"`
	Description  string    `json:"description"`
	AboutCompany string    `json:"about_company"`
	Skill        string    `json:"skill"`
	RecruiterID  uuid.UUID `json:"recruiter_id"`
	CreatedAt    time.Time `json:"created_at"`
}

type JobDetailResponse struct {
	JobResponse
	ApplicationStatus string `json:"application_status"`
}

type ListJobsResponse struct {
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
	Jobs  []JobResponse `json:"jobs"`
}

type JobsResponse struct {
	Jobs []JobResponse `json:"jobs"`
}

type AppliedJobsResponse struct {
	AppliedJobs []JobResponse `json:"appliedJobs"`
}

func NewJobResponse(j job.Job) JobResponse {
	return JobResponse{
		ID:           j.ID,
		Title:        j.Title,
		CompanyName:  j.CompanyName,
		Location:     j.Location,
		Salary:       j.Salary,
		JobType:      j.JobType,
		Description:  j.Description,
		AboutCompany: j.AboutCompany,
		Skill:        j.Skill,
		RecruiterID:  j.RecruiterID,
		CreatedAt:    j.CreatedAt.UTC(),
	}
}

// NewJobResponses never returns nil so empty lists render as [].
func NewJobResponses(jobs []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, NewJobResponse(j))
	}
	return out
}

func NewJobDetailResponse(d job.Detail) JobDetailResponse {
	return JobDetailResponse{
		JobResponse:       NewJobResponse(d.Job),
		ApplicationStatus: d.ApplicationStatus,
	}
}
