// Package usecase declares the application operations the HTTP layer calls.
package usecase

import (
	"context"

	"job-board/internal/domain/job"
	"job-board/internal/domain/user"
	ucauth "job-board/internal/usecase/auth"
	ucjob "job-board/internal/usecase/job"
	ucuser "job-board/internal/usecase/user"

	"github.com/google/uuid"
)

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (user.User, error)
	Login(ctx context.Context, in ucauth.LoginInput) (string, error)
}

type UserUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in ucuser.UpdateProfileInput) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, req ucjob.Requester, in ucjob.CreateInput) (job.Job, error)
	ListJobs(ctx context.Context, page, limit int) (ucjob.Page, error)
	SearchJobs(ctx context.Context, f job.SearchFilter) ([]job.Job, error)
	FilterJobs(ctx context.Context, in ucjob.FilterInput) ([]job.Job, error)
	GetJobDetail(ctx context.Context, userID, jobID uuid.UUID) (job.Detail, error)
	ApplyToJob(ctx context.Context, userID, jobID uuid.UUID) error
	ListAppliedJobs(ctx context.Context, userID uuid.UUID) ([]job.Job, error)
	UpdateJob(ctx context.Context, req ucjob.Requester, jobID uuid.UUID, c job.Changes) error
	DeleteJob(ctx context.Context, req ucjob.Requester, jobID uuid.UUID) error
}

var (
	_ AuthUsecase = (*ucauth.Service)(nil)
	_ UserUsecase = (*ucuser.Service)(nil)
	_ JobUsecase  = (*ucjob.Service)(nil)
)
