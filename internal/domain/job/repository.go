package job

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("job not found")
	ErrAlreadyApplied = errors.New("already applied")
)

type Repository interface {
	Create(ctx context.Context, j Job) error
	List(ctx context.Context, limit, offset int) ([]Job, error)
	Search(ctx context.Context, f SearchFilter) ([]Job, error)
	Filter(ctx context.Context, f Filter) ([]Job, error)
	GetDetail(ctx context.Context, jobID, userID uuid.UUID) (Detail, error)
	// Update and Delete only touch rows owned by recruiterID and report how
	// many rows matched.
	Update(ctx context.Context, jobID, recruiterID uuid.UUID, c Changes) (int64, error)
	Delete(ctx context.Context, jobID, recruiterID uuid.UUID) (int64, error)
}

type ApplicationRepository interface {
	Exists(ctx context.Context, userID, jobID uuid.UUID) (bool, error)
	Create(ctx context.Context, a Application) error
	ListAppliedJobs(ctx context.Context, userID uuid.UUID) ([]Job, error)
}
