package job

import (
	"context"
	"strings"
	"time"

	"job-board/internal/domain/job"
	"job-board/internal/domain/user"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrForbidden      = errors.New("recruiter role required")
	ErrMissingFields  = errors.New("missing required fields")
	ErrNoSearchFields = errors.New("no search fields supplied")
	ErrNoChanges      = errors.New("no changes supplied")
	ErrInvalidSalary  = errors.New("salary must be a non-negative whole number")
	ErrNotFound       = errors.New("job not found")
	ErrAlreadyApplied = errors.New("already applied")
	ErrInternal       = errors.New("internal error")
)

const (
	DefaultListLimit   = 5
	DefaultFilterLimit = 10
	MaxLimit           = 100
)

// Cache is the subset of the Redis cache the catalog needs.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// Requester is the authenticated caller, taken from the bearer token.
type Requester struct {
	ID   uuid.UUID
	Role user.Role
}

type CreateInput struct {
	Title        string
	CompanyName  string
	Location     string
	Salary       int64
	JobType      string
	Description  string
	AboutCompany string
	Skill        string
}

func (in CreateInput) complete() bool {
	for _, s := range []string{in.Title, in.CompanyName, in.Location, in.JobType, in.Description, in.AboutCompany, in.Skill} {
		if strings.TrimSpace(s) == "" {
			return false
		}
	}
	return in.Salary != 0
}

type FilterInput struct {
	JobType     string
	CompanyName string
	Location    string
	Skill       string
	MinSalary   *int64
	MaxSalary   *int64
	Recently    string
	Page        int
	Limit       int
}

type Page struct {
	Page  int
	Limit int
	Jobs  []job.Job
}

type Service struct {
	jobs  job.Repository
	apps  job.ApplicationRepository
	cache Cache
	log   zerolog.Logger
}

// NewService accepts a nil cache.
func NewService(jobs job.Repository, apps job.ApplicationRepository, cache Cache, log zerolog.Logger) *Service {
	return &Service{jobs: jobs, apps: apps, cache: cache, log: log.With().Str("component", "jobs").Logger()}
}

func (s *Service) CreateJob(ctx context.Context, req Requester, in CreateInput) (job.Job, error) {
	if !req.Role.IsRecruiter() {
		return job.Job{}, ErrForbidden
	}
	if !in.complete() {
		return job.Job{}, ErrMissingFields
	}
	if in.Salary < 0 {
		return job.Job{}, ErrInvalidSalary
	}

	j := job.Job{
		ID:           uuid.New(),
		Title:        strings.TrimSpace(in.Title),
		CompanyName:  strings.TrimSpace(in.CompanyName),
		Location:     strings.TrimSpace(in.Location),
		Salary:       in.Salary,
		JobType:      strings.TrimSpace(in.JobType),
		Description:  strings.TrimSpace(in.Description),
		AboutCompany: strings.TrimSpace(in.AboutCompany),
		Skill:        strings.TrimSpace(in.Skill),
		RecruiterID:  req.ID,
	}
	if err := s.jobs.Create(ctx, j); err != nil {
		return job.Job{}, errors.Mark(err, ErrInternal)
	}

	s.invalidate(ctx)
	return j, nil
}

func (s *Service) ListJobs(ctx context.Context, page, limit int) (Page, error) {
	page, limit = normalizePage(page, limit, DefaultListLimit)

	key := listCacheKey(page, limit)
	var cached []job.Job
	if s.cacheGet(ctx, key, &cached) {
		return Page{Page: page, Limit: limit, Jobs: cached}, nil
	}

	jobs, err := s.jobs.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return Page{}, errors.Mark(err, ErrInternal)
	}

	s.cacheSet(ctx, key, jobs)
	return Page{Page: page, Limit: limit, Jobs: jobs}, nil
}

// SearchJobs returns every job matching any supplied field.
func (s *Service) SearchJobs(ctx context.Context, f job.SearchFilter) ([]job.Job, error) {
	f = job.SearchFilter{
		Title:       strings.TrimSpace(f.Title),
		JobType:     strings.TrimSpace(f.JobType),
		CompanyName: strings.TrimSpace(f.CompanyName),
		Location:    strings.TrimSpace(f.Location),
		Skill:       strings.TrimSpace(f.Skill),
	}
	if f.Empty() {
		return nil, ErrNoSearchFields
	}

	key := searchCacheKey(f)
	var cached []job.Job
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	jobs, err := s.jobs.Search(ctx, f)
	if err != nil {
		return nil, errors.Mark(err, ErrInternal)
	}

	s.cacheSet(ctx, key, jobs)
	return jobs, nil
}

// FilterJobs returns one page of jobs matching every supplied field.
func (s *Service) FilterJobs(ctx context.Context, in FilterInput) ([]job.Job, error) {
	page, limit := normalizePage(in.Page, in.Limit, DefaultFilterLimit)
	f := job.Filter{
		JobType:     strings.TrimSpace(in.JobType),
		CompanyName: strings.TrimSpace(in.CompanyName),
		Location:    strings.TrimSpace(in.Location),
		Skill:       strings.TrimSpace(in.Skill),
		MinSalary:   in.MinSalary,
		MaxSalary:   in.MaxSalary,
		Recent:      in.Recently == "true",
		Limit:       limit,
		Offset:      (page - 1) * limit,
	}

	key := filterCacheKey(f)
	var cached []job.Job
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	jobs, err := s.jobs.Filter(ctx, f)
	if err != nil {
		return nil, errors.Mark(err, ErrInternal)
	}

	s.cacheSet(ctx, key, jobs)
	return jobs, nil
}

func (s *Service) GetJobDetail(ctx context.Context, userID, jobID uuid.UUID) (job.Detail, error) {
	d, err := s.jobs.GetDetail(ctx, jobID, userID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Detail{}, ErrNotFound
		}
		return job.Detail{}, errors.Mark(err, ErrInternal)
	}
	return d, nil
}

func (s *Service) ApplyToJob(ctx context.Context, userID, jobID uuid.UUID) error {
	exists, err := s.apps.Exists(ctx, userID, jobID)
	if err != nil {
		return errors.Mark(err, ErrInternal)
	}
	if exists {
		return ErrAlreadyApplied
	}

	err = s.apps.Create(ctx, job.Application{UserID: userID, JobID: jobID})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, job.ErrAlreadyApplied):
		return ErrAlreadyApplied
	case errors.Is(err, job.ErrNotFound):
		return ErrNotFound
	default:
		return errors.Mark(err, ErrInternal)
	}
}

func (s *Service) ListAppliedJobs(ctx context.Context, userID uuid.UUID) ([]job.Job, error) {
	jobs, err := s.apps.ListAppliedJobs(ctx, userID)
	if err != nil {
		return nil, errors.Mark(err, ErrInternal)
	}
	return jobs, nil
}

// UpdateJob reports ErrNotFound when the job does not exist or belongs to
// another recruiter.
func (s *Service) UpdateJob(ctx context.Context, req Requester, jobID uuid.UUID, c job.Changes) error {
	if !req.Role.IsRecruiter() {
		return ErrForbidden
	}
	if c.Empty() {
		return ErrNoChanges
	}
	if c.Salary != nil && *c.Salary < 0 {
		return ErrInvalidSalary
	}

	n, err := s.jobs.Update(ctx, jobID, req.ID, c)
	if err != nil {
		return errors.Mark(err, ErrInternal)
	}
	if n == 0 {
		return ErrNotFound
	}

	s.invalidate(ctx)
	return nil
}

func (s *Service) DeleteJob(ctx context.Context, req Requester, jobID uuid.UUID) error {
	if !req.Role.IsRecruiter() {
		return ErrForbidden
	}

	n, err := s.jobs.Delete(ctx, jobID, req.ID)
	if err != nil {
		return errors.Mark(err, ErrInternal)
	}
	if n == 0 {
		return ErrNotFound
	}

	s.invalidate(ctx)
	return nil
}

func normalizePage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

func (s *Service) cacheGet(ctx context.Context, key string, out *[]job.Job) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.GetJSON(ctx, key, out)
	if err != nil || !hit {
		s.log.Debug().Str("key", key).Msg("cache miss")
		return false
	}
	s.log.Debug().Str("key", key).Msg("cache hit")
	return true
}

func (s *Service) cacheSet(ctx context.Context, key string, jobs []job.Job) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, jobs, 0); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, cacheKeyPrefix+"*"); err != nil {
		s.log.Warn().Err(err).Msg("cache invalidation failed")
	}
}
