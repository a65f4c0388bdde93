package job

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"job-board/internal/domain/job"
	"job-board/internal/domain/user"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJobRepo struct {
	jobs []job.Job

	listCalls   int
	lastLimit   int
	lastOffset  int
	lastSearch  job.SearchFilter
	lastFilter  job.Filter
	lastChanges job.Changes
	affected    int64
	err         error
}

func (f *fakeJobRepo) Create(_ context.Context, j job.Job) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, j)
	return nil
}

func (f *fakeJobRepo) List(_ context.Context, limit, offset int) ([]job.Job, error) {
	f.listCalls++
	f.lastLimit, f.lastOffset = limit, offset
	return f.jobs, f.err
}

func (f *fakeJobRepo) Search(_ context.Context, s job.SearchFilter) ([]job.Job, error) {
	f.lastSearch = s
	return f.jobs, f.err
}

func (f *fakeJobRepo) Filter(_ context.Context, flt job.Filter) ([]job.Job, error) {
	f.lastFilter = flt
	return f.jobs, f.err
}

func (f *fakeJobRepo) GetDetail(_ context.Context, jobID, _ uuid.UUID) (job.Detail, error) {
	for _, j := range f.jobs {
		if j.ID == jobID {
			return job.Detail{Job: j, ApplicationStatus: job.StatusNotApplied}, nil
		}
	}
	return job.Detail{}, job.ErrNotFound
}

func (f *fakeJobRepo) Update(_ context.Context, _, _ uuid.UUID, c job.Changes) (int64, error) {
	f.lastChanges = c
	return f.affected, f.err
}

func (f *fakeJobRepo) Delete(context.Context, uuid.UUID, uuid.UUID) (int64, error) {
	return f.affected, f.err
}

type fakeAppRepo struct {
	exists    bool
	createErr error
	created   []job.Application
}

func (f *fakeAppRepo) Exists(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return f.exists, nil
}

func (f *fakeAppRepo) Create(_ context.Context, a job.Application) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, a)
	return nil
}

func (f *fakeAppRepo) ListAppliedJobs(context.Context, uuid.UUID) ([]job.Job, error) {
	return nil, nil
}

type memCache struct {
	data    map[string][]byte
	deleted []string
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

func (m *memCache) DeleteByPattern(_ context.Context, pattern string) error {
	m.deleted = append(m.deleted, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
		}
	}
	return nil
}

var (
	recruiter = Requester{ID: uuid.New(), Role: user.RoleRecruiter}
	seeker    = Requester{ID: uuid.New(), Role: user.RoleSeeker}
)

func validCreateInput() CreateInput {
	return CreateInput{
		Title:        "Backend Engineer",
		CompanyName:  "Acme",
		Location:     "Pune",
		Salary:       50000,
		JobType:      "Full Time",
		Description:  "desc",
		AboutCompany: "about",
		Skill:        "Go",
	}
}

func TestCreateJob(t *testing.T) {
	repo := &fakeJobRepo{}
	svc := NewService(repo, &fakeAppRepo{}, nil, zerolog.Nop())

	j, err := svc.CreateJob(context.Background(), recruiter, validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, recruiter.ID, j.RecruiterID)
	assert.NotEqual(t, uuid.Nil, j.ID)
	require.Len(t, repo.jobs, 1)
}

func TestCreateJob_RoleCheckedBeforeFields(t *testing.T) {
	repo := &fakeJobRepo{}
	svc := NewService(repo, &fakeAppRepo{}, nil, zerolog.Nop())

	_, err := svc.CreateJob(context.Background(), seeker, CreateInput{})
	assert.ErrorIs(t, err, ErrForbidden)

	in := validCreateInput()
	in.Skill = "  "
	_, err = svc.CreateJob(context.Background(), recruiter, in)
	assert.ErrorIs(t, err, ErrMissingFields)

	in = validCreateInput()
	in.Salary = 0
	_, err = svc.CreateJob(context.Background(), recruiter, in)
	assert.ErrorIs(t, err, ErrMissingFields)

	in = validCreateInput()
	in.Salary = -1
	_, err = svc.CreateJob(context.Background(), recruiter, in)
	assert.ErrorIs(t, err, ErrInvalidSalary)

	assert.Empty(t, repo.jobs)
}

func TestListJobs_Pagination(t *testing.T) {
	tests := []struct {
		name                string
		page, limit         int
		wantPage, wantLimit int
		wantOffset          int
	}{
		{name: "defaults", page: 0, limit: 0, wantPage: 1, wantLimit: 5, wantOffset: 0},
		{name: "explicit", page: 3, limit: 10, wantPage: 3, wantLimit: 10, wantOffset: 20},
		{name: "negative falls back", page: -2, limit: -1, wantPage: 1, wantLimit: 5, wantOffset: 0},
		{name: "limit capped", page: 2, limit: 1000, wantPage: 2, wantLimit: 100, wantOffset: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeJobRepo{}
			svc := NewService(repo, &fakeAppRepo{}, nil, zerolog.Nop())

			p, err := svc.ListJobs(context.Background(), tt.page, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, tt.wantLimit, repo.lastLimit)
			assert.Equal(t, tt.wantOffset, repo.lastOffset)
		})
	}
}

func TestListJobs_CachedUntilMutation(t *testing.T) {
	repo := &fakeJobRepo{jobs: []job.Job{{ID: uuid.New(), Title: "A"}}}
	cache := newMemCache()
	svc := NewService(repo, &fakeAppRepo{}, cache, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.ListJobs(ctx, 1, 5)
	require.NoError(t, err)
	p, err := svc.ListJobs(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)
	require.Len(t, p.Jobs, 1)
	assert.Equal(t, "A", p.Jobs[0].Title)

	_, err = svc.CreateJob(ctx, recruiter, validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, []string{"jobs:*"}, cache.deleted)

	p, err = svc.ListJobs(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
	assert.Len(t, p.Jobs, 2)
}

func TestSearchJobs(t *testing.T) {
	repo := &fakeJobRepo{}
	svc := NewService(repo, &fakeAppRepo{}, nil, zerolog.Nop())

	_, err := svc.SearchJobs(context.Background(), job.SearchFilter{Title: "  "})
	assert.ErrorIs(t, err, ErrNoSearchFields)

	_, err = svc.SearchJobs(context.Background(), job.SearchFilter{Title: " engineer ", Location: "NY"})
	require.NoError(t, err)
	assert.Equal(t, job.SearchFilter{Title: "engineer", Location: "NY"}, repo.lastSearch)
}

func TestSearchJobs_InnerWhitespaceIsNotServedFromCache(t *testing.T) {
	ctx := context.Background()
	repo := &fakeJobRepo{jobs: []job.Job{{ID: uuid.New(), Title: "Go Developer"}}}
	svc := NewService(repo, &fakeAppRepo{}, newMemCache(), zerolog.Nop())

	first, err := svc.SearchJobs(ctx, job.SearchFilter{Title: "go developer"})
	require.NoError(t, err)
	require.Len(t, first, 1)

	repo.jobs = nil
	repo.lastSearch = job.SearchFilter{}
	second, err := svc.SearchJobs(ctx, job.SearchFilter{Title: "Go  Developer"})
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.Equal(t, "Go  Developer", repo.lastSearch.Title)
}

func TestFilterJobs(t *testing.T) {
	repo := &fakeJobRepo{}
	svc := NewService(repo, &fakeAppRepo{}, nil, zerolog.Nop())

	lo := int64(5000)
	_, err := svc.FilterJobs(context.Background(), FilterInput{JobType: "Full", MinSalary: &lo, Recently: "true", Page: 2})
	require.NoError(t, err)

	f := repo.lastFilter
	assert.Equal(t, "Full", f.JobType)
	assert.Equal(t, &lo, f.MinSalary)
	assert.True(t, f.Recent)
	assert.Equal(t, 10, f.Limit)
	assert.Equal(t, 10, f.Offset)

	_, err = svc.FilterJobs(context.Background(), FilterInput{Recently: "yes"})
	require.NoError(t, err)
	assert.False(t, repo.lastFilter.Recent)
	assert.Equal(t, 0, repo.lastFilter.Offset)
}

func TestGetJobDetail(t *testing.T) {
	id := uuid.New()
	svc := NewService(&fakeJobRepo{jobs: []job.Job{{ID: id}}}, &fakeAppRepo{}, nil, zerolog.Nop())

	d, err := svc.GetJobDetail(context.Background(), seeker.ID, id)
	require.NoError(t, err)
	assert.Equal(t, job.StatusNotApplied, d.ApplicationStatus)

	_, err = svc.GetJobDetail(context.Background(), seeker.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApplyToJob(t *testing.T) {
	ctx := context.Background()
	jobID := uuid.New()

	apps := &fakeAppRepo{}
	svc := NewService(&fakeJobRepo{}, apps, nil, zerolog.Nop())
	require.NoError(t, svc.ApplyToJob(ctx, seeker.ID, jobID))
	assert.Equal(t, []job.Application{{UserID: seeker.ID, JobID: jobID}}, apps.created)

	apps = &fakeAppRepo{exists: true}
	svc = NewService(&fakeJobRepo{}, apps, nil, zerolog.Nop())
	assert.ErrorIs(t, svc.ApplyToJob(ctx, seeker.ID, jobID), ErrAlreadyApplied)
	assert.Empty(t, apps.created)

	svc = NewService(&fakeJobRepo{}, &fakeAppRepo{createErr: job.ErrAlreadyApplied}, nil, zerolog.Nop())
	assert.ErrorIs(t, svc.ApplyToJob(ctx, seeker.ID, jobID), ErrAlreadyApplied)

	svc = NewService(&fakeJobRepo{}, &fakeAppRepo{createErr: job.ErrNotFound}, nil, zerolog.Nop())
	assert.ErrorIs(t, svc.ApplyToJob(ctx, seeker.ID, jobID), ErrNotFound)
}

func TestUpdateJob(t *testing.T) {
	ctx := context.Background()
	title := "New"

	repo := &fakeJobRepo{affected: 1}
	svc := NewService(repo, &fakeAppRepo{}, nil, zerolog.Nop())

	assert.ErrorIs(t, svc.UpdateJob(ctx, seeker, uuid.New(), job.Changes{Title: &title}), ErrForbidden)
	assert.ErrorIs(t, svc.UpdateJob(ctx, recruiter, uuid.New(), job.Changes{}), ErrNoChanges)
	negative := int64(-500)
	assert.ErrorIs(t, svc.UpdateJob(ctx, recruiter, uuid.New(), job.Changes{Salary: &negative}), ErrInvalidSalary)
	require.NoError(t, svc.UpdateJob(ctx, recruiter, uuid.New(), job.Changes{Title: &title}))
	assert.Equal(t, &title, repo.lastChanges.Title)

	repo.affected = 0
	assert.ErrorIs(t, svc.UpdateJob(ctx, recruiter, uuid.New(), job.Changes{Title: &title}), ErrNotFound)

	repo.err = errors.New("db down")
	err := svc.UpdateJob(ctx, recruiter, uuid.New(), job.Changes{Title: &title})
	assert.True(t, errors.Is(err, ErrInternal), "want ErrInternal mark, got %v", err)
}

func TestDeleteJob(t *testing.T) {
	ctx := context.Background()
	cache := newMemCache()
	repo := &fakeJobRepo{affected: 1}
	svc := NewService(repo, &fakeAppRepo{}, cache, zerolog.Nop())

	assert.ErrorIs(t, svc.DeleteJob(ctx, seeker, uuid.New()), ErrForbidden)
	require.NoError(t, svc.DeleteJob(ctx, recruiter, uuid.New()))
	assert.Equal(t, []string{"jobs:*"}, cache.deleted)

	repo.affected = 0
	assert.ErrorIs(t, svc.DeleteJob(ctx, recruiter, uuid.New()), ErrNotFound)
	assert.Len(t, cache.deleted, 1)
}

func TestCacheKeys_NormalizeEquivalentFilters(t *testing.T) {
	a := searchCacheKey(job.SearchFilter{Title: "Go Developer"})
	b := searchCacheKey(job.SearchFilter{Title: " go developer "})
	c := searchCacheKey(job.SearchFilter{Location: "go developer"})
	d := searchCacheKey(job.SearchFilter{Title: "Go  Developer"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
	assert.NotEqual(t, filterCacheKey(job.Filter{Skill: "go  sql"}), filterCacheKey(job.Filter{Skill: "go sql"}))
	assert.True(t, strings.HasPrefix(a, "jobs:search:"))
	assert.Equal(t, "jobs:list:2:5", listCacheKey(2, 5))

	lo := int64(1)
	assert.NotEqual(t, filterCacheKey(job.Filter{Limit: 10}), filterCacheKey(job.Filter{Limit: 10, MinSalary: &lo}))
}
