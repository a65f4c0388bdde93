package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"job-board/internal/delivery/http/middleware"
	"job-board/internal/domain/job"
	"job-board/internal/domain/user"
	"job-board/internal/pkg/credential"
	"job-board/internal/pkg/jwt"
	"job-board/internal/pkg/password"
	ucauth "job-board/internal/usecase/auth"
	ucjob "job-board/internal/usecase/job"
	ucuser "job-board/internal/usecase/user"
	"job-board/internal/validation"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeAuth struct {
	registered []ucauth.RegisterInput
	err        error
	token      string
}

func (f *fakeAuth) Register(_ context.Context, in ucauth.RegisterInput) (user.User, error) {
	if f.err != nil {
		return user.User{}, f.err
	}
	f.registered = append(f.registered, in)
	return user.User{ID: uuid.New(), Name: in.Name, Email: in.Email, Role: in.Role}, nil
}

func (f *fakeAuth) Login(context.Context, ucauth.LoginInput) (string, error) {
	return f.token, f.err
}

type fakeUsers struct {
	profile user.Profile
	err     error
	updates []ucuser.UpdateProfileInput
}

func (f *fakeUsers) GetProfile(_ context.Context, id uuid.UUID) (user.Profile, error) {
	if f.err != nil {
		return user.Profile{}, f.err
	}
	p := f.profile
	p.ID = id
	return p, nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, _ uuid.UUID, in ucuser.UpdateProfileInput) error {
	if f.err != nil {
		return f.err
	}
	f.updates = append(f.updates, in)
	return nil
}

type fakeJobs struct {
	jobs []job.Job
	err  error

	calls       []string
	page, limit int
	search      job.SearchFilter
	filter      ucjob.FilterInput
	create      ucjob.CreateInput
	changes     job.Changes
	jobID       uuid.UUID
	requester   ucjob.Requester
}

func (f *fakeJobs) record(name string) { f.calls = append(f.calls, name) }

func (f *fakeJobs) CreateJob(_ context.Context, req ucjob.Requester, in ucjob.CreateInput) (job.Job, error) {
	f.record("create")
	f.requester, f.create = req, in
	if !req.Role.IsRecruiter() {
		return job.Job{}, ucjob.ErrForbidden
	}
	return job.Job{}, f.err
}

func (f *fakeJobs) ListJobs(_ context.Context, page, limit int) (ucjob.Page, error) {
	f.record("list")
	f.page, f.limit = page, limit
	return ucjob.Page{Page: 1, Limit: 5, Jobs: f.jobs}, f.err
}

func (f *fakeJobs) SearchJobs(_ context.Context, s job.SearchFilter) ([]job.Job, error) {
	f.record("search")
	f.search = s
	return f.jobs, f.err
}

func (f *fakeJobs) FilterJobs(_ context.Context, in ucjob.FilterInput) ([]job.Job, error) {
	f.record("filter")
	f.filter = in
	return f.jobs, f.err
}

func (f *fakeJobs) GetJobDetail(_ context.Context, _, jobID uuid.UUID) (job.Detail, error) {
	f.record("detail")
	f.jobID = jobID
	if f.err != nil {
		return job.Detail{}, f.err
	}
	return job.Detail{Job: job.Job{ID: jobID, Title: "Backend Engineer"}, ApplicationStatus: job.StatusApplied}, nil
}

func (f *fakeJobs) ApplyToJob(_ context.Context, _, jobID uuid.UUID) error {
	f.record("apply")
	f.jobID = jobID
	return f.err
}

func (f *fakeJobs) ListAppliedJobs(context.Context, uuid.UUID) ([]job.Job, error) {
	f.record("applied")
	return f.jobs, f.err
}

func (f *fakeJobs) UpdateJob(_ context.Context, req ucjob.Requester, jobID uuid.UUID, c job.Changes) error {
	f.record("update")
	f.requester, f.jobID, f.changes = req, jobID, c
	return f.err
}

func (f *fakeJobs) DeleteJob(_ context.Context, req ucjob.Requester, jobID uuid.UUID) error {
	f.record("delete")
	f.requester, f.jobID = req, jobID
	return f.err
}

type testServer struct {
	app   *fiber.App
	creds *credential.Service
	auth  *fakeAuth
	users *fakeUsers
	jobs  *fakeJobs
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	creds := credential.NewService(password.NewHasher(bcrypt.MinCost), jwt.NewHMACService("test-secret", time.Hour))
	s := &testServer{creds: creds, auth: &fakeAuth{}, users: &fakeUsers{}, jobs: &fakeJobs{}}

	app := fiber.New(fiber.Config{StructValidator: validation.New()})
	app.Use(middleware.NewErrorMiddleware(zerolog.Nop()).Middleware())

	requireAuth := middleware.NewAuthMiddleware(creds).Middleware()
	NewAuthHandler(s.auth).RegisterRoutes(app)
	NewUserHandler(s.users).RegisterRoutes(app, requireAuth)
	NewJobHandler(s.jobs).RegisterRoutes(app, requireAuth)

	s.app = app
	return s
}

func (s *testServer) token(t *testing.T, role user.Role) (uuid.UUID, string) {
	t.Helper()
	id := uuid.New()
	tok, err := s.creds.IssueToken(id, role)
	require.NoError(t, err)
	return id, tok
}

func (s *testServer) do(t *testing.T, method, target, token, body string) (int, map[string]any) {
	t.Helper()
	status, raw := s.doRaw(t, method, target, token, body)
	var out map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return status, out
}

func (s *testServer) doRaw(t *testing.T, method, target, token, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

var errBoom = errors.New("boom")
