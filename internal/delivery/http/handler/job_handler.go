package handler

import (
	"job-board/internal/delivery/http/dto"
	"job-board/internal/delivery/http/middleware"
	"job-board/internal/domain/job"
	"job-board/internal/pkg/response"
	"job-board/internal/usecase"
	ucjob "job-board/internal/usecase/job"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v3"
)

const (
	msgOnlyRecruitersPost   = "Only recruiters can post jobs"
	msgOnlyRecruitersUpdate = "Only recruiters can update jobs"
	msgOnlyRecruitersDelete = "Only recruiters can delete jobs"
	msgJobPosted            = "Job Successfully Posted"
	msgJobNotFound          = "Job Not Found"
	msgAlreadyApplied       = "You have already applied for this job"
	msgApplied              = "Successfully Applied"
	msgJobUpdated           = "Job updated successfully"
	msgJobDeleted           = "Job deleted successfully"
	msgNoSearchFields       = "Provide at least one search field"
	msgInvalidSalary        = "Salary must be a whole number"
)

type JobHandler struct {
	uc usecase.JobUsecase
}

type createJobRequest struct {
	Title        string    `json:"title"`
	CompanyName  string    `json:"companyName"`
	Location     string    `json:"location"`
	Salary       textValue `json:"salary"`
	JobType      string    `json:"jobType"`
	Description  string    `json:"description"`
	AboutCompany string    `json:"aboutCompany"`
	Skill        string    `json:"skill"`
}

type updateJobRequest struct {
	Title        *string    `json:"title"`
	CompanyName  *string    `json:"companyName"`
	Location     *string    `json:"location"`
	Salary       *textValue `json:"salary"`
	JobType      *string    `json:"jobType"`
	Description  *string    `json:"description"`
	AboutCompany *string    `json:"aboutCompany"`
	Skill        *string    `json:"skill"`
}

type searchJobsRequest struct {
	Title       textValue `json:"title"`
	JobType     textValue `json:"jobType"`
	CompanyName textValue `json:"companyName"`
	Location    textValue `json:"location"`
	Skill       textValue `json:"skill"`
}

type filterJobsRequest struct {
	JobType     textValue `json:"jobType"`
	CompanyName textValue `json:"companyName"`
	Location    textValue `json:"location"`
	Skill       textValue `json:"skill"`
	MinSalary   textValue `json:"minSalary"`
	MaxSalary   textValue `json:"maxSalary"`
	Recently    textValue `json:"recently"`
	Page        textValue `json:"page"`
	Limit       textValue `json:"limit"`
}

func NewJobHandler(uc usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

// RegisterRoutes mounts the catalog. Static paths go before /jobs/:id so
// "applied", "search" and "filter" are never read as ids.
func (h *JobHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/jobs", h.ListJobs)
	r.Get("/jobs/search", h.SearchJobs)
	r.Get("/jobs/filter", h.FilterJobs)
	r.Post("/jobs/post", auth, h.CreateJob)
	r.Get("/jobs/applied", auth, h.ListAppliedJobs)
	r.Get("/jobs/:id", auth, h.GetJobDetail)
	r.Post("/jobs/:id/apply", auth, h.ApplyToJob)
	r.Put("/jobs/:id", auth, h.UpdateJob)
	r.Delete("/jobs/:id", auth, h.DeleteJob)
}

// CreateJob treats an unreadable body as empty so the role check still
// decides between 403 and 400.
func (h *JobHandler) CreateJob(c fiber.Ctx) error {
	req, ok := requester(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, middleware.MessageInvalidToken, nil)
	}

	var body createJobRequest
	if err := c.Bind().Body(&body); err != nil {
		body = createJobRequest{}
	}
	salary, _, err := body.Salary.Int64()
	if err != nil && req.Role.IsRecruiter() {
		return middleware.NewAppError(fiber.StatusBadRequest, msgInvalidSalary, err)
	}

	_, err = h.uc.CreateJob(c.Context(), req, ucjob.CreateInput{
		Title:        body.Title,
		CompanyName:  body.CompanyName,
		Location:     body.Location,
		Salary:       salary,
		JobType:      body.JobType,
		Description:  body.Description,
		AboutCompany: body.AboutCompany,
		Skill:        body.Skill,
	})
	if err != nil {
		return mapJobUsecaseError(err, msgOnlyRecruitersPost)
	}

	return response.Message(c, fiber.StatusCreated, msgJobPosted)
}

func (h *JobHandler) ListJobs(c fiber.Ctx) error {
	page, err := h.uc.ListJobs(c.Context(), textValue(c.Query("page")).Int(), textValue(c.Query("limit")).Int())
	if err != nil {
		return mapJobUsecaseError(err, "")
	}

	return response.JSON(c, fiber.StatusOK, dto.ListJobsResponse{
		Page:  page.Page,
		Limit: page.Limit,
		Jobs:  dto.NewJobResponses(page.Jobs),
	})
}

func (h *JobHandler) SearchJobs(c fiber.Ctx) error {
	var req searchJobsRequest
	err := bindQueryThenBody(c, &req, func(c fiber.Ctx) {
		req.Title = textValue(c.Query("title"))
		req.JobType = textValue(c.Query("jobType"))
		req.CompanyName = textValue(c.Query("companyName"))
		req.Location = textValue(c.Query("location"))
		req.Skill = textValue(c.Query("skill"))
	})
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, msgInvalidRequestPayload, err)
	}

	jobs, err := h.uc.SearchJobs(c.Context(), job.SearchFilter{
		Title:       req.Title.String(),
		JobType:     req.JobType.String(),
		CompanyName: req.CompanyName.String(),
		Location:    req.Location.String(),
		Skill:       req.Skill.String(),
	})
	if err != nil {
		return mapJobUsecaseError(err, "")
	}

	return response.JSON(c, fiber.StatusOK, dto.JobsResponse{Jobs: dto.NewJobResponses(jobs)})
}

func (h *JobHandler) FilterJobs(c fiber.Ctx) error {
	var req filterJobsRequest
	err := bindQueryThenBody(c, &req, func(c fiber.Ctx) {
		req.JobType = textValue(c.Query("jobType"))
		req.CompanyName = textValue(c.Query("companyName"))
		req.Location = textValue(c.Query("location"))
		req.Skill = textValue(c.Query("skill"))
		req.MinSalary = textValue(c.Query("minSalary"))
		req.MaxSalary = textValue(c.Query("maxSalary"))
		req.Recently = textValue(c.Query("recently"))
		req.Page = textValue(c.Query("page"))
		req.Limit = textValue(c.Query("limit"))
	})
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, msgInvalidRequestPayload, err)
	}

	in := ucjob.FilterInput{
		JobType:     req.JobType.String(),
		CompanyName: req.CompanyName.String(),
		Location:    req.Location.String(),
		Skill:       req.Skill.String(),
		Recently:    req.Recently.String(),
		Page:        req.Page.Int(),
		Limit:       req.Limit.Int(),
	}
	if in.MinSalary, err = salaryBound(req.MinSalary); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, msgInvalidSalary, err)
	}
	if in.MaxSalary, err = salaryBound(req.MaxSalary); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, msgInvalidSalary, err)
	}

	jobs, err := h.uc.FilterJobs(c.Context(), in)
	if err != nil {
		return mapJobUsecaseError(err, "")
	}

	return response.JSON(c, fiber.StatusOK, dto.JobsResponse{Jobs: dto.NewJobResponses(jobs)})
}

func (h *JobHandler) GetJobDetail(c fiber.Ctx) error {
	req, ok := requester(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, middleware.MessageInvalidToken, nil)
	}

	d, err := h.uc.GetJobDetail(c.Context(), req.ID, parseJobID(c))
	if err != nil {
		return mapJobUsecaseError(err, "")
	}

	return response.JSON(c, fiber.StatusOK, dto.NewJobDetailResponse(d))
}

func (h *JobHandler) ApplyToJob(c fiber.Ctx) error {
	req, ok := requester(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, middleware.MessageInvalidToken, nil)
	}

	if err := h.uc.ApplyToJob(c.Context(), req.ID, parseJobID(c)); err != nil {
		return mapJobUsecaseError(err, "")
	}

	return response.Message(c, fiber.StatusOK, msgApplied)
}

func (h *JobHandler) ListAppliedJobs(c fiber.Ctx) error {
	req, ok := requester(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, middleware.MessageInvalidToken, nil)
	}

	jobs, err := h.uc.ListAppliedJobs(c.Context(), req.ID)
	if err != nil {
		return mapJobUsecaseError(err, "")
	}

	return response.JSON(c, fiber.StatusOK, dto.AppliedJobsResponse{AppliedJobs: dto.NewJobResponses(jobs)})
}

func (h *JobHandler) UpdateJob(c fiber.Ctx) error {
	req, ok := requester(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, middleware.MessageInvalidToken, nil)
	}

	var body updateJobRequest
	if err := c.Bind().Body(&body); err != nil {
		body = updateJobRequest{}
	}

	changes := job.Changes{
		Title:        nonBlank(body.Title),
		CompanyName:  nonBlank(body.CompanyName),
		Location:     nonBlank(body.Location),
		JobType:      nonBlank(body.JobType),
		Description:  nonBlank(body.Description),
		AboutCompany: nonBlank(body.AboutCompany),
		Skill:        nonBlank(body.Skill),
	}
	if body.Salary != nil {
		salary, set, err := body.Salary.Int64()
		if err != nil && req.Role.IsRecruiter() {
			return middleware.NewAppError(fiber.StatusBadRequest, msgInvalidSalary, err)
		}
		if set {
			changes.Salary = &salary
		}
	}

	if err := h.uc.UpdateJob(c.Context(), req, parseJobID(c), changes); err != nil {
		return mapJobUsecaseError(err, msgOnlyRecruitersUpdate)
	}

	return response.Message(c, fiber.StatusOK, msgJobUpdated)
}

func (h *JobHandler) DeleteJob(c fiber.Ctx) error {
	req, ok := requester(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, middleware.MessageInvalidToken, nil)
	}

	if err := h.uc.DeleteJob(c.Context(), req, parseJobID(c)); err != nil {
		return mapJobUsecaseError(err, msgOnlyRecruitersDelete)
	}

	return response.Message(c, fiber.StatusOK, msgJobDeleted)
}

func requester(c fiber.Ctx) (ucjob.Requester, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		return ucjob.Requester{}, false
	}
	return ucjob.Requester{ID: id, Role: middleware.Role(c)}, true
}

func salaryBound(v textValue) (*int64, error) {
	n, ok, err := v.Int64()
	if err != nil || !ok {
		return nil, err
	}
	return &n, nil
}

func nonBlank(p *string) *string {
	if p == nil {
		return nil
	}
	s := textValue(*p).String()
	if s == "" {
		return nil
	}
	return &s
}

// mapJobUsecaseError uses forbidden as the 403 message, which differs per
// operation.
func mapJobUsecaseError(err error, forbidden string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucjob.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, forbidden, err)
	case errors.Is(err, ucjob.ErrMissingFields):
		return middleware.NewAppError(fiber.StatusBadRequest, msgAllFieldsRequired, err)
	case errors.Is(err, ucjob.ErrNoChanges):
		return middleware.NewAppError(fiber.StatusBadRequest, msgProvideUpdates, err)
	case errors.Is(err, ucjob.ErrInvalidSalary):
		return middleware.NewAppError(fiber.StatusBadRequest, msgInvalidSalary, err)
	case errors.Is(err, ucjob.ErrNoSearchFields):
		return middleware.NewAppError(fiber.StatusBadRequest, msgNoSearchFields, err)
	case errors.Is(err, ucjob.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, msgJobNotFound, err)
	case errors.Is(err, ucjob.ErrAlreadyApplied):
		return middleware.NewAppError(fiber.StatusBadRequest, msgAlreadyApplied, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
