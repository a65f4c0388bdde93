package handler

import (
	"job-board/internal/delivery/http/dto"
	"job-board/internal/delivery/http/middleware"
	"job-board/internal/domain/user"
	"job-board/internal/pkg/response"
	"job-board/internal/usecase"
	useruc "job-board/internal/usecase/user"
	"job-board/internal/validation"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v3"
)

const (
	msgUserNotFound        = "User Not Found"
	msgProvideUpdates      = "Provide Updates"
	msgWeakPasswordProfile = "Use Atleast 6 Characters with number"
	msgProfileUpdated      = "Profile updated successfully"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

type updateProfileRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password" validate:"omitempty,password"`
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/profile", auth, h.GetProfile)
	r.Put("/profile", auth, h.UpdateProfile)
}

// GetProfile renders the profile as a one-element array.
func (h *UserHandler) GetProfile(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, middleware.MessageInvalidToken, nil)
	}

	prof, err := h.uc.GetProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusBadRequest, msgUserNotFound, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	return response.JSON(c, fiber.StatusOK, []dto.ProfileResponse{dto.NewProfileResponse(prof)})
}

func (h *UserHandler) UpdateProfile(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, middleware.MessageInvalidToken, nil)
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		if validation.HasTag(err, "password") {
			return middleware.NewAppError(fiber.StatusBadRequest, msgWeakPasswordProfile, err)
		}
		return middleware.NewAppError(fiber.StatusBadRequest, msgInvalidRequestPayload, err)
	}

	err := h.uc.UpdateProfile(c.Context(), userID, useruc.UpdateProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, useruc.ErrNoChanges):
			return middleware.NewAppError(fiber.StatusBadRequest, msgProvideUpdates, err)
		case errors.Is(err, useruc.ErrWeakPassword):
			return middleware.NewAppError(fiber.StatusBadRequest, msgWeakPasswordProfile, err)
		case errors.Is(err, useruc.ErrEmailAlreadyExists):
			return middleware.NewAppError(fiber.StatusBadRequest, msgUserExists, err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
		}
	}

	return response.Message(c, fiber.StatusOK, msgProfileUpdated)
}
