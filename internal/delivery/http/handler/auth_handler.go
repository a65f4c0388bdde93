package handler

import (
	"job-board/internal/delivery/http/dto"
	"job-board/internal/delivery/http/middleware"
	"job-board/internal/domain/user"
	"job-board/internal/pkg/response"
	"job-board/internal/usecase"
	ucauth "job-board/internal/usecase/auth"
	"job-board/internal/validation"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v3"
)

const (
	msgAllFieldsRequired     = "All fields are required"
	msgInvalidRole           = "Invalid role. Use recruiter or seeker"
	msgUserExists            = "User Already Exists"
	msgWeakPasswordRegister  = "Weak password! Use at least 6 characters with a number."
	msgUserCreated           = "User Created Successfully"
	msgInvalidUser           = "Invalid User"
	msgInvalidPassword       = "Invalid Password"
	msgLoginSuccessful       = "Login Successful"
	msgInvalidRequestPayload = "Invalid request payload"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=recruiter seeker"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		if validation.HasTag(err, "oneof") && !validation.HasTag(err, "required") {
			return middleware.NewAppError(fiber.StatusBadRequest, msgInvalidRole, err)
		}
		return middleware.NewAppError(fiber.StatusBadRequest, msgAllFieldsRequired, err)
	}

	_, err := h.uc.Register(c.Context(), ucauth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     user.Role(req.Role),
	})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.Message(c, fiber.StatusOK, msgUserCreated)
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, msgInvalidRequestPayload, err)
	}

	token, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.JSON(c, fiber.StatusOK, dto.LoginResponse{Message: msgLoginSuccessful, Token: token})
}

func mapAuthUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucauth.ErrMissingFields):
		return middleware.NewAppError(fiber.StatusBadRequest, msgAllFieldsRequired, err)
	case errors.Is(err, ucauth.ErrInvalidRole):
		return middleware.NewAppError(fiber.StatusBadRequest, msgInvalidRole, err)
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusBadRequest, msgUserExists, err)
	case errors.Is(err, ucauth.ErrWeakPassword):
		return middleware.NewAppError(fiber.StatusBadRequest, msgWeakPasswordRegister, err)
	case errors.Is(err, ucauth.ErrUnknownUser):
		return middleware.NewAppError(fiber.StatusBadRequest, msgInvalidUser, err)
	case errors.Is(err, ucauth.ErrInvalidPassword):
		return middleware.NewAppError(fiber.StatusBadRequest, msgInvalidPassword, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
