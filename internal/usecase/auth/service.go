package auth

import (
	"context"
	"strings"

	"job-board/internal/domain/user"
	"job-board/internal/pkg/password"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

var (
	ErrMissingFields          = errors.New("missing required fields")
	ErrInvalidRole            = errors.New("invalid role")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrWeakPassword           = errors.New("weak password")
	ErrUnknownUser            = errors.New("unknown user")
	ErrInvalidPassword        = errors.New("invalid password")
	ErrInternal               = errors.New("internal error")
)

// Credentials hashes passwords and issues bearer tokens.
type Credentials interface {
	HashPassword(pw string) (string, error)
	ComparePassword(hash, pw string) error
	IssueToken(userID uuid.UUID, role user.Role) (string, error)
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     user.Role
}

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	users user.Repository
	creds Credentials
}

func NewService(users user.Repository, creds Credentials) *Service {
	return &Service{users: users, creds: creds}
}

// Register checks required fields and the role, then email uniqueness, then
// the password policy, in that order. No token is issued.
func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	name := strings.TrimSpace(in.Name)
	email := NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" || in.Role == "" {
		return user.User{}, ErrMissingFields
	}
	if !in.Role.Valid() {
		return user.User{}, ErrInvalidRole
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, errors.Mark(err, ErrInternal)
	}
	if exists {
		return user.User{}, ErrEmailAlreadyRegistered
	}

	if !password.Valid(in.Password) {
		return user.User{}, ErrWeakPassword
	}

	hash, err := s.creds.HashPassword(in.Password)
	if err != nil {
		return user.User{}, errors.Mark(err, ErrInternal)
	}

	u := user.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         in.Role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, errors.Mark(err, ErrInternal)
	}

	return sanitizeUser(u), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (string, error) {
	email := NormalizeEmail(in.Email)
	if email == "" {
		return "", ErrUnknownUser
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrUnknownUser
		}
		return "", errors.Mark(err, ErrInternal)
	}

	if err := s.creds.ComparePassword(u.PasswordHash, in.Password); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return "", ErrInvalidPassword
		}
		return "", errors.Mark(err, ErrInternal)
	}

	token, err := s.creds.IssueToken(u.ID, u.Role)
	if err != nil {
		return "", errors.Mark(err, ErrInternal)
	}
	return token, nil
}

func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return strings.ToLower(email)
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
