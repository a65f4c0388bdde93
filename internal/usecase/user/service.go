package user

import (
	"context"
	"strings"

	"job-board/internal/domain/user"
	"job-board/internal/pkg/password"
	ucauth "job-board/internal/usecase/auth"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

var (
	ErrNoChanges          = errors.New("no changes supplied")
	ErrWeakPassword       = errors.New("weak password")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInternal           = errors.New("internal error")
)

type PasswordHasher interface {
	HashPassword(pw string) (string, error)
}

// UpdateProfileInput treats nil and empty strings alike: not supplied.
type UpdateProfileInput struct {
	Name     *string
	Email    *string
	Password *string
}

type Service struct {
	users  user.Repository
	hasher PasswordHasher
}

func NewService(users user.Repository, hasher PasswordHasher) *Service {
	return &Service{users: users, hasher: hasher}
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.Profile{}, user.ErrNotFound
		}
		return user.Profile{}, errors.Mark(err, ErrInternal)
	}
	return usr.Profile(), nil
}

// UpdateProfile writes only the supplied fields. It succeeds without
// checking whether a row changed.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) error {
	var c user.Changes

	if v := supplied(in.Name); v != "" {
		name := strings.TrimSpace(v)
		c.Name = &name
	}
	if v := supplied(in.Email); v != "" {
		email := ucauth.NormalizeEmail(v)
		c.Email = &email
	}
	if in.Password != nil && *in.Password != "" {
		v := *in.Password
		if !password.Valid(v) {
			return ErrWeakPassword
		}
		hash, err := s.hasher.HashPassword(v)
		if err != nil {
			return errors.Mark(err, ErrInternal)
		}
		c.PasswordHash = &hash
	}
	if c.Empty() {
		return ErrNoChanges
	}

	if c.Email != nil {
		existing, err := s.users.GetByEmail(ctx, *c.Email)
		switch {
		case err == nil && existing.ID != userID:
			return ErrEmailAlreadyExists
		case err != nil && !errors.Is(err, user.ErrNotFound):
			return errors.Mark(err, ErrInternal)
		}
	}

	if err := s.users.Update(ctx, userID, c); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return ErrEmailAlreadyExists
		}
		return errors.Mark(err, ErrInternal)
	}
	return nil
}

func supplied(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}
