// Package credential joins password hashing and token signing behind the
// single interface the auth usecase depends on.
package credential

import (
	"job-board/internal/domain/user"
	"job-board/internal/pkg/jwt"
	"job-board/internal/pkg/password"

	"github.com/google/uuid"
)

type Service struct {
	hasher password.Hasher
	tokens jwt.Service
}

func NewService(hasher password.Hasher, tokens jwt.Service) *Service {
	return &Service{hasher: hasher, tokens: tokens}
}

func (s *Service) HashPassword(pw string) (string, error) {
	return s.hasher.Hash(pw)
}

func (s *Service) ComparePassword(hash, pw string) error {
	return s.hasher.Compare(hash, pw)
}

func (s *Service) IssueToken(userID uuid.UUID, role user.Role) (string, error) {
	return s.tokens.GenerateToken(userID, role)
}

func (s *Service) VerifyToken(token string) (jwt.Claims, error) {
	return s.tokens.ValidateToken(token)
}
