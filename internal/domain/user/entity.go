package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleRecruiter Role = "recruiter"
	RoleSeeker    Role = "seeker"
)

func (r Role) IsRecruiter() bool {
	return r == RoleRecruiter
}

func (r Role) Valid() bool {
	return r == RoleRecruiter || r == RoleSeeker
}

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Profile is the public projection of a User.
type Profile struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  Role
}

func (u User) Profile() Profile {
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// Changes holds a partial profile update; nil fields are left untouched.
type Changes struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

func (c Changes) Empty() bool {
	return c.Name == nil && c.Email == nil && c.PasswordHash == nil
}
