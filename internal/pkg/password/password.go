// Package password holds the password policy and bcrypt hashing.
package password

import (
	"regexp"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/bcrypt"
)

var ErrMismatch = errors.New("password mismatch")

var (
	alnumOnly = regexp.MustCompile(`^[A-Za-z0-9]{6,}$`)
	hasLetter = regexp.MustCompile(`[A-Za-z]`)
	hasDigit  = regexp.MustCompile(`[0-9]`)
)

// Valid reports whether pw has at least 6 characters, only letters and
// digits, and at least one of each.
func Valid(pw string) bool {
	return alnumOnly.MatchString(pw) && hasLetter.MatchString(pw) && hasDigit.MatchString(pw)
}

type Hasher struct {
	cost int
}

// NewHasher uses bcrypt.DefaultCost when cost is out of range.
func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return Hasher{cost: cost}
}

func (h Hasher) Hash(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "bcrypt")
	}
	return string(b), nil
}

func (h Hasher) Compare(hash, pw string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return errors.Wrap(err, "bcrypt")
	}
	return nil
}
