package validation

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

type profileInput struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"omitempty,password"`
}

func TestValidate(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(profileInput{Name: "Ann"}))
	assert.NoError(t, v.Validate(profileInput{Name: "Ann", Password: "abc123"}))

	err := v.Validate(profileInput{Name: "Ann", Password: "abcdef"})
	assert.True(t, HasTag(err, "password"))
	assert.Equal(t, []FieldError{{Field: "password", Tag: "password"}}, Fields(err))

	err = v.Validate(profileInput{})
	assert.True(t, HasTag(err, "required"))
	assert.False(t, HasTag(err, "password"))
}

func TestFields_NonValidationError(t *testing.T) {
	err := errors.New("boom")
	assert.Nil(t, Fields(err))
	assert.False(t, HasTag(err, "required"))
}
