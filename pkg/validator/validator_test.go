package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email string `validate:"required,email"`
	Name  string `validate:"required,min=2"`
	Sex   string `validate:"required,oneof=male female"`
	Day   int    `validate:"gte=0,lte=6"`
}

func TestValidatePasses(t *testing.T) {
	cv := NewValidator()
	err := cv.Validate(&sampleRequest{
		Email: "ana@example.com",
		Name:  "Ana",
		Sex:   "female",
		Day:   3,
	})
	assert.NoError(t, err)
}

func TestFormatValidationErrors(t *testing.T) {
	cv := NewValidator()
	err := cv.Validate(&sampleRequest{
		Email: "not-an-email",
		Name:  "A",
		Sex:   "other",
		Day:   9,
	})
	require.Error(t, err)

	formatted := cv.FormatValidationErrors(err)
	assert.Equal(t, "Email must be a valid email address", formatted["Email"])
	assert.Equal(t, "Name must be at least 2 characters", formatted["Name"])
	assert.Equal(t, "Sex must be one of: male female", formatted["Sex"])
	assert.Equal(t, "Day must be less than or equal to 6", formatted["Day"])
}
