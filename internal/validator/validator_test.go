package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name       string         `json:"name" validate:"required,max=10"`
	Role       string         `json:"role" validate:"omitempty,is-user-role"`
	Status     string         `json:"status" validate:"omitempty,is-application-status"`
	Categories map[string]int `json:"categories" validate:"category-scores"`
	Page       int            `form:"page" validate:"min=0"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{
		Name:       "Acme",
		Role:       "company",
		Status:     "interview",
		Categories: map[string]int{"delivery": 5, "expertise": 0},
	})
	assert.NoError(t, err)
}

func TestValidate_FieldErrorsUseTagNames(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{
		Role:       "admin",
		Status:     "hired",
		Categories: map[string]int{"delivery": 7},
		Page:       -1,
	})
	require.Error(t, err)

	fields, ok := err.(FieldErrors)
	require.True(t, ok)
	assert.Equal(t, "This field is required", fields["name"])
	assert.Equal(t, "Must be one of: trainer, company", fields["role"])
	assert.Equal(t, "Must be one of: pending, interview, rejected, completed", fields["status"])
	assert.Equal(t, "Each category score must be between 0 and 5", fields["categories"])
	assert.Equal(t, "Must be at least 0", fields["page"])
	assert.Contains(t, err.Error(), "Validation failed: categories:")
}
