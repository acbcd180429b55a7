package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/summerplanapp/summerplan-server/internal/errors"
)

type childPayload struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Age   int    `json:"age" validate:"gte=0,lte=99"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

type itemPayload struct {
	StartDate string `json:"start_date" validate:"required,isodate"`
	EndDate   string `json:"end_date" validate:"required,isodate,gtedate=StartDate"`
	Status    string `json:"status" validate:"required,itemstatus"`
	BlockType string `json:"block_type" validate:"omitempty,blocktype"`
	Price     int    `json:"price" validate:"gte=0"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(childPayload{Name: "Maya", Age: 8, Color: "#7c3aed"}))
	assert.NoError(t, v.Validate(itemPayload{
		StartDate: "2026-06-08", EndDate: "2026-06-12", Status: "planned", Price: 400,
	}))
}

func TestValidate_FieldErrors(t *testing.T) {
	v := New()
	err := v.Validate(childPayload{Name: "", Age: 120})
	require.Error(t, err)

	var derr *domainerrors.Error
	require.True(t, domainerrors.As(err, &derr))
	assert.Equal(t, domainerrors.CodeValidation, derr.Code)

	fields, ok := derr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "age")
}

func TestValidate_CustomTags(t *testing.T) {
	v := New()

	err := v.Validate(itemPayload{
		StartDate: "06/08/2026", EndDate: "2026-06-12", Status: "maybe", BlockType: "staycation",
	})
	require.Error(t, err)

	var derr *domainerrors.Error
	require.True(t, domainerrors.As(err, &derr))
	fields := derr.Details.(map[string]string)
	assert.Contains(t, fields, "start_date")
	assert.Contains(t, fields, "status")
	assert.Contains(t, fields, "block_type")
}

func TestValidate_EndBeforeStartRejected(t *testing.T) {
	v := New()
	err := v.Validate(itemPayload{
		StartDate: "2026-06-12", EndDate: "2026-06-08", Status: "planned",
	})
	require.Error(t, err)

	var derr *domainerrors.Error
	require.True(t, domainerrors.As(err, &derr))
	assert.Equal(t, domainerrors.CodeValidation, derr.Code)

	fields, ok := derr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, fields, "end_date")

	// A single-day range is fine.
	assert.NoError(t, v.Validate(itemPayload{
		StartDate: "2026-06-08", EndDate: "2026-06-08", Status: "planned",
	}))
}

func TestValidate_IdempotentAfterSanitize(t *testing.T) {
	v := New()
	p := childPayload{Name: Sanitize("<b>Maya</b>"), Age: 8}
	require.NoError(t, v.Validate(p))

	// Re-sanitizing a validated value changes nothing.
	assert.Equal(t, p.Name, Sanitize(p.Name))
	assert.NoError(t, v.Validate(p))
}
