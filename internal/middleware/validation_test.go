package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "chngfilter/internal/errors"
)

type sampleRequest struct {
	Mode        string `json:"mode" validate:"required,oneof=split highlight"`
	PreviewRows *int   `json:"preview_rows,omitempty" validate:"omitempty,gte=0,lte=1000"`
}

func intPtr(v int) *int { return &v }

func TestValidator_ValidateStruct(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name       string
		req        sampleRequest
		wantFields []string
	}{
		{name: "valid", req: sampleRequest{Mode: "split"}},
		{name: "valid with preview", req: sampleRequest{Mode: "highlight", PreviewRows: intPtr(1000)}},
		{name: "missing mode", req: sampleRequest{}, wantFields: []string{"mode"}},
		{name: "bad mode and preview", req: sampleRequest{Mode: "union", PreviewRows: intPtr(-1)}, wantFields: []string{"mode", "preview_rows"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tt.req)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var apiErr *apierrors.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, apierrors.CodeValidationFailed, apiErr.ErrorCode)

			details, ok := apiErr.Details.([]apierrors.ValidationError)
			require.True(t, ok)
			fields := make([]string, 0, len(details))
			for _, d := range details {
				fields = append(fields, d.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestValidator_ValidateVar(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateVar("slot", "first", "oneof=first second"))

	err := v.ValidateVar("slot", "third", "oneof=first second")
	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	details := apiErr.Details.([]apierrors.ValidationError)
	assert.Equal(t, "slot must be one of: first, second", details[0].Message)
}

func TestFormatFieldMessage(t *testing.T) {
	assert.Equal(t, "x is required", formatFieldMessage("x", "required", ""))
	assert.Equal(t, "x must be less than or equal to 5", formatFieldMessage("x", "lte", "5"))
	assert.Equal(t, "x failed uuid validation", formatFieldMessage("x", "uuid", ""))
}
