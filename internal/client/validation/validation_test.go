package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustlayerlabs/academy/internal/client/models"
	"github.com/trustlayerlabs/academy/internal/common"
)

func TestStruct_Registration(t *testing.T) {
	tests := []struct {
		name   string
		in     models.Registration
		fields []string
	}{
		{
			name: "valid",
			in:   models.Registration{Email: "a@b.com", Password: "secret1", ConfirmPassword: "secret1"},
		},
		{
			name:   "missing everything",
			in:     models.Registration{},
			fields: []string{"email", "password", "confirmPassword"},
		},
		{
			name:   "short password and mismatch",
			in:     models.Registration{Email: "a@b.com", Password: "abc", ConfirmPassword: "abd"},
			fields: []string{"password", "confirmPassword"},
		},
		{
			name:   "bad email",
			in:     models.Registration{Email: "not-an-email", Password: "secret1", ConfirmPassword: "secret1"},
			fields: []string{"email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			if len(tt.fields) == 0 {
				require.NoError(t, err)
				return
			}

			var verr *Error
			require.True(t, errors.As(err, &verr), "want *Error, got %T", err)
			require.ErrorIs(t, err, common.ErrValidation)
			for _, f := range tt.fields {
				assert.Contains(t, verr.Fields, f)
			}
			assert.Len(t, verr.Fields, len(tt.fields))
		})
	}
}

func TestStruct_Messages(t *testing.T) {
	err := Struct(models.Registration{Email: "a@b.com", Password: "secret1", ConfirmPassword: "other1"})

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "passwords do not match", verr.Fields["confirmPassword"])
	assert.Equal(t, "confirmPassword: passwords do not match", err.Error())

	err = Struct(models.ServiceRequest{Service: "Cloud Hardening", RequesterEmail: "a@b.com"})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "this field is required", verr.Fields["description"])
}

func TestStruct_NewCourse(t *testing.T) {
	ok := models.NewCourse{Title: "Web Security", Price: 499, DriveLink: "https://drive.example.com/x", ExpiryDays: 30}
	require.NoError(t, Struct(ok))

	bad := ok
	bad.Price = 0
	bad.DriveLink = "drive"
	err := Struct(bad)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "price")
	assert.Equal(t, "must be a valid URL", verr.Fields["driveLink"])
}
