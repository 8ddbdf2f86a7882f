package validate_test

import (
	"errors"
	"testing"

	"github.com/mysewa/sewa/pkg/validate"
	"github.com/stretchr/testify/require"
)

type pinRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=LANDLORD TENANT"`
	Note  string `json:"-" validate:"max=3"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, validate.Struct(pinRequest{Email: "a@b.co", Role: "TENANT"}))

	err := validate.Struct(pinRequest{Email: "nope", Role: "ADMIN", Note: "toolong"})
	var ve validate.Errors
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve, 3)

	require.Equal(t, "email", ve[0].Field)
	require.Equal(t, "email", ve[0].Tag)
	require.Equal(t, "role", ve[1].Field)
	require.Equal(t, "oneof", ve[1].Tag)
	require.Equal(t, "LANDLORD TENANT", ve[1].Param)
	require.Equal(t, "Note", ve[2].Field)

	require.Contains(t, err.Error(), "role failed on oneof=LANDLORD TENANT")
}

func TestStructNonStruct(t *testing.T) {
	err := validate.Struct(42)
	require.Error(t, err)
	var ve validate.Errors
	require.False(t, errors.As(err, &ve))
}

func TestVar(t *testing.T) {
	require.NoError(t, validate.Var("x@y.co", "required,email"))
	require.Error(t, validate.Var("", "required,email"))
}
