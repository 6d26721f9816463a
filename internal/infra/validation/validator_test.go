package validation

import (
	"testing"

	authErrors "github.com/Miraines/MoonyAndStarry/finance-service/internal/domain/auth/errors"
	"github.com/stretchr/testify/require"
)

func TestStrongPassword(t *testing.T) {
	cases := map[string]bool{
		"Str0ng!Pass": true,
		"Aa1!aaaa":    true,
		"short1!A":    true,
		"Aa1!aaa":     false, // 7 chars
		"aaaaaaa1!":   false, // no upper
		"AAAAAAA1!":   false, // no lower
		"Aaaaaaaa!":   false, // no digit
		"Aaaaaaaa1":   false, // no symbol
		"":            false,
	}
	for pwd, want := range cases {
		require.Equal(t, want, StrongPassword(pwd), pwd)
	}
}

type sample struct {
	Name     string `json:"name" validate:"min=2,max=40"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strongpwd"`
}

func TestStruct_FieldErrors(t *testing.T) {
	v := New()

	err := Struct(v, sample{Name: "P", Email: "pablo", Password: "password"})
	require.Error(t, err)
	require.True(t, authErrors.IsInvalidArgument(err))

	fields := authErrors.Fields(err)
	require.Len(t, fields, 3)
	require.Equal(t, "name", fields[0].Param)
	require.Equal(t, "invalid email", fields[1].Msg)
	require.Equal(t, "weak password", fields[2].Msg)
	require.Equal(t, "body", fields[2].Location)
}

func TestStruct_OK(t *testing.T) {
	v := New()
	require.NoError(t, Struct(v, sample{Name: "Ana", Email: "ana@x.com", Password: "Str0ng!Pass"}))
}
