package jwt_test

import (
	"testing"

	"github.com/jhoicas/repuestos-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	token, exp, err := jwt.Generate("secret", jwt.Claims{
		UserID:      "u1",
		Username:    "admin",
		Role:        "user",
		Permissions: []string{"quotes", "reports"},
	}, "repuestos-api", 5)
	require.NoError(t, err)
	assert.False(t, exp.IsZero())

	claims, err := jwt.Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, []string{"quotes", "reports"}, claims.Permissions)

	_, err = jwt.Parse("otro", token)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, _, err := jwt.Generate("", jwt.Claims{UserID: "u1"}, "x", 5)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, _, err := jwt.Generate("secret", jwt.Claims{UserID: "u1"}, "x", -1)
	require.NoError(t, err)
	_, err = jwt.Parse("secret", token)
	assert.Error(t, err)
}
