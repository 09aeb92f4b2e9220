package token_test

import (
	"testing"
	"time"

	"github.com/dekarrin/llparse/server/token"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("a-secret-at-least-32-bytes-long!")

func Test_Generate_Validate_RoundTrip(t *testing.T) {
	tok, err := token.Generate(testSecret)
	require.NoError(t, err)

	err = token.Validate(tok, testSecret)
	assert.NoError(t, err)
}

func Test_Validate_WrongSecret_Fails(t *testing.T) {
	tok, err := token.Generate(testSecret)
	require.NoError(t, err)

	err = token.Validate(tok, []byte("a-different-secret-at-least-32b"))
	assert.Error(t, err)
}

func Test_Validate_ExpiredToken_Fails(t *testing.T) {
	claims := &jwt.MapClaims{
		"iss": "llparse",
		"sub": token.Subject,
		"exp": time.Now().Add(-time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	tokStr, err := tok.SignedString(testSecret)
	require.NoError(t, err)

	err = token.Validate(tokStr, testSecret)
	assert.Error(t, err)
}
