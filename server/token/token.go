// Package token issues and validates the JWTs the llparse server's admin
// endpoints require, mirroring the shape of the TunaQuest server's
// user-keyed tokens but narrowed to a single operator identity rather than a
// user table: there is nothing to look up, so the token's signing key is
// just the server's secret.
package token

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Subject is the fixed claims subject every issued token carries; there is
// only one principal in this server, the operator.
const Subject = "operator"

const issuer = "llparse"

// Generate issues a new signed JWT for the operator, valid for one hour.
func Generate(secret []byte) (string, error) {
	claims := &jwt.MapClaims{
		"iss": issuer,
		"sub": Subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)

	tokStr, err := tok.SignedString(secret)
	if err != nil {
		return "", err
	}
	return tokStr, nil
}

// Validate checks tok's signature, issuer, and expiry against secret. A nil
// error means the bearer is the operator.
func Validate(tok string, secret []byte) error {
	_, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer(issuer), jwt.WithSubject(Subject), jwt.WithLeeway(time.Minute))

	return err
}

// Get extracts the bearer token from req's Authorization header.
func Get(req *http.Request) (string, error) {
	authHeader := strings.TrimSpace(req.Header.Get("Authorization"))

	if authHeader == "" {
		return "", fmt.Errorf("no authorization header present")
	}

	authParts := strings.SplitN(authHeader, " ", 2)
	if len(authParts) != 2 {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	scheme := strings.TrimSpace(strings.ToLower(authParts[0]))
	tok := strings.TrimSpace(authParts[1])

	if scheme != "bearer" {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	return tok, nil
}
