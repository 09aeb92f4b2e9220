package svc

import (
	"errors"

	"github.com/dekarrin/llparse/server/serr"
	"golang.org/x/crypto/bcrypt"
)

// defaultOperatorSecretHash is the bcrypt hash of "password", used when no
// OperatorSecretHash is configured. Development only.
var defaultOperatorSecretHash, _ = bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)

// Login verifies secret against the configured operator secret. Returns
// serr.ErrBadCredentials if it doesn't match.
func (svc Service) Login(secret string) error {
	hash := svc.OperatorSecretHash
	if len(hash) == 0 {
		hash = defaultOperatorSecretHash
	}

	err := bcrypt.CompareHashAndPassword(hash, []byte(secret))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return serr.ErrBadCredentials
		}
		return err
	}
	return nil
}
