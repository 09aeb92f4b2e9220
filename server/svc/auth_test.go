package svc_test

import (
	"testing"

	"github.com/dekarrin/llparse/server/serr"
	"github.com/dekarrin/llparse/server/svc"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func Test_Login_DefaultSecret_Accepted(t *testing.T) {
	svcInst := svc.Service{}

	err := svcInst.Login("password")
	assert.NoError(t, err)
}

func Test_Login_DefaultSecret_WrongPassword_Rejected(t *testing.T) {
	svcInst := svc.Service{}

	err := svcInst.Login("not the password")
	assert.ErrorIs(t, err, serr.ErrBadCredentials)
}

func Test_Login_ConfiguredSecret_Accepted(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	svcInst := svc.Service{OperatorSecretHash: hash}

	assert.NoError(t, svcInst.Login("correct-horse"))
	assert.ErrorIs(t, svcInst.Login("wrong"), serr.ErrBadCredentials)
}
