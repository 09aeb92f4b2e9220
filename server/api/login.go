package api

import (
	"errors"
	"net/http"

	"github.com/dekarrin/llparse/server/result"
	"github.com/dekarrin/llparse/server/serr"
	"github.com/dekarrin/llparse/server/token"
)

// LoginRequest is the body of a POST to /login.
type LoginRequest struct {
	Secret string `json:"secret"`
}

// LoginResponse carries the bearer token issued by a successful login.
type LoginResponse struct {
	Token string `json:"token"`
}

// HTTPCreateLogin returns a HandlerFunc that checks the operator secret and
// issues a bearer token for it.
func (api API) HTTPCreateLogin() http.HandlerFunc {
	return api.httpEndpoint(api.epCreateLogin)
}

func (api API) epCreateLogin(req *http.Request) result.Result {
	loginData := LoginRequest{}
	if err := parseJSON(req, &loginData); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	if loginData.Secret == "" {
		return result.BadRequest("secret: property is empty or missing from request", "empty secret")
	}

	if err := api.Backend.Login(loginData.Secret); err != nil {
		if errors.Is(err, serr.ErrBadCredentials) {
			return result.Unauthorized(serr.ErrBadCredentials.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	tok, err := token.Generate(api.Secret)
	if err != nil {
		return result.InternalServerError("could not generate JWT: " + err.Error())
	}

	return result.Created(LoginResponse{Token: tok}, "operator successfully logged in")
}
