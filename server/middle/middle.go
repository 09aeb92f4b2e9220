// Package middle contains middleware for use with the llparse server.
package middle

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/dekarrin/llparse/server/result"
	"github.com/dekarrin/llparse/server/token"
)

type mwFunc http.HandlerFunc

func (sf mwFunc) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	sf(w, req)
}

// Middleware is a function that takes a handler and returns a new handler which
// wraps the given one and provides some additional functionality.
type Middleware func(next http.Handler) http.Handler

// AuthKey is a key in the context of a request populated by an AuthHandler.
type AuthKey int64

// AuthLoggedIn reports whether the request carried a valid operator bearer
// token; only meaningful when used with OptionalAuth, since RequireAuth
// rejects the request outright when it's false.
const AuthLoggedIn AuthKey = iota

// AuthHandler is middleware that accepts a request, extracts the bearer
// token, and validates it as belonging to the operator. There is no user
// table to look a principal up in: valid token means operator, anything
// else means not logged in.
type AuthHandler struct {
	secret        []byte
	required      bool
	unauthedDelay time.Duration
	next          http.Handler
}

func (ah *AuthHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var loggedIn bool

	tok, err := token.Get(req)
	if err == nil {
		err = token.Validate(tok, ah.secret)
		loggedIn = err == nil
	}

	if !loggedIn && ah.required {
		r := result.Unauthorized("", "auth required: %s", errString(err))
		time.Sleep(ah.unauthedDelay)
		r.WriteResponse(w)
		return
	}

	ctx := context.WithValue(req.Context(), AuthLoggedIn, loggedIn)
	req = req.WithContext(ctx)
	ah.next.ServeHTTP(w, req)
}

func errString(err error) string {
	if err == nil {
		return "no token presented"
	}
	return err.Error()
}

// RequireAuth returns middleware that rejects any request not bearing a
// valid operator token with an HTTP-401.
func RequireAuth(secret []byte, unauthDelay time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return &AuthHandler{secret: secret, unauthedDelay: unauthDelay, required: true, next: next}
	}
}

// OptionalAuth returns middleware that records whether the request bears a
// valid operator token (via AuthLoggedIn in the request context) without
// rejecting requests that don't.
func OptionalAuth(secret []byte, unauthDelay time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return &AuthHandler{secret: secret, unauthedDelay: unauthDelay, required: false, next: next}
	}
}

// DontPanic returns a Middleware that performs a panic check as it exits. If
// the function is panicking, it will write out an HTTP response with a generic
// message to the client and add it to the log.
func DontPanic() Middleware {
	return func(next http.Handler) http.Handler {
		return mwFunc(func(w http.ResponseWriter, r *http.Request) {
			defer panicTo500(w, r)
			next.ServeHTTP(w, r)
		})
	}
}

func panicTo500(w http.ResponseWriter, req *http.Request) (panicVal interface{}) {
	if panicErr := recover(); panicErr != nil {
		r := result.TextErr(
			http.StatusInternalServerError,
			"An internal server error occurred",
			fmt.Sprintf("panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack())),
		)
		r.WriteResponse(w)
		return true
	}
	return false
}
