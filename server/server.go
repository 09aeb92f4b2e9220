// Package server assembles the llparse HTTP server: a chi router mounting
// the grammar-analysis API atop a persistence store.
package server

import (
	"fmt"
	"net/http"

	"github.com/dekarrin/llparse/server/api"
	"github.com/dekarrin/llparse/server/dao"
	"github.com/dekarrin/llparse/server/middle"
	"github.com/dekarrin/llparse/server/svc"
	"github.com/go-chi/chi/v5"
	chimiddle "github.com/go-chi/chi/v5/middleware"
)

// Server is a running llparse server: a DB connection plus the router built
// atop it.
type Server struct {
	db     dao.Store
	router chi.Router
}

// New builds a Server from cfg, connecting to its configured DB. Callers
// should call cfg.FillDefaults() first if they want defaults applied.
func New(cfg Config) (Server, error) {
	if err := cfg.Validate(); err != nil {
		return Server{}, fmt.Errorf("invalid config: %w", err)
	}

	db, err := cfg.DB.Connect()
	if err != nil {
		return Server{}, fmt.Errorf("connect to db: %w", err)
	}

	a := api.API{
		Backend: svc.Service{
			DB:                 db,
			OperatorSecretHash: cfg.OperatorSecretHash,
		},
		UnauthDelay: cfg.UnauthDelay(),
		Secret:      cfg.TokenSecret,
	}

	r := chi.NewRouter()
	r.Use(chimiddle.Logger)
	r.Use(middle.DontPanic())

	r.Route(api.PathPrefix, func(r chi.Router) {
		r.Post("/login", a.HTTPCreateLogin())

		r.Post("/grammars", a.HTTPUploadGrammar())
		r.Get("/grammars/{id}/table", a.HTTPGetTable())
		r.Post("/grammars/{id}/parse", a.HTTPParse())

		r.Group(func(r chi.Router) {
			r.Use(middle.RequireAuth(cfg.TokenSecret, cfg.UnauthDelay()))

			r.Delete("/grammars/{id}", a.HTTPDeleteGrammar())
			r.Post("/grammars/{id}/advisory/left-recursion", a.HTTPAdviseLeftRecursion())
			r.Post("/grammars/{id}/advisory/left-factor", a.HTTPAdviseLeftFactor())
		})
	})

	return Server{db: db, router: r}, nil
}

// Close releases the Server's DB connection.
func (s Server) Close() error {
	return s.db.Close()
}

// ServeForever listens on addr and blocks forever, serving requests, until
// an unrecoverable error occurs.
func (s Server) ServeForever(addr string) error {
	return http.ListenAndServe(addr, s.router)
}
