// Package svc has services for interacting with the llparse server backend
// decoupled from the API that accesses it, so the same grammar-analysis
// logic can be driven by HTTP, the CLI, or a test without duplicating it.
package svc

import (
	"github.com/dekarrin/llparse/server/dao"
)

// Service performs the grammar-analysis actions the server offers and makes
// calls to persistence to preserve backend state.
//
// The zero value of Service is not ready to use; assign a valid DAO store to
// DB before attempting to use it.
type Service struct {
	// DB is the persistence store of the service.
	DB dao.Store

	// OperatorSecretHash is the bcrypt hash checked by Login.
	OperatorSecretHash []byte
}
