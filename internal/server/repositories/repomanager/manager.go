package repomanager

import (
	"context"
	"database/sql"

	"ecoscan/internal/dbx"
	"ecoscan/internal/server/repositories/trees"
	"ecoscan/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a DBTX, so services can
// use the same repository code against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Trees(db dbx.DBTX) trees.Repository
}
