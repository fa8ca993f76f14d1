// Package repomanager provides a factory for repositories bound to a shared
// DB handle, so services can obtain repositories over either *sql.DB or a
// transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/AvinashKhichar/mynotes/internal/dbx"
	"github.com/AvinashKhichar/mynotes/internal/server/repositories/notes"
	"github.com/AvinashKhichar/mynotes/internal/server/repositories/refreshtokens"
	"github.com/AvinashKhichar/mynotes/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a DBTX and applies
// schema migrations at startup.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Notes(db dbx.DBTX) notes.Repository
}
