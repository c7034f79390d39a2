// Package repomanager wires the concrete repositories to a database handle
// and runs schema migrations at startup.
package repomanager

import (
	"github.com/freelancework02/welfare-admin/internal/dbx"
	"github.com/freelancework02/welfare-admin/internal/server/repositories/records"
	"github.com/freelancework02/welfare-admin/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to the given handle,
// which may be a *sql.DB or an open transaction.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Records(db dbx.DBTX) records.Repository
}
