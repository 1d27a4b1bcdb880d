package domain

import (
	"context"

	"github.com/wiji1/overleaf/domain/model"
)

// MongoRunner evaluates mongo shell expressions inside the database
// deployment. Each call spawns an independent remote process; there is
// no session reuse and no retry.
type MongoRunner interface {
	// Eval runs a single shell expression and returns its captured output.
	Eval(ctx context.Context, expr string) (*model.CommandResult, error)
	// Degraded reports whether the remote pod only offers the legacy
	// mongo shell, which cannot emit parseable EJSON.
	Degraded() bool
}

// ScriptRunner invokes the Overleaf maintenance scripts inside the web
// deployment. The scripts themselves are owned by the remote image; this
// tool only invokes them.
type ScriptRunner interface {
	CreateUser(ctx context.Context, email string, admin bool) (*model.CommandResult, error)
	DeleteUser(ctx context.Context, email string, skipEmail bool) (*model.CommandResult, error)
}

// AuditRepository stores local operation history.
type AuditRepository interface {
	Append(ctx context.Context, e *model.AuditEntry) error
	List(ctx context.Context, limit int) ([]*model.AuditEntry, error)
}
