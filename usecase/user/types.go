// Package user implements the administrative user operations. Each
// operation takes an explicit Input struct so it can be driven either
// by interactive prompts or by command-line flags.
package user

import (
	"context"

	"github.com/wiji1/overleaf/domain"
	"github.com/wiji1/overleaf/domain/model"
	"github.com/wiji1/overleaf/internal/logging"
)

// Ports holds the remote and local boundaries user operations need.
type Ports struct {
	Mongo   domain.MongoRunner
	Scripts domain.ScriptRunner
	// Audit is optional; nil disables local operation history.
	Audit domain.AuditRepository
}

// UseCase wires ports for user operations.
type UseCase struct {
	Ports *Ports
}

// audit appends an operation record, best effort. Failures are logged
// and never fail the operation itself.
func (u *UseCase) audit(ctx context.Context, op, email string, success bool, detail string) {
	if u.Ports.Audit == nil {
		return
	}
	e := &model.AuditEntry{Operation: op, Email: email, Success: success, Detail: detail}
	if err := u.Ports.Audit.Append(ctx, e); err != nil {
		logging.FromContext(ctx).Warn(ctx, "audit append failed", "op", op, "error", err)
	}
}
