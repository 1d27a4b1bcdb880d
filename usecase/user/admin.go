package user

import (
	"context"
	"fmt"

	"github.com/wiji1/overleaf/domain/model"
	"github.com/wiji1/overleaf/internal/ejson"
	"github.com/wiji1/overleaf/internal/mongoshell"
)

// AdminFlagInput reads the current admin flag of one user.
type AdminFlagInput struct {
	Email string `json:"email"`
}

// AdminFlagOutput carries the current flag value.
type AdminFlagOutput struct {
	Admin bool `json:"admin"`
}

// AdminFlag reads the current admin flag. Callers must have verified
// existence first; a miss still returns model.ErrUserNotFound.
func (u *UseCase) AdminFlag(ctx context.Context, in *AdminFlagInput) (*AdminFlagOutput, error) {
	if in == nil || in.Email == "" {
		return nil, fmt.Errorf("AdminFlagInput.Email is required")
	}
	res, err := u.Ports.Mongo.Eval(ctx, mongoshell.FindAdminFlag(in.Email))
	if err != nil {
		return nil, fmt.Errorf("read admin flag: %w", err)
	}
	if !res.Succeeded() {
		return nil, fmt.Errorf("read admin flag failed: %s", res.Tail(3))
	}
	usr, err := ejson.DecodeUser(res.Stdout)
	if err != nil {
		return nil, err
	}
	return &AdminFlagOutput{Admin: usr.IsAdmin}, nil
}

// SetAdminInput sets the admin flag to an explicit value.
type SetAdminInput struct {
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}

// SetAdminOutput reports how many documents the update touched.
type SetAdminOutput struct {
	Modified int64 `json:"modified"`
}

// SetAdmin issues exactly one update expression. It does not re-query
// the resulting state.
func (u *UseCase) SetAdmin(ctx context.Context, in *SetAdminInput) (*SetAdminOutput, error) {
	if in == nil || in.Email == "" {
		return nil, fmt.Errorf("SetAdminInput.Email is required")
	}
	op := model.AuditOpClearAdmin
	if in.Admin {
		op = model.AuditOpSetAdmin
	}
	res, err := u.Ports.Mongo.Eval(ctx, mongoshell.SetAdmin(in.Email, in.Admin))
	if err != nil {
		u.audit(ctx, op, in.Email, false, err.Error())
		return nil, fmt.Errorf("set admin flag: %w", err)
	}
	if !res.Succeeded() {
		u.audit(ctx, op, in.Email, false, res.Tail(1))
		return nil, fmt.Errorf("set admin flag failed: %s", res.Tail(3))
	}
	n, err := ejson.ParseCount(res.Stdout)
	if err != nil {
		// The update ran; only the count echo was unreadable.
		n = -1
	}
	u.audit(ctx, op, in.Email, true, "")
	return &SetAdminOutput{Modified: n}, nil
}
