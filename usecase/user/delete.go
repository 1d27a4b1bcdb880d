package user

import (
	"context"
	"fmt"

	"github.com/wiji1/overleaf/domain/model"
)

// DeleteInput describes a user deletion request. Callers are expected
// to have run Exists and obtained confirmation before invoking Delete;
// there is no undo.
type DeleteInput struct {
	Email     string `json:"email"`
	SkipEmail bool   `json:"skip_email"`
}

// DeleteOutput carries the remote script result.
type DeleteOutput struct {
	Result *model.CommandResult `json:"-"`
}

// Delete invokes the remote delete-user maintenance script.
func (u *UseCase) Delete(ctx context.Context, in *DeleteInput) (*DeleteOutput, error) {
	if in == nil || in.Email == "" {
		return nil, fmt.Errorf("DeleteInput.Email is required")
	}
	res, err := u.Ports.Scripts.DeleteUser(ctx, in.Email, in.SkipEmail)
	if err != nil {
		u.audit(ctx, model.AuditOpDelete, in.Email, false, err.Error())
		return nil, fmt.Errorf("delete user: %w", err)
	}
	u.audit(ctx, model.AuditOpDelete, in.Email, res.Succeeded(), res.Tail(1))
	if !res.Succeeded() {
		return nil, fmt.Errorf("delete user script failed: %s", res.Tail(3))
	}
	return &DeleteOutput{Result: res}, nil
}
