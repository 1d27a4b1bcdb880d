package user

import (
	"context"
	"fmt"

	"github.com/wiji1/overleaf/domain/model"
)

// CreateInput describes a user creation request.
type CreateInput struct {
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}

// CreateOutput carries the remote script result.
type CreateOutput struct {
	Result *model.CommandResult `json:"-"`
}

// Create invokes the remote create-user maintenance script.
func (u *UseCase) Create(ctx context.Context, in *CreateInput) (*CreateOutput, error) {
	if in == nil || in.Email == "" {
		return nil, fmt.Errorf("CreateInput.Email is required")
	}
	res, err := u.Ports.Scripts.CreateUser(ctx, in.Email, in.Admin)
	if err != nil {
		u.audit(ctx, model.AuditOpCreate, in.Email, false, err.Error())
		return nil, fmt.Errorf("create user: %w", err)
	}
	u.audit(ctx, model.AuditOpCreate, in.Email, res.Succeeded(), res.Tail(1))
	if !res.Succeeded() {
		return nil, fmt.Errorf("create user script failed: %s", res.Tail(3))
	}
	return &CreateOutput{Result: res}, nil
}
