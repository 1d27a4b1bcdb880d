package user

import (
	"context"
	"fmt"

	"github.com/wiji1/overleaf/domain/model"
	"github.com/wiji1/overleaf/internal/ejson"
	"github.com/wiji1/overleaf/internal/mongoshell"
)

// VerifyInput marks a user's primary email address as confirmed.
type VerifyInput struct {
	Email string `json:"email"`
}

// VerifyOutput reports how many documents the update touched.
type VerifyOutput struct {
	Modified int64 `json:"modified"`
}

// Verify stamps the first address entry with a confirmation timestamp.
// Only the first address is touched.
func (u *UseCase) Verify(ctx context.Context, in *VerifyInput) (*VerifyOutput, error) {
	if in == nil || in.Email == "" {
		return nil, fmt.Errorf("VerifyInput.Email is required")
	}
	res, err := u.Ports.Mongo.Eval(ctx, mongoshell.ConfirmPrimaryEmail(in.Email))
	if err != nil {
		u.audit(ctx, model.AuditOpVerifyEmail, in.Email, false, err.Error())
		return nil, fmt.Errorf("verify email: %w", err)
	}
	if !res.Succeeded() {
		u.audit(ctx, model.AuditOpVerifyEmail, in.Email, false, res.Tail(1))
		return nil, fmt.Errorf("verify email failed: %s", res.Tail(3))
	}
	n, err := ejson.ParseCount(res.Stdout)
	if err != nil {
		n = -1
	}
	u.audit(ctx, model.AuditOpVerifyEmail, in.Email, true, "")
	return &VerifyOutput{Modified: n}, nil
}
