package user

import (
	"context"
	"fmt"

	"github.com/wiji1/overleaf/internal/ejson"
	"github.com/wiji1/overleaf/internal/mongoshell"
)

// ExistsInput asks whether an email matches any user document.
type ExistsInput struct {
	Email string `json:"email"`
}

// ExistsOutput carries the match count.
type ExistsOutput struct {
	Count int64 `json:"count"`
}

// Exists runs the existence count used before destructive operations.
// A missing user and an existing non-admin user are distinguished here,
// never by a null field lookup.
func (u *UseCase) Exists(ctx context.Context, in *ExistsInput) (*ExistsOutput, error) {
	if in == nil || in.Email == "" {
		return nil, fmt.Errorf("ExistsInput.Email is required")
	}
	res, err := u.Ports.Mongo.Eval(ctx, mongoshell.CountByEmail(in.Email))
	if err != nil {
		return nil, fmt.Errorf("existence check: %w", err)
	}
	if !res.Succeeded() {
		return nil, fmt.Errorf("existence check failed: %s", res.Tail(3))
	}
	n, err := ejson.ParseCount(res.Stdout)
	if err != nil {
		return nil, fmt.Errorf("existence check: %w", err)
	}
	return &ExistsOutput{Count: n}, nil
}
