package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/wiji1/overleaf/domain/model"
	"github.com/wiji1/overleaf/internal/ejson"
	"github.com/wiji1/overleaf/internal/mongoshell"
)

// GetInput selects one user by email.
type GetInput struct {
	Email string `json:"email"`
}

// GetOutput carries the decoded user and the raw document for the
// detail view, which prints the document as returned.
type GetOutput struct {
	User *model.User `json:"user"`
	Raw  string      `json:"-"`
}

// Get fetches one user document. A miss returns model.ErrUserNotFound.
func (u *UseCase) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if in == nil || in.Email == "" {
		return nil, fmt.Errorf("GetInput.Email is required")
	}
	res, err := u.Ports.Mongo.Eval(ctx, mongoshell.FindOneByEmail(in.Email))
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !res.Succeeded() {
		return nil, fmt.Errorf("get user failed: %s", res.Tail(3))
	}
	usr, err := ejson.DecodeUser(res.Stdout)
	if err != nil {
		return nil, err
	}
	return &GetOutput{User: usr, Raw: strings.TrimSpace(res.Stdout)}, nil
}
