package user

import (
	"context"
	"fmt"

	"github.com/wiji1/overleaf/domain/model"
	"github.com/wiji1/overleaf/internal/ejson"
	"github.com/wiji1/overleaf/internal/logging"
	"github.com/wiji1/overleaf/internal/mongoshell"
)

// ListInput selects the full user listing. No filters are supported;
// the collection is small by design.
type ListInput struct{}

// ListOutput is either a parsed listing or, when the remote shell
// output could not be decoded, the degraded email-only fallback.
type ListOutput struct {
	Users []*model.User `json:"users,omitempty"`
	// Degraded is set when only bare emails could be extracted.
	Degraded bool     `json:"degraded,omitempty"`
	Emails   []string `json:"emails,omitempty"`
}

// List fetches the projected user listing. A degraded runner (legacy
// mongo shell, no EJSON global) gets the printjson expression and goes
// straight to email extraction.
func (u *UseCase) List(ctx context.Context, in *ListInput) (*ListOutput, error) {
	expr := mongoshell.FindAll()
	if u.Ports.Mongo.Degraded() {
		expr = mongoshell.FindAllLegacy()
	}
	res, err := u.Ports.Mongo.Eval(ctx, expr)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if !res.Succeeded() {
		return nil, fmt.Errorf("list users failed: %s", res.Tail(3))
	}

	if !u.Ports.Mongo.Degraded() {
		users, derr := ejson.DecodeUsers(res.Stdout)
		if derr == nil {
			return &ListOutput{Users: users}, nil
		}
		logging.FromContext(ctx).Warn(ctx, "listing output was not parseable, falling back to email extraction", "error", derr)
	}
	return &ListOutput{Degraded: true, Emails: ejson.ExtractEmails(res.Stdout)}, nil
}
