package user

import (
	"context"
	"fmt"

	"github.com/wiji1/overleaf/domain/model"
	"github.com/wiji1/overleaf/internal/ejson"
	"github.com/wiji1/overleaf/internal/mongoshell"
)

// StatsInput selects the aggregate counts.
type StatsInput struct{}

// StatsOutput carries the aggregates. Unverified is derived client-side.
type StatsOutput struct {
	Stats model.UserStats `json:"stats"`
}

// Stats runs the three count queries.
func (u *UseCase) Stats(ctx context.Context, in *StatsInput) (*StatsOutput, error) {
	total, err := u.count(ctx, mongoshell.CountAll())
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	admins, err := u.count(ctx, mongoshell.CountAdmins(true))
	if err != nil {
		return nil, fmt.Errorf("count admins: %w", err)
	}
	verified, err := u.count(ctx, mongoshell.CountVerified())
	if err != nil {
		return nil, fmt.Errorf("count verified: %w", err)
	}
	return &StatsOutput{Stats: model.UserStats{Total: total, Admins: admins, Verified: verified}}, nil
}

func (u *UseCase) count(ctx context.Context, expr string) (int64, error) {
	res, err := u.Ports.Mongo.Eval(ctx, expr)
	if err != nil {
		return 0, err
	}
	if !res.Succeeded() {
		return 0, fmt.Errorf("count failed: %s", res.Tail(3))
	}
	return ejson.ParseCount(res.Stdout)
}
