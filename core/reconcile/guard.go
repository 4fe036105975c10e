package reconcile

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Guard collapses concurrent reconciliation passes with the same key into one.
// Callers arriving while a pass runs share its outcome.
type Guard struct {
	sf singleflight.Group
}

// Do runs fn unless a pass for key is already in flight, in which case it waits
// for that pass and returns its result. shared reports whether the result was shared.
func (g *Guard) Do(ctx context.Context, key string, fn func(ctx context.Context) (*Plan, error)) (plan *Plan, shared bool, err error) {
	ch := g.sf.DoChan(key, func() (interface{}, error) {
		return fn(ctx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Shared, res.Err
		}
		p, _ := res.Val.(*Plan)
		return p, res.Shared, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}
