package reconcile

import "context"

// Adapter supplies the model-specific side of a reconciliation pass.
type Adapter interface {
	// Name returns the unique name of this adapter (e.g. "datasource").
	Name() string

	// LoadIndex loads one source and returns its items indexed by key.
	// The three sources are loaded concurrently. Implementations that treat
	// unreachable inputs as absent should return an empty index, not an error.
	LoadIndex(ctx context.Context, source Source) (map[string]Item, error)

	// Decide returns the action for one key. Items absent from a source are nil.
	// Decide must not mutate anything; mutation happens in Mutator.Apply.
	Decide(result Result, loaded, discovered, persisted Item) Action
}

// Mutator applies planned actions.
type Mutator interface {
	Apply(ctx context.Context, action Action) error
}
