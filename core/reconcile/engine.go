package reconcile

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Indices holds one loaded index per source.
type Indices struct {
	Loaded     map[string]Item
	Discovered map[string]Item
	Persisted  map[string]Item
}

// BuildIndices loads all three sources concurrently.
func BuildIndices(ctx context.Context, adapter Adapter) (*Indices, error) {
	var (
		idx     Indices
		errs    [3]error
		wg      sync.WaitGroup
		targets = [3]*map[string]Item{&idx.Loaded, &idx.Discovered, &idx.Persisted}
	)

	for i, src := range []Source{SourceLoaded, SourceDiscovered, SourcePersisted} {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			*targets[i], errs[i] = adapter.LoadIndex(ctx, src)
		}(i, src)
	}
	wg.Wait()

	// An index cut short by cancellation is indistinguishable from missing items.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("failed to load %s index: %w", Source(i), err)
		}
	}
	return &idx, nil
}

// ReconcileWithPlan loads every source and plans the actions for the union of keys.
// It does NOT execute actions; use ApplyPlan for that.
func ReconcileWithPlan(ctx context.Context, adapter Adapter) (*Plan, error) {
	idx, err := BuildIndices(ctx, adapter)
	if err != nil {
		return nil, err
	}
	return PlanFromIndices(idx, adapter), nil
}

// PlanFromIndices classifies every key in the union of the indices and asks the
// adapter for a decision. It is deterministic: keys are visited in sorted order.
func PlanFromIndices(idx *Indices, adapter Adapter) *Plan {
	keys := buildUnion(idx.Loaded, idx.Discovered, idx.Persisted)

	plan := &Plan{
		Results: make([]Result, 0, len(keys)),
		Summary: PlanSummary{
			TotalKeys:  len(keys),
			Loaded:     len(idx.Loaded),
			Discovered: len(idx.Discovered),
			Persisted:  len(idx.Persisted),
		},
	}

	for _, key := range keys {
		result := buildResult(key, idx)
		plan.Results = append(plan.Results, result)

		action := adapter.Decide(result, idx.Loaded[key], idx.Discovered[key], idx.Persisted[key])
		if action.Type == "" || action.Type == ActionNone {
			continue
		}
		action.Key = key
		action.Case = result.Presence.Case()
		plan.Actions = append(plan.Actions, action)

		if action.Changed {
			plan.Summary.Changed++
		}
		if action.ActiveChanged {
			plan.Summary.ActiveChanged++
		}
	}

	return plan
}

// ApplyPlan executes the actions of a plan in order.
// Returns the number of actions executed and the first error encountered.
func ApplyPlan(ctx context.Context, mutator Mutator, plan *Plan) (executed int, err error) {
	for _, action := range plan.Actions {
		if err := ctx.Err(); err != nil {
			return executed, err
		}
		if err := mutator.Apply(ctx, action); err != nil {
			return executed, fmt.Errorf("failed to apply %s for %s: %w", action.Type, action.Key, err)
		}
		executed++
	}
	return executed, nil
}

// buildUnion creates the sorted union of keys across all indices.
func buildUnion(indices ...map[string]Item) []string {
	union := make(map[string]struct{})
	for _, index := range indices {
		for key := range index {
			union[key] = struct{}{}
		}
	}

	keys := make([]string, 0, len(union))
	for key := range union {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// buildResult creates the Result for a single key.
func buildResult(key string, idx *Indices) Result {
	_, loaded := idx.Loaded[key]
	_, discovered := idx.Discovered[key]
	_, persisted := idx.Persisted[key]

	return Result{
		Key: key,
		Presence: Presence{
			Loaded:     loaded,
			Discovered: discovered,
			Persisted:  persisted,
		},
	}
}
