// Package reconcile provides a generic three-way reconciliation engine.
//
// A pass merges three sources of truth that may disagree:
//
//   - Loaded: what the running session already holds.
//   - Discovered: what the environment reports right now.
//   - Persisted: what previous sessions remembered.
//
// # Architecture
//
// 1. Adapter: loads one index per source (concurrently) and decides, for a
//    single key and its presence triple, which Action to take.
//
// 2. Engine: builds the sorted union of keys, classifies each key into one of
//    eight Cases and collects the adapter's decisions into a Plan. Planning has
//    no side effects, so observers never see a half-merged state.
//
// 3. ApplyPlan: hands the planned actions to a Mutator once the whole union has
//    been classified.
//
// 4. Guard: singleflight wrapper that serializes concurrent passes.
//
// # Usage Example
//
//	plan, err := reconcile.ReconcileWithPlan(ctx, adapter)
//	if err != nil {
//	    return err
//	}
//	if _, err := reconcile.ApplyPlan(ctx, mutator, plan); err != nil {
//	    return err
//	}
//	if plan.Summary.AnyChanged() {
//	    notify()
//	}
package reconcile
