// Package datasource manages game library data sources on removable volumes.
//
// A data source is a directory holding a LaunchBox or EmulationStation library.
// The Manager keeps an ordered Registry of them and reconciles it against two
// other inputs on every scan:
//
//   - the configuration document at the root of each attached volume (RetroPass.xml)
//   - the persisted active set, stored under ActiveDataSourcesKey in the settings store
//
// Each name falls in one of eight presence cases (loaded, discovered, persisted)
// and gets the matching transition. The whole plan is computed from a snapshot
// before anything touches the registry, and one Event summarizes the pass.
//
// # Events
//
//	events, cancel := manager.Subscribe()
//	defer cancel()
//	for e := range events {
//	    if e.Has(datasource.EventActiveChanged) {
//	        active, _ := manager.PresentActive(ctx)
//	        ...
//	    }
//	}
//
// Events coalesce: a subscriber that falls behind receives the union of what it missed.
package datasource
