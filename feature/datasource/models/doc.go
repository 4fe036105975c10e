// Package models defines the data source records, runtime entities and
// validation results shared by the datasource feature.
//
// # Identity
//
// A Record is identified by its Name. The Type selects the catalog layout
// (LaunchBox or EmulationStation) and RelativePath locates the library
// relative to the root of the volume that hosts it.
//
// # Status
//
//   - Active: opted in by the user and reachable; RootFolder is never empty.
//   - Inactive: reachable but not opted in.
//   - Unavailable: opted in but the hosting device is not reachable.
package models
