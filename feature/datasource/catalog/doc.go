// Package catalog recognizes the library layouts a data source can use.
//
// Each layout implements Catalog. LaunchBox is identified by Data/Platforms.xml
// directly under the library root; EmulationStation by an es_systems.cfg file
// anywhere below the root, within a bounded depth.
package catalog
