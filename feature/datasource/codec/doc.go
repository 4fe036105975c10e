// Package codec encodes and decodes the two persisted forms of data source records.
//
// # Per-device document
//
// Every removable volume hosting data sources carries a small XML document at
// its root. Two generations exist:
//
//	<RetroPassConfig>                       legacy, a single record; name optional
//	  <type>LaunchBox</type>
//	  <relativePath>Games\LaunchBox</relativePath>
//	</RetroPassConfig>
//
//	<retropass version="1.6">               current, any number of records
//	  <dataSources>
//	    <dataSource>
//	      <type>EmulationStation</type>
//	      <name>Retro</name>
//	      <relativePath>Retro</relativePath>
//	    </dataSource>
//	  </dataSources>
//	</retropass>
//
// Sniff picks the generation from the version marker before any structured
// decoding happens, so new generations only need a new Schema value and decoder.
// Only the current generation is ever written.
//
// # Active set
//
// The records the user opted into are stored as a single settings value,
// an <ArrayOfRetroPassConfig> list of the same record shape.
package codec
