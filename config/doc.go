// Package config loads the ttreco YAML configuration.
//
// A file only needs the keys it changes; everything else keeps the value
// from Default. Unknown keys are an error.
//
//	seed: 940202
//	workers: 8
//	grid:
//	  eta_points: 51
//	  mass_min: 171
//	  mass_max: 174
package config
