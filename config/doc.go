// Package config loads pairviz settings from YAML.
//
// A file only needs the keys it changes; everything else keeps the value
// from Default:
//
//	speed_ms: 200        # delay between playback ticks
//	point_count: 15      # size of generated point sets
//	seed: 1              # generator seed
//	listen: ":8080"      # vizserver address
//	log_level: info      # zap level
//	development: false   # zap development encoder
//	canvas:
//	  width: 700
//	  height: 500
//	  margin: 50
//
// Load and Parse always validate; a Config that fails Validate is never
// returned without its error.
package config
