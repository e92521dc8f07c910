// Package config defines the settings of machine-timeline and provides
// helpers to load, validate and save them in YAML format.
//
// The three required parameters are the day-file folder and the inclusive
// start and end dates; the rest configures outputs and transports.
package config
