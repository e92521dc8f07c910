// Package render draws a dataset as a Gantt-style timeline chart.
//
// Every resource (day) gets one horizontal lane over a 24-hour axis, every
// interval a bar colored by its state. Nothing is global: callers pass the
// dataset, the palette and the figure options to each call.
package render
