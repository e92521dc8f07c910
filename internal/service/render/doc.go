// Package render implements the render command: it obtains a dataset and
// draws its timeline chart to the configured output file.
package render
