// Package server implements the serve command: a gRPC TimelineService over
// the day files of one folder.
package server
