// Package codec converts domain values to and from google.protobuf.Struct.
//
// The same messages travel over the gRPC TimelineService and are written to
// snapshot files as protobuf JSON, so one conversion serves both.
package codec
