// Package timeline exposes classification over gRPC.
//
// The TimelineService exchanges google.protobuf.Struct messages built by the
// codec package, so it needs no generated code: the service descriptor and
// its handlers are declared here, next to a matching client.
package timeline
