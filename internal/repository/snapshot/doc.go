// Package snapshot persists an assembled dataset as a JSON flat file.
//
// The FileRepository writes the protobuf JSON form of the codec messages, so a
// snapshot can be rendered or served again without re-reading the day files.
package snapshot
