// Package common holds helpers shared by several services.
//
// It merges the settings file with command-line overrides and obtains a
// dataset from a folder of day files, a snapshot file or a remote server.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
