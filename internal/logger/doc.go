// Package logger wraps zap with:
//   - a global sugared logger writing console lines to stderr,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and an atomic level switch,
//   - leveled helpers taking a context (InfoKV, WarnKV, ErrorKV, ...).
//
// Services carry the logger in their context so skipped files and outputs
// are reported with the fields of the component that produced them.
package logger
