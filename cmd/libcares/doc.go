// Command libcares is the cgo-exported C ABI surface: every function
// spec.md names, built as a C archive/shared object (go build
// -buildmode=c-archive) so a C or C++ program can link against it the
// same way it would link against upstream c-ares.
//
// The package owns the cgo boundary only: channel construction, option
// translation, socket-readiness plumbing, and the C-struct layouts a
// caller expects back. Everything DNS-specific (wire codec, the task
// state machine, hostent construction) lives in the internal packages
// this file calls into — this package's job is marshalling, not
// resolving.
package main
