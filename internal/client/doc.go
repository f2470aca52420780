// Package client implements the command-line locker client: command
// dispatch, flag parsing and human-readable output for the owner and
// verifier flows.
package client
