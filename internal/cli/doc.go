// Package cli turns command-line arguments into a validated app.Config. It
// owns usage text and exit codes; everything after parsing belongs to app.
package cli
