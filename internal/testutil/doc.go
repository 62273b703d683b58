// Package testutil holds the harness shared by package tests that need a
// real document: it writes HCL sources to a temporary directory, loads and
// builds them against the module catalog, and captures the debug log.
package testutil
