// Package integration_tests runs whole documents through the loader, the
// structure builder, the engine and the renderer.
package integration_tests
