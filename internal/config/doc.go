// Package config defines the boundary between document formats and the rest
// of the application.
//
// A Loader reads documents in some concrete syntax and produces the
// format-agnostic model.Document that the structure builder consumes. The HCL
// implementation lives in the hcl package.
package config
