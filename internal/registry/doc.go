// Package registry provides the central "glue" for the component catalog.
//
// The Registry maps the component type names used in documents (e.g. "text",
// "booleanInput") to their ComponentDefinition: the ordered prop slots with
// their updater factories, the accepted attributes, the default prop and the
// named actions.
//
// Modules register their definitions during application startup. A
// duplicate or inconsistent definition is a programming error, so
// registration panics rather than returning an error.
package registry
