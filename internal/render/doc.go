// Package render bridges the engine to clients.
//
// A Renderer walks the render tree, the components reachable from the root
// over content children, and pulls every ForRender prop through the engine
// with its own origin. The first render reports every prop, every literal
// string and the child layout of every component. Later renders report only
// what changed since the previous render of the same Renderer.
package render
