/*
Package nodeid provides a structured representation for addressing
components and props from outside a document.

The canonical format is `component[.prop]`, where the component is either a
name (`greeting.value`) or an index (`#3.value`) for components without one.

This package also owns the naming rule for components, so the structure
builder and the command line agree on what a valid name is.
*/
package nodeid
