package nodeid

// Address identifies a component, and optionally one of its props, from
// outside the document, e.g. on the command line or in an action event.
type Address struct {
	// Name is the component name. Empty when the address uses an index.
	Name string
	// Index is the component index for `#3` style addresses, -1 otherwise.
	Index int
	// Prop is the prop name, empty when the address names only a component.
	Prop string
}

// Named creates an address for a named component.
func Named(name, prop string) *Address {
	return &Address{Name: name, Index: -1, Prop: prop}
}

// Indexed creates an address for a component by index.
func Indexed(index int, prop string) *Address {
	return &Address{Index: index, Prop: prop}
}

// HasIndex returns true if the address names its component by index.
func (a *Address) HasIndex() bool {
	return a.Index != -1
}

// HasProp returns true if the address narrows to a prop.
func (a *Address) HasProp() bool {
	return a.Prop != ""
}
