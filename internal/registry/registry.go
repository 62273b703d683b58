package registry

import (
	"fmt"
	"slices"

	"github.com/specialistvlad/propgraph/internal/prop"
	"github.com/zclconf/go-cty/cty"
)

// Module is the interface that all catalog modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// PropDefinition describes one prop slot of a component type.
type PropDefinition struct {
	Name string
	// New builds a fresh updater for one component instance.
	New func() prop.Updater
	// ForRender props are sent to clients.
	ForRender bool
	// Profile lets data queries of other components find this prop.
	Profile prop.Profile
	// Public props can be addressed by references and --set.
	Public bool
}

// PropUpdate is one requested prop change produced by an action.
type PropUpdate struct {
	Prop  string
	Value cty.Value
}

// ActionFunc maps action arguments to requested prop changes.
type ActionFunc func(args cty.Value) ([]PropUpdate, error)

// ComponentDefinition is the schema of one component type.
type ComponentDefinition struct {
	Type  string
	Props []PropDefinition
	// Attributes lists the attribute names the component accepts.
	Attributes []string
	// DefaultProp names the prop that extend links and references use.
	// Empty means the component has none.
	DefaultProp string
	Actions     map[string]ActionFunc
}

// PropIndex returns the local index of the named prop.
func (d *ComponentDefinition) PropIndex(name string) (int, bool) {
	idx := slices.IndexFunc(d.Props, func(p PropDefinition) bool { return p.Name == name })
	return idx, idx >= 0
}

// DefaultPropIndex returns the local index of the default prop.
func (d *ComponentDefinition) DefaultPropIndex() (int, bool) {
	if d.DefaultProp == "" {
		return -1, false
	}
	return d.PropIndex(d.DefaultProp)
}

// AcceptsAttribute reports whether name is a known attribute.
func (d *ComponentDefinition) AcceptsAttribute(name string) bool {
	return slices.Contains(d.Attributes, name)
}

// PropWithProfile returns the first prop declaring profile p.
func (d *ComponentDefinition) PropWithProfile(p prop.Profile) (int, bool) {
	if p == prop.ProfileNone {
		return -1, false
	}
	idx := slices.IndexFunc(d.Props, func(def PropDefinition) bool { return def.Profile == p })
	return idx, idx >= 0
}

// Registry holds the component catalog for a single application instance.
type Registry struct {
	components map[string]*ComponentDefinition
	order      []string
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		components: make(map[string]*ComponentDefinition),
	}
}

// RegisterComponent adds a component type. Registering the same type twice or
// an inconsistent definition is a programming error and panics.
func (r *Registry) RegisterComponent(def *ComponentDefinition) {
	if _, exists := r.components[def.Type]; exists {
		panic(fmt.Sprintf("component type '%s' already registered", def.Type))
	}
	if err := validateDefinition(def); err != nil {
		panic(fmt.Sprintf("invalid component type '%s': %v", def.Type, err))
	}
	r.components[def.Type] = def
	r.order = append(r.order, def.Type)
}

// Lookup returns the definition for a component type.
func (r *Registry) Lookup(componentType string) (*ComponentDefinition, bool) {
	def, ok := r.components[componentType]
	return def, ok
}

// MustLookup is Lookup for types the caller knows are registered.
func (r *Registry) MustLookup(componentType string) *ComponentDefinition {
	def, ok := r.components[componentType]
	if !ok {
		panic(fmt.Sprintf("component type '%s' is not registered", componentType))
	}
	return def
}

// Types returns the registered component types in registration order.
func (r *Registry) Types() []string {
	return slices.Clone(r.order)
}

// TypeForProfile returns the first registered type whose default prop
// declares profile p. References to props are expanded into this type.
func (r *Registry) TypeForProfile(p prop.Profile) (string, bool) {
	for _, name := range r.order {
		def := r.components[name]
		idx, ok := def.DefaultPropIndex()
		if ok && def.Props[idx].Profile == p {
			return name, true
		}
	}
	return "", false
}
