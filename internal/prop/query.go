package prop

import (
	"fmt"
	"slices"
	"strings"
)

// QueryKind selects how a DataQuery is resolved to concrete dependencies.
type QueryKind uint8

const (
	// QueryState asks for independent state shared along the extend chain.
	QueryState QueryKind = iota
	// QueryProp asks for one specific prop, on this component by default.
	QueryProp
	// QueryParentProp asks for a named prop of the structural parent.
	QueryParentProp
	// QueryAttribute asks for the content of a named attribute, filtered by profile.
	QueryAttribute
	// QueryChildProfiles asks for the content children, filtered by profile.
	QueryChildProfiles
)

func (k QueryKind) String() string {
	switch k {
	case QueryState:
		return "state"
	case QueryProp:
		return "prop"
	case QueryParentProp:
		return "parent_prop"
	case QueryAttribute:
		return "attribute"
	case QueryChildProfiles:
		return "child_profiles"
	default:
		return "unknown"
	}
}

// Self is the Component value of a QueryProp query that targets the
// component owning the querying prop.
const Self = -1

// DataQuery is a declared data requirement of a prop. It carries no graph
// handles; the engine resolves it against the structure graph.
type DataQuery struct {
	Kind QueryKind

	// Component and Prop address the target of a QueryProp query. Prop is a
	// local prop index within the component.
	Component int
	Prop      int

	// Name is the prop name for QueryParentProp and the attribute name for
	// QueryAttribute.
	Name string

	// Profiles lists acceptable profiles in priority order. For each candidate
	// child the first matching profile wins.
	Profiles []Profile
}

// StateQuery asks for the independent state of the prop.
func StateQuery() DataQuery {
	return DataQuery{Kind: QueryState, Component: Self}
}

// PropQuery asks for another prop of the same component.
func PropQuery(local int) DataQuery {
	return DataQuery{Kind: QueryProp, Component: Self, Prop: local}
}

// ComponentPropQuery asks for a prop of an explicit component.
func ComponentPropQuery(component, local int) DataQuery {
	return DataQuery{Kind: QueryProp, Component: component, Prop: local}
}

// ParentPropQuery asks for the named prop of the structural parent.
func ParentPropQuery(name string) DataQuery {
	return DataQuery{Kind: QueryParentProp, Component: Self, Name: name}
}

// AttributeQuery asks for the content of attribute name, keeping children
// that provide one of profiles.
func AttributeQuery(name string, profiles ...Profile) DataQuery {
	return DataQuery{Kind: QueryAttribute, Component: Self, Name: name, Profiles: profiles}
}

// ChildQuery asks for the content children that provide one of profiles.
func ChildQuery(profiles ...Profile) DataQuery {
	return DataQuery{Kind: QueryChildProfiles, Component: Self, Profiles: profiles}
}

// AcceptsText reports whether literal strings satisfy the query.
func (q DataQuery) AcceptsText() bool {
	return slices.Contains(q.Profiles, ProfileString)
}

// Match returns the position in q.Profiles of the first profile found in
// available, or -1. Lower positions win.
func (q DataQuery) Match(available Profile) int {
	return slices.Index(q.Profiles, available)
}

func (q DataQuery) String() string {
	switch q.Kind {
	case QueryState:
		return "state"
	case QueryProp:
		if q.Component == Self {
			return fmt.Sprintf("prop(self.%d)", q.Prop)
		}
		return fmt.Sprintf("prop(%d.%d)", q.Component, q.Prop)
	case QueryParentProp:
		return fmt.Sprintf("parent_prop(%s)", q.Name)
	case QueryAttribute:
		return fmt.Sprintf("attribute(%s; %s)", q.Name, joinProfiles(q.Profiles))
	case QueryChildProfiles:
		return fmt.Sprintf("children(%s)", joinProfiles(q.Profiles))
	}
	return "unknown"
}

func joinProfiles(ps []Profile) string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.String()
	}
	return strings.Join(names, ",")
}
