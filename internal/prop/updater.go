package prop

import (
	"errors"

	"github.com/specialistvlad/propgraph/internal/node"
	"github.com/zclconf/go-cty/cty"
)

var (
	// ErrCouldNotUpdate is returned by Invert when the requested value cannot
	// be pushed back into the dependencies, e.g. a concatenation of several
	// strings.
	ErrCouldNotUpdate = errors.New("could not update")
	// ErrNotImplemented is returned by Invert for props that are read-only.
	ErrNotImplemented = errors.New("invert not implemented")
)

// View is a dependency value as seen by the prop reading it.
type View struct {
	Value           cty.Value
	CameFromDefault bool
	// Changed is true when the value changed since the reading prop last saw it.
	Changed bool
	// Source is the kind of node that produced the value.
	Source node.Kind
	// Profile is the profile the dependency matched with. Literal strings
	// report ProfileString, state reports ProfileNone.
	Profile Profile
}

// DataQueryResult holds the views for one declared DataQuery, in dependency order.
type DataQueryResult struct {
	Values []View
}

// AnyChanged reports whether any dependency in results changed.
func AnyChanged(results []DataQueryResult) bool {
	for _, r := range results {
		for _, v := range r.Values {
			if v.Changed {
				return true
			}
		}
	}
	return false
}

// CalcKind tells the cache how to apply a CalcResult.
type CalcKind uint8

const (
	// Calculated stores the value with came_from_default false and bumps the counter.
	Calculated CalcKind = iota
	// FromDefault stores the value with came_from_default true and bumps the counter.
	FromDefault
	// NoChange keeps the old value and counter.
	NoChange
)

// CalcResult is the outcome of Updater.Calculate.
type CalcResult struct {
	Kind  CalcKind
	Value cty.Value
}

// CalculatedValue wraps v as a Calculated result.
func CalculatedValue(v cty.Value) CalcResult {
	return CalcResult{Kind: Calculated, Value: v}
}

// DefaultValue wraps v as a FromDefault result.
func DefaultValue(v cty.Value) CalcResult {
	return CalcResult{Kind: FromDefault, Value: v}
}

// Unchanged reports that the previous value still holds.
func Unchanged() CalcResult {
	return CalcResult{Kind: NoChange}
}

// ResultFor builds a Calculated or FromDefault result depending on fromDefault.
func ResultFor(v cty.Value, fromDefault bool) CalcResult {
	if fromDefault {
		return DefaultValue(v)
	}
	return CalculatedValue(v)
}

// DependencyValueUpdateRequest instructs the inverse engine to set one
// dependency, addressed by query and position, to Value.
type DependencyValueUpdateRequest struct {
	QueryIdx      int
	DependencyIdx int
	Value         cty.Value
}

// Updater is the per prop-instance logic supplied by the component catalog.
// Implementations must be pure: Calculate and Invert only read the data
// they are handed.
type Updater interface {
	// Default is the value used for independent state that was never set.
	Default() cty.Value
	// DataQueries declares what the prop reads. It is called once per resolve.
	DataQueries() []DataQuery
	// Calculate derives the prop value from the resolved dependencies.
	Calculate(data []DataQueryResult) CalcResult
	// Invert turns a requested prop value into updates of its dependencies.
	Invert(data []DataQueryResult, requested cty.Value, isDirectFromAction bool) ([]DependencyValueUpdateRequest, error)
}
