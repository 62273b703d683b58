package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/propgraph/internal/node"
)

var (
	// ErrDependencyCycle is wrapped by CycleError.
	ErrDependencyCycle = errors.New("dependency cycle")
	// ErrUnknownComponent is returned for addresses that match no component.
	ErrUnknownComponent = errors.New("unknown component")
	// ErrUnknownProp is returned for addresses naming a missing or private prop.
	ErrUnknownProp = errors.New("unknown prop")
	// ErrUnknownAction is returned when a component has no such action.
	ErrUnknownAction = errors.New("unknown action")
)

// CycleError reports props whose values depend on themselves before any of
// them has a value. Path lists the cycle from the prop that closed it.
type CycleError struct {
	Path []node.GraphNode
	// Names are human readable labels for Path, e.g. "greeting.value".
	Names []string
}

func (e *CycleError) Error() string {
	labels := e.Names
	if len(labels) == 0 {
		labels = make([]string, len(e.Path))
		for i, n := range e.Path {
			labels[i] = n.String()
		}
	}
	return fmt.Sprintf("%s: %s", ErrDependencyCycle, strings.Join(labels, " -> "))
}

func (e *CycleError) Unwrap() error {
	return ErrDependencyCycle
}
