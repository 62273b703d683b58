package render

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// ChildKind tells a component child from a literal string child.
type ChildKind string

const (
	ChildComponent ChildKind = "component"
	ChildString    ChildKind = "string"
)

// Child is one entry of a component's child layout.
type Child struct {
	Kind  ChildKind `json:"kind"`
	Index int       `json:"index"`
}

// ComponentDelta is what changed about one component.
type ComponentDelta struct {
	Index int
	Type  string
	Name  string
	// Props holds the changed ForRender props by name.
	Props map[string]cty.Value
	// Children is the child layout. It is only set on the first render.
	Children []Child
}

// PropError is a ForRender prop that could not be calculated.
type PropError struct {
	Prop  string `json:"prop"`
	Error string `json:"error"`
}

// Delta is the result of one render.
type Delta struct {
	First      bool
	Components []ComponentDelta
	// Strings holds the changed literal strings by arena index.
	Strings map[int]string
	Errors  []PropError
}

// Empty reports whether the delta carries no change at all.
func (d *Delta) Empty() bool {
	return !d.First && len(d.Components) == 0 && len(d.Strings) == 0 && len(d.Errors) == 0
}

type componentJSON struct {
	Index    int                                `json:"index"`
	Type     string                             `json:"type"`
	Name     string                             `json:"name,omitempty"`
	Props    map[string]ctyjson.SimpleJSONValue `json:"props,omitempty"`
	Children []Child                            `json:"children,omitempty"`
}

type deltaJSON struct {
	First      bool              `json:"first"`
	Components []componentJSON   `json:"components"`
	Strings    map[string]string `json:"strings,omitempty"`
	Errors     []PropError       `json:"errors,omitempty"`
}

// MarshalJSON encodes prop values as plain JSON, e.g. {"value":"hi"}.
func (d *Delta) MarshalJSON() ([]byte, error) {
	out := deltaJSON{
		First:      d.First,
		Components: make([]componentJSON, len(d.Components)),
		Errors:     d.Errors,
	}
	for i, c := range d.Components {
		cj := componentJSON{Index: c.Index, Type: c.Type, Name: c.Name, Children: c.Children}
		if len(c.Props) > 0 {
			cj.Props = make(map[string]ctyjson.SimpleJSONValue, len(c.Props))
			for name, v := range c.Props {
				cj.Props[name] = ctyjson.SimpleJSONValue{Value: v}
			}
		}
		out.Components[i] = cj
	}
	if len(d.Strings) > 0 {
		out.Strings = make(map[string]string, len(d.Strings))
		for idx, s := range d.Strings {
			out.Strings[strconv.Itoa(idx)] = s
		}
	}
	return json.Marshal(out)
}

// Errs joins the prop errors of d, or returns nil.
func (d *Delta) Errs() error {
	errs := make([]error, len(d.Errors))
	for i, e := range d.Errors {
		errs[i] = errors.New(e.Prop + ": " + e.Error)
	}
	return errors.Join(errs...)
}
