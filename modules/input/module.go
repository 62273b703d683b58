package input

import (
	"fmt"

	"github.com/specialistvlad/propgraph/internal/prop"
	"github.com/specialistvlad/propgraph/internal/registry"
	"github.com/specialistvlad/propgraph/internal/updaters"
	"github.com/specialistvlad/propgraph/modules/base"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// BindAttribute names the attribute an input reads its value from and writes
// user edits back to.
const BindAttribute = "bind_value_to"

// UpdateValueArgs are the arguments of a textInput's updateValue action.
type UpdateValueArgs struct {
	Text string `cty:"text"`
}

// UpdateBooleanArgs are the arguments of a booleanInput's updateBoolean action.
type UpdateBooleanArgs struct {
	Value bool `cty:"value"`
}

// OnUpdateValue is the handler for the textInput's updateValue action.
func OnUpdateValue(args cty.Value) ([]registry.PropUpdate, error) {
	var in UpdateValueArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	return []registry.PropUpdate{{Prop: "value", Value: cty.StringVal(in.Text)}}, nil
}

// OnUpdateBoolean is the handler for the booleanInput's updateBoolean action.
func OnUpdateBoolean(args cty.Value) ([]registry.PropUpdate, error) {
	var in UpdateBooleanArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	return []registry.PropUpdate{{Prop: "value", Value: cty.BoolVal(in.Value)}}, nil
}

// decodeArgs converts args to the object type implied by target and decodes
// it, so that e.g. "true" is accepted for a bool field.
func decodeArgs(args cty.Value, target any) error {
	ty, err := gocty.ImpliedType(target)
	if err != nil {
		return fmt.Errorf("failed to derive argument type: %w", err)
	}
	if !args.IsWhollyKnown() || args.IsNull() {
		return fmt.Errorf("invalid action arguments: value must be known and not null")
	}
	converted, err := convert.Convert(args, ty)
	if err != nil {
		return fmt.Errorf("invalid action arguments: %w", err)
	}
	if err := gocty.FromCtyValue(converted, target); err != nil {
		return fmt.Errorf("invalid action arguments: %w", err)
	}
	return nil
}

// Register registers the handlers with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterComponent(&registry.ComponentDefinition{
		Type: "textInput",
		Props: []registry.PropDefinition{
			base.Hidden(),
			{
				Name:      "value",
				New:       func() prop.Updater { return updaters.StringFromAttribute(BindAttribute, updaters.Config{}) },
				ForRender: true,
				Profile:   prop.ProfileString,
				Public:    true,
			},
			label(),
		},
		Attributes:  base.Attributes(BindAttribute, "label"),
		DefaultProp: "value",
		Actions:     map[string]registry.ActionFunc{"updateValue": OnUpdateValue},
	})

	r.RegisterComponent(&registry.ComponentDefinition{
		Type: "booleanInput",
		Props: []registry.PropDefinition{
			base.Hidden(),
			{
				Name:      "value",
				New:       func() prop.Updater { return updaters.BooleanFromAttribute(BindAttribute, updaters.Config{}) },
				ForRender: true,
				Profile:   prop.ProfileBoolean,
				Public:    true,
			},
			label(),
		},
		Attributes:  base.Attributes(BindAttribute, "label"),
		DefaultProp: "value",
		Actions:     map[string]registry.ActionFunc{"updateBoolean": OnUpdateBoolean},
	})
}

func label() registry.PropDefinition {
	return registry.PropDefinition{
		Name:      "label",
		New:       func() prop.Updater { return updaters.StringFromAttribute("label", updaters.Config{}) },
		ForRender: true,
	}
}
