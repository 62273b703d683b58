package registry

import (
	"errors"
	"fmt"
	"strings"
)

// validateDefinition checks that a component definition is internally consistent.
func validateDefinition(def *ComponentDefinition) error {
	var errs []string

	if def.Type == "" {
		errs = append(errs, "type name is empty")
	}

	seen := make(map[string]struct{}, len(def.Props))
	for i, p := range def.Props {
		if p.Name == "" {
			errs = append(errs, fmt.Sprintf("prop %d has no name", i))
			continue
		}
		if _, dup := seen[p.Name]; dup {
			errs = append(errs, fmt.Sprintf("prop '%s' declared twice", p.Name))
		}
		seen[p.Name] = struct{}{}
		if p.New == nil {
			errs = append(errs, fmt.Sprintf("prop '%s' has no updater factory", p.Name))
		}
	}

	if def.DefaultProp != "" {
		if _, ok := seen[def.DefaultProp]; !ok {
			errs = append(errs, fmt.Sprintf("default prop '%s' is not declared", def.DefaultProp))
		}
	}

	attrs := make(map[string]struct{}, len(def.Attributes))
	for _, a := range def.Attributes {
		if _, dup := attrs[a]; dup {
			errs = append(errs, fmt.Sprintf("attribute '%s' declared twice", a))
		}
		attrs[a] = struct{}{}
	}

	for name, fn := range def.Actions {
		if fn == nil {
			errs = append(errs, fmt.Sprintf("action '%s' has no handler", name))
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
