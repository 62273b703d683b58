package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/propgraph/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// ErrInvalidRequest marks a malformed assignment or action request.
var ErrInvalidRequest = errors.New("invalid request")

// Assignment is a requested prop value, e.g. greeting.value=hello.
type Assignment struct {
	Prop  *nodeid.Address
	Value string
}

// ParseAssignment parses "component[.prop]=value".
func ParseAssignment(raw string) (Assignment, error) {
	target, value, ok := strings.Cut(raw, "=")
	if !ok {
		return Assignment{}, fmt.Errorf("%w: %q must have the form component.prop=value", ErrInvalidRequest, raw)
	}
	addr, err := nodeid.Parse(strings.TrimSpace(target))
	if err != nil {
		return Assignment{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return Assignment{Prop: addr, Value: value}, nil
}

// ActionRequest is a user action addressed to a component by name or index.
type ActionRequest struct {
	Component *nodeid.Address
	Action    string
	Args      cty.Value
}

// ParseActionRequest parses "component:action[:json-args]".
func ParseActionRequest(raw string) (ActionRequest, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) < 2 || parts[1] == "" {
		return ActionRequest{}, fmt.Errorf("%w: %q must have the form component:action[:json]", ErrInvalidRequest, raw)
	}
	addr, err := nodeid.Parse(parts[0])
	if err != nil {
		return ActionRequest{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if addr.HasProp() {
		return ActionRequest{}, fmt.Errorf("%w: actions address components, got %s", ErrInvalidRequest, addr)
	}

	args := cty.EmptyObjectVal
	if len(parts) == 3 && strings.TrimSpace(parts[2]) != "" {
		args, err = DecodeArgs([]byte(parts[2]))
		if err != nil {
			return ActionRequest{}, err
		}
	}
	return ActionRequest{Component: addr, Action: parts[1], Args: args}, nil
}

// DecodeArgs decodes a JSON object into a cty object value.
func DecodeArgs(buf []byte) (cty.Value, error) {
	ty, err := ctyjson.ImpliedType(buf)
	if err != nil {
		return cty.NilVal, fmt.Errorf("%w: action arguments: %w", ErrInvalidRequest, err)
	}
	if !ty.IsObjectType() {
		return cty.NilVal, fmt.Errorf("%w: action arguments must be a JSON object", ErrInvalidRequest)
	}
	v, err := ctyjson.Unmarshal(buf, ty)
	if err != nil {
		return cty.NilVal, fmt.Errorf("%w: action arguments: %w", ErrInvalidRequest, err)
	}
	return v, nil
}

// requestFromEvent decodes the payload of an "action" socket event:
// {"component": "name", "action": "updateValue", "args": {...}}.
func requestFromEvent(data any) (ActionRequest, error) {
	payload, ok := data.(map[string]any)
	if !ok {
		return ActionRequest{}, fmt.Errorf("%w: action payload must be an object", ErrInvalidRequest)
	}
	component, _ := payload["component"].(string)
	action, _ := payload["action"].(string)
	if component == "" || action == "" {
		return ActionRequest{}, fmt.Errorf("%w: action payload needs component and action", ErrInvalidRequest)
	}
	addr, err := nodeid.Parse(component)
	if err != nil {
		return ActionRequest{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	args := cty.EmptyObjectVal
	if raw, ok := payload["args"]; ok && raw != nil {
		buf, err := json.Marshal(raw)
		if err != nil {
			return ActionRequest{}, fmt.Errorf("%w: action arguments: %w", ErrInvalidRequest, err)
		}
		if args, err = DecodeArgs(buf); err != nil {
			return ActionRequest{}, err
		}
	}
	return ActionRequest{Component: addr, Action: action, Args: args}, nil
}
