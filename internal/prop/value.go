package prop

import (
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Profile is the tag a prop declares so that data queries can find it by
// what it provides rather than by name.
type Profile uint8

const (
	// ProfileNone marks a prop no query can match by profile.
	ProfileNone Profile = iota
	// ProfileString provides text. Literal strings in content match it too.
	ProfileString
	// ProfileNumber provides a number.
	ProfileNumber
	// ProfileInteger provides a whole number.
	ProfileInteger
	// ProfileBoolean provides a boolean.
	ProfileBoolean
)

var profileNames = [...]string{
	ProfileNone:    "none",
	ProfileString:  "string",
	ProfileNumber:  "number",
	ProfileInteger: "integer",
	ProfileBoolean: "boolean",
}

func (p Profile) String() string {
	if int(p) < len(profileNames) {
		return profileNames[p]
	}
	return "unknown"
}

// IsTextual reports whether a dependency with this profile can take part in
// string concatenation.
func (p Profile) IsTextual() bool {
	return p == ProfileString
}

// ToString renders a value the way it reads in text content. Null and
// non-primitive values render as the empty string.
func ToString(v cty.Value) string {
	if v == cty.NilVal || v.IsNull() || !v.IsKnown() {
		return ""
	}
	switch {
	case v.Type() == cty.String:
		return v.AsString()
	case v.Type() == cty.Number:
		return v.AsBigFloat().Text('f', -1)
	case v.Type() == cty.Bool:
		if v.True() {
			return "true"
		}
		return "false"
	}
	return ""
}

// StringToBoolean interprets text as a boolean: a case-insensitive match of
// "true" after trimming surrounding space. An empty attribute value means the
// attribute is present and therefore true; empty child text is false.
func StringToBoolean(s string, fromAttribute bool) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return fromAttribute
	}
	return strings.EqualFold(trimmed, "true")
}

// ToBool converts a dependency value to a boolean.
func ToBool(v cty.Value, fromAttribute bool) bool {
	if v == cty.NilVal || v.IsNull() || !v.IsKnown() {
		return false
	}
	if v.Type() == cty.Bool {
		return v.True()
	}
	if v.Type() == cty.Number {
		return v.AsBigFloat().Sign() != 0
	}
	return StringToBoolean(ToString(v), fromAttribute)
}

// ToNumber converts a dependency value to a cty number. Text that does not
// parse yields a null number, which renders as NaN.
func ToNumber(v cty.Value) cty.Value {
	if v == cty.NilVal || v.IsNull() || !v.IsKnown() {
		return cty.NullVal(cty.Number)
	}
	switch {
	case v.Type() == cty.Number:
		return v
	case v.Type() == cty.Bool:
		if v.True() {
			return cty.NumberIntVal(1)
		}
		return cty.NumberIntVal(0)
	}
	converted, err := convert.Convert(cty.StringVal(strings.TrimSpace(ToString(v))), cty.Number)
	if err != nil {
		return cty.NullVal(cty.Number)
	}
	return converted
}

// ConvertLike converts v to the primitive type of like. It is used by inverse
// updates to hand each dependency a value of the type it already holds.
func ConvertLike(v, like cty.Value) cty.Value {
	if like == cty.NilVal {
		return v
	}
	switch {
	case like.Type() == cty.String:
		return cty.StringVal(ToString(v))
	case like.Type() == cty.Number:
		return ToNumber(v)
	case like.Type() == cty.Bool:
		return cty.BoolVal(ToBool(v, false))
	}
	return v
}
