package nodeid

import (
	"strconv"
	"strings"
)

// String serializes the Address into its canonical string representation.
func (a *Address) String() string {
	if a == nil {
		return ""
	}

	var sb strings.Builder
	if a.HasIndex() {
		sb.WriteRune('#')
		sb.WriteString(strconv.Itoa(a.Index))
	} else {
		sb.WriteString(a.Name)
	}
	if a.HasProp() {
		sb.WriteRune('.')
		sb.WriteString(a.Prop)
	}
	return sb.String()
}

// Equal checks for equality between two Address pointers.
func (a *Address) Equal(other *Address) bool {
	if a == nil || other == nil {
		return a == other
	}
	return *a == *other
}
