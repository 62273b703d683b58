package nodeid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// nameRegex matches a component or prop name.
var nameRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_-]*$`)

// indexRegex matches an index-style component reference, e.g. `#12`.
var indexRegex = regexp.MustCompile(`^#(\d+)$`)

// ValidName reports whether name can be used as a component or prop name.
func ValidName(name string) bool {
	return nameRegex.MatchString(name)
}

// Parse creates a new Address by parsing its canonical string representation:
// `name`, `name.prop`, `#idx` or `#idx.prop`.
func Parse(rawID string) (*Address, error) {
	if rawID == "" {
		return nil, fmt.Errorf("identifier cannot be empty")
	}

	head, prop, hasProp := strings.Cut(rawID, ".")
	if hasProp && !ValidName(prop) {
		return nil, fmt.Errorf("invalid prop name: %q", prop)
	}

	if matches := indexRegex.FindStringSubmatch(head); matches != nil {
		index, err := strconv.Atoi(matches[1])
		if err != nil {
			return nil, fmt.Errorf("invalid component index %q: %w", matches[1], err)
		}
		return Indexed(index, prop), nil
	}

	if !ValidName(head) {
		return nil, fmt.Errorf("invalid component name: %q", head)
	}
	return Named(head, prop), nil
}
