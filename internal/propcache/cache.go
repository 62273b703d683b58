package propcache

import (
	"fmt"

	"github.com/specialistvlad/propgraph/internal/node"
	"github.com/specialistvlad/propgraph/internal/prop"
	"github.com/zclconf/go-cty/cty"
)

// Status is the freshness of a cached node.
type Status uint8

const (
	// Unresolved props have no dependencies yet.
	Unresolved Status = iota
	// Resolved props have dependencies but were never calculated.
	Resolved
	// Fresh values can be read.
	Fresh
	// Stale values must be recalculated before they are read.
	Stale
)

func (s Status) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case Resolved:
		return "resolved"
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	default:
		return "unknown"
	}
}

type entry struct {
	status          Status
	value           cty.Value
	cameFromDefault bool
	counter         uint64
	requested       cty.Value
}

type seenKey struct {
	origin node.GraphNode
	target node.GraphNode
}

// Cache stores values, freshness and change counters for Prop, State and
// String nodes. Change detection is per origin: each reader has its own
// last-seen counter per node, so one reader observing a change does not hide
// it from another.
type Cache struct {
	entries  map[node.GraphNode]*entry
	lastSeen map[seenKey]uint64
	pending  []node.GraphNode
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		entries:  make(map[node.GraphNode]*entry),
		lastSeen: make(map[seenKey]uint64),
	}
}

func (c *Cache) entry(n node.GraphNode) *entry {
	e, ok := c.entries[n]
	if !ok {
		e = &entry{}
		c.entries[n] = e
	}
	return e
}

// Status returns the status of n. Nodes never seen are Unresolved.
func (c *Cache) Status(n node.GraphNode) Status {
	if e, ok := c.entries[n]; ok {
		return e.status
	}
	return Unresolved
}

// Counter returns the change counter of n. It starts at zero and is bumped
// on every stored value, so the first value always reads as changed.
func (c *Cache) Counter(n node.GraphNode) uint64 {
	if e, ok := c.entries[n]; ok {
		return e.counter
	}
	return 0
}

// MarkResolved moves an Unresolved node to Resolved. Other statuses are
// left alone.
func (c *Cache) MarkResolved(n node.GraphNode) {
	e := c.entry(n)
	if e.status == Unresolved {
		e.status = Resolved
	}
}

// MarkStale moves a Fresh node to Stale and reports whether it did.
func (c *Cache) MarkStale(n node.GraphNode) bool {
	e, ok := c.entries[n]
	if !ok || e.status != Fresh {
		return false
	}
	e.status = Stale
	return true
}

// MarkFresh refreshes a Stale node whose dependencies did not change,
// keeping its value and counter.
func (c *Cache) MarkFresh(n node.GraphNode) {
	e := c.entry(n)
	switch e.status {
	case Fresh:
	case Stale:
		e.status = Fresh
	default:
		panic(fmt.Sprintf("propcache: cannot refresh %s without calculating, it is %s", n, e.status))
	}
}

// GetProp returns the value of n for origin, calculating it first when it is
// Resolved or Stale. Calling it on an Unresolved node is a programming error.
func (c *Cache) GetProp(n, origin node.GraphNode, calculate func() prop.CalcResult) prop.View {
	e := c.entry(n)
	switch e.status {
	case Unresolved:
		panic(fmt.Sprintf("propcache: %s must be resolved before it is calculated", n))
	case Resolved, Stale:
		c.apply(e, calculate())
	}
	return c.view(n, origin, e, true)
}

func (c *Cache) apply(e *entry, result prop.CalcResult) {
	switch result.Kind {
	case prop.Calculated, prop.FromDefault:
		e.value = result.Value
		e.cameFromDefault = result.Kind == prop.FromDefault
		e.counter++
	case prop.NoChange:
		if e.status == Resolved {
			panic("propcache: first calculation returned no change")
		}
	}
	e.status = Fresh
}

// View returns the Fresh value of n and records that origin has seen it.
// Reading a node that is not Fresh panics.
func (c *Cache) View(n, origin node.GraphNode) prop.View {
	return c.view(n, origin, c.fresh(n), true)
}

// Peek is View without recording the read.
func (c *Cache) Peek(n, origin node.GraphNode) prop.View {
	return c.view(n, origin, c.fresh(n), false)
}

// MarkSeen records that origin has seen the current value of n.
func (c *Cache) MarkSeen(n, origin node.GraphNode) {
	c.lastSeen[seenKey{origin: origin, target: n}] = c.fresh(n).counter
}

// HasChangedSince reports whether n changed since origin last viewed it,
// without recording the read.
func (c *Cache) HasChangedSince(n, origin node.GraphNode) bool {
	return c.Counter(n) != c.lastSeen[seenKey{origin: origin, target: n}]
}

// Value returns the Fresh value of n without involving any origin.
func (c *Cache) Value(n node.GraphNode) cty.Value {
	return c.fresh(n).value
}

func (c *Cache) fresh(n node.GraphNode) *entry {
	e, ok := c.entries[n]
	if !ok || e.status != Fresh {
		status := Unresolved
		if ok {
			status = e.status
		}
		panic(fmt.Sprintf("propcache: reading %s while it is %s", n, status))
	}
	return e
}

func (c *Cache) view(n, origin node.GraphNode, e *entry, record bool) prop.View {
	key := seenKey{origin: origin, target: n}
	changed := e.counter != c.lastSeen[key]
	if record {
		c.lastSeen[key] = e.counter
	}
	return prop.View{
		Value:           e.value,
		CameFromDefault: e.cameFromDefault,
		Changed:         changed,
		Source:          n.Kind,
	}
}

// InitLeaf creates a State or String node with its initial value. It reports
// false, leaving the node untouched, when the node already exists.
func (c *Cache) InitLeaf(n node.GraphNode, v cty.Value, cameFromDefault bool) bool {
	if _, ok := c.entries[n]; ok {
		return false
	}
	c.SetLeaf(n, v, cameFromDefault)
	return true
}

// SetLeaf stores a new value for a State or String node and bumps its counter.
func (c *Cache) SetLeaf(n node.GraphNode, v cty.Value, cameFromDefault bool) {
	if !n.IsLeaf() {
		panic(fmt.Sprintf("propcache: %s is not a leaf", n))
	}
	e := c.entry(n)
	e.value = v
	e.cameFromDefault = cameFromDefault
	e.counter++
	e.status = Fresh
}

// SetRequested stores the value an inverse update wants n to take.
func (c *Cache) SetRequested(n node.GraphNode, v cty.Value) {
	e := c.entry(n)
	if e.requested == cty.NilVal {
		c.pending = append(c.pending, n)
	}
	e.requested = v
}

// Requested returns the requested value of n, if any.
func (c *Cache) Requested(n node.GraphNode) (cty.Value, bool) {
	e, ok := c.entries[n]
	if !ok || e.requested == cty.NilVal {
		return cty.NilVal, false
	}
	return e.requested, true
}

// ClearRequested drops every requested value.
func (c *Cache) ClearRequested() {
	for _, n := range c.pending {
		if e, ok := c.entries[n]; ok {
			e.requested = cty.NilVal
		}
	}
	c.pending = c.pending[:0]
}
