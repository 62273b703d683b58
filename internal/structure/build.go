package structure

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/propgraph/internal/ctxlog"
	"github.com/specialistvlad/propgraph/internal/model"
	"github.com/specialistvlad/propgraph/internal/node"
	"github.com/specialistvlad/propgraph/internal/nodeid"
	"github.com/specialistvlad/propgraph/internal/registry"
)

// frame is one model node waiting for its attributes and children to be
// attached to an already allocated component.
type frame struct {
	src  *model.Node
	comp int
}

type pendingRef struct {
	comp int
	ref  model.Reference
}

type builder struct {
	store   *Store
	reg     *registry.Registry
	owners  map[*model.Node]bool
	refs    []pendingRef
	extends []pendingRef
	diags   hcl.Diagnostics
}

// Build turns a document into a Store. Document-shape problems are reported
// as diagnostics and materialized as ErrorType components; the returned store
// is always usable.
func Build(ctx context.Context, doc *model.Document, reg *registry.Registry) (*Store, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)

	b := &builder{
		store:  NewStore(reg),
		reg:    reg,
		owners: make(map[*model.Node]bool),
	}
	b.collectNames(doc)

	root := b.store.addComponent(reg.MustLookup(doc.Root.Type), -1, doc.Root.Range, nil)
	stack := []frame{{src: doc.Root, comp: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		next := b.expand(f)
		for i := len(next) - 1; i >= 0; i-- {
			stack = append(stack, next[i])
		}
	}

	for _, p := range b.refs {
		b.resolveRef(p)
	}
	for _, p := range b.extends {
		b.resolveExtend(p)
	}

	logger.Debug("Structure built.",
		"components", b.store.NumComponents(),
		"strings", b.store.NumStrings(),
		"props", b.store.NumProps(),
		"diagnostics", len(b.diags),
	)
	return b.store, b.diags
}

// collectNames decides, in document order, which node owns each name.
func (b *builder) collectNames(doc *model.Document) {
	seen := make(map[string]*model.Node)
	doc.Walk(func(n *model.Node) bool {
		if n.Name == "" {
			return true
		}
		if !nodeid.ValidName(n.Name) {
			b.errorf(n.Range, "Invalid component name", "The name %q is not a valid component name; the component is left unnamed.", n.Name)
			return true
		}
		if prev, dup := seen[n.Name]; dup {
			b.errorf(n.Range, "Duplicate component name", "The name %q was already used at %s; this component is left unnamed.", n.Name, prev.Range)
			return true
		}
		seen[n.Name] = n
		b.owners[n] = true
		return true
	})
}

// expand attaches the attributes and children of f.src to f.comp and returns
// the nested nodes that still need expanding, in document order.
func (b *builder) expand(f frame) []frame {
	c := b.store.components[f.comp]
	if c.Type == ErrorType {
		return nil
	}
	if f.src.Extend != nil {
		b.extends = append(b.extends, pendingRef{comp: f.comp, ref: *f.src.Extend})
	}

	var next []frame
	for _, attr := range f.src.Attributes {
		if !c.Definition.AcceptsAttribute(attr.Name) {
			rng := attr.Range
			b.diags = append(b.diags, &hcl.Diagnostic{
				Severity: hcl.DiagWarning,
				Summary:  "Unknown attribute",
				Detail:   fmt.Sprintf("Component type %q has no attribute %q; it is ignored.", c.Type, attr.Name),
				Subject:  &rng,
			})
			continue
		}
		v := b.store.addAttribute(f.comp, attr.Name)
		for _, item := range attr.Content {
			next = b.addContent(v, f.comp, item, next)
		}
	}

	children := b.store.slot(f.comp, childrenSlot)
	for _, item := range f.src.Children {
		next = b.addContent(children, f.comp, item, next)
	}
	return next
}

func (b *builder) addContent(into node.GraphNode, owner int, item model.Content, next []frame) []frame {
	info := b.store.components[owner].FSInformation

	switch x := item.(type) {
	case *model.Text:
		b.store.addString(into, x.Value)

	case *model.Ref:
		idx := b.store.addComponent(nil, owner, x.Range, info)
		b.store.graph.AddEdge(into, node.Component(idx))
		b.refs = append(b.refs, pendingRef{comp: idx, ref: x.Reference})

	case *model.Node:
		if x.FSInformation != nil {
			info = x.FSInformation
		}
		def, ok := b.reg.Lookup(x.Type)
		if !ok {
			idx := b.addError(into, owner, x.Range, info, "Unknown component type", fmt.Sprintf("There is no component type %q.", x.Type))
			b.store.components[idx].Name = b.claimName(x, idx)
			return next
		}
		idx := b.store.addComponent(def, owner, x.Range, info)
		b.store.components[idx].Name = b.claimName(x, idx)
		b.store.graph.AddEdge(into, node.Component(idx))
		next = append(next, frame{src: x, comp: idx})

	default:
		panic(fmt.Sprintf("structure: unexpected content %T", item))
	}
	return next
}

func (b *builder) claimName(n *model.Node, idx int) string {
	if !b.owners[n] {
		return ""
	}
	b.store.names[n.Name] = idx
	return n.Name
}

// addError creates an ErrorType component whose only child is the message.
func (b *builder) addError(into node.GraphNode, owner int, rng hcl.Range, info *model.FSInfo, summary, detail string) int {
	idx := b.store.addComponent(b.reg.MustLookup(ErrorType), owner, rng, info)
	b.store.graph.AddEdge(into, node.Component(idx))
	b.store.addString(b.store.slot(idx, childrenSlot), summary+": "+detail)
	b.errorf(rng, summary, "%s", detail)
	return idx
}

// resolveRef gives a reference placeholder its type and extend link.
func (b *builder) resolveRef(p pendingRef) {
	c := b.store.components[p.comp]
	fail := func(summary, detail string) {
		b.store.assignType(p.comp, b.reg.MustLookup(ErrorType))
		b.store.addString(b.store.slot(p.comp, childrenSlot), summary+": "+detail)
		b.errorf(c.Range, summary, "%s", detail)
	}

	target, ok := b.store.names[p.ref.Name]
	if !ok {
		fail("Unknown reference", fmt.Sprintf("No component is named %q.", p.ref.Name))
		return
	}
	tc := b.store.components[target]

	if p.ref.Prop == "" {
		b.store.assignType(p.comp, tc.Definition)
		c.Extend = &ExtendSource{Component: target, Prop: -1}
		return
	}

	local, ok := tc.Definition.PropIndex(p.ref.Prop)
	if !ok || !tc.Definition.Props[local].Public {
		fail("Unknown reference", fmt.Sprintf("Component %q has no public prop %q.", p.ref.Name, p.ref.Prop))
		return
	}
	typ, ok := b.reg.TypeForProfile(tc.Definition.Props[local].Profile)
	if !ok {
		fail("Invalid reference", fmt.Sprintf("Prop %s cannot be used as content.", p.ref))
		return
	}
	b.store.assignType(p.comp, b.reg.MustLookup(typ))
	c.Extend = &ExtendSource{Component: target, Prop: local}
}

func (b *builder) resolveExtend(p pendingRef) {
	c := b.store.components[p.comp]
	target, ok := b.store.names[p.ref.Name]
	if !ok {
		b.errorf(p.ref.Range, "Unknown extend target", "No component is named %q.", p.ref.Name)
		return
	}
	if p.ref.Prop == "" {
		c.Extend = &ExtendSource{Component: target, Prop: -1}
		return
	}
	def := b.store.components[target].Definition
	local, ok := def.PropIndex(p.ref.Prop)
	if !ok || !def.Props[local].Public {
		b.errorf(p.ref.Range, "Unknown extend target", "Component %q has no public prop %q.", p.ref.Name, p.ref.Prop)
		return
	}
	c.Extend = &ExtendSource{Component: target, Prop: local}
}

func (b *builder) errorf(rng hcl.Range, summary, format string, args ...any) {
	b.diags = append(b.diags, &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   fmt.Sprintf(format, args...),
		Subject:  &rng,
	})
}
