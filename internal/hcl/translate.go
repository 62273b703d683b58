package hcl

import (
	"fmt"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/propgraph/internal/model"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Reserved attribute names.
const (
	ContentAttribute = "content"
	ExtendAttribute  = "extend"
)

// translateFile converts the top-level blocks of one file.
func translateFile(body *hclsyntax.Body, info *model.FSInfo) ([]*model.Node, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	for _, attr := range sortedAttributes(body) {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unexpected attribute",
			Detail:   fmt.Sprintf("Top-level attribute %q is not supported; declare components as blocks.", attr.Name),
			Subject:  attr.NameRange.Ptr(),
		})
	}

	nodes := make([]*model.Node, 0, len(body.Blocks))
	for _, block := range body.Blocks {
		n, blockDiags := translateBlock(block, info)
		diags = append(diags, blockDiags...)
		nodes = append(nodes, n)
	}
	return nodes, diags
}

// positioned is content waiting to be ordered by source position.
type positioned struct {
	pos     int
	content []model.Content
}

func translateBlock(block *hclsyntax.Block, info *model.FSInfo) (*model.Node, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	n := &model.Node{
		Type:          block.Type,
		Range:         block.DefRange(),
		FSInformation: info,
	}
	switch len(block.Labels) {
	case 0:
	case 1:
		n.Name = block.Labels[0]
	default:
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Too many labels",
			Detail:   fmt.Sprintf("A %s block takes at most one label, its name.", block.Type),
			Subject:  block.LabelRanges[1].Ptr(),
		})
		n.Name = block.Labels[0]
	}

	var items []positioned
	for _, attr := range sortedAttributes(block.Body) {
		switch attr.Name {
		case ContentAttribute:
			content, d := translateContent(attr.Expr)
			diags = append(diags, d...)
			items = append(items, positioned{pos: attr.SrcRange.Start.Byte, content: content})
		case ExtendAttribute:
			ref, d := translateReference(attr.Expr)
			diags = append(diags, d...)
			if !d.HasErrors() {
				n.Extend = &ref
			}
		default:
			content, d := translateContent(attr.Expr)
			diags = append(diags, d...)
			n.Attributes = append(n.Attributes, &model.Attribute{Name: attr.Name, Content: content, Range: attr.SrcRange})
		}
	}

	for _, nested := range block.Body.Blocks {
		child, d := translateBlock(nested, info)
		diags = append(diags, d...)
		items = append(items, positioned{pos: nested.Range().Start.Byte, content: []model.Content{child}})
	}

	slices.SortStableFunc(items, func(a, b positioned) int { return a.pos - b.pos })
	for _, it := range items {
		n.Children = append(n.Children, it.content...)
	}
	return n, diags
}

func sortedAttributes(body *hclsyntax.Body) []*hclsyntax.Attribute {
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	slices.SortFunc(attrs, func(a, b *hclsyntax.Attribute) int { return a.SrcRange.Start.Byte - b.SrcRange.Start.Byte })
	return attrs
}

// translateContent flattens an expression into content items: literals
// become text, traversals become references, templates and tuples are
// flattened in order.
func translateContent(expr hclsyntax.Expression) ([]model.Content, hcl.Diagnostics) {
	switch e := expr.(type) {
	case *hclsyntax.TemplateExpr:
		return translateAll(e.Parts)
	case *hclsyntax.TemplateWrapExpr:
		return translateContent(e.Wrapped)
	case *hclsyntax.TupleConsExpr:
		return translateAll(e.Exprs)
	case *hclsyntax.ScopeTraversalExpr:
		ref, diags := traversalReference(e)
		if diags.HasErrors() {
			return nil, diags
		}
		return []model.Content{&model.Ref{Reference: ref}}, nil
	case *hclsyntax.LiteralValueExpr:
		return literal(e.Val, e.SrcRange)
	}

	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unsupported content",
			Detail:   "Content must be text, a number, a bool, a reference, or a list of those.",
			Subject:  expr.Range().Ptr(),
		}}
	}
	return literal(v, expr.Range())
}

func translateAll(exprs []hclsyntax.Expression) ([]model.Content, hcl.Diagnostics) {
	var out []model.Content
	var diags hcl.Diagnostics
	for _, e := range exprs {
		content, d := translateContent(e)
		diags = append(diags, d...)
		out = append(out, content...)
	}
	return out, diags
}

func literal(v cty.Value, rng hcl.Range) ([]model.Content, hcl.Diagnostics) {
	if v.IsNull() {
		return nil, nil
	}
	if v.Type().IsTupleType() || v.Type().IsListType() {
		var out []model.Content
		var diags hcl.Diagnostics
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			content, d := literal(ev, rng)
			diags = append(diags, d...)
			out = append(out, content...)
		}
		return out, diags
	}
	s, err := convert.Convert(v, cty.String)
	if err != nil || !s.IsKnown() {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unsupported content",
			Detail:   fmt.Sprintf("A %s value cannot be used as content.", v.Type().FriendlyName()),
			Subject:  rng.Ptr(),
		}}
	}
	return []model.Content{&model.Text{Value: s.AsString(), Range: rng}}, nil
}

// translateReference reads the value of an extend attribute.
func translateReference(expr hclsyntax.Expression) (model.Reference, hcl.Diagnostics) {
	if wrap, ok := expr.(*hclsyntax.TemplateWrapExpr); ok {
		expr = wrap.Wrapped
	}
	traversal, ok := expr.(*hclsyntax.ScopeTraversalExpr)
	if !ok {
		return model.Reference{}, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid extend",
			Detail:   "The extend attribute takes a reference of the form name or name.prop.",
			Subject:  expr.Range().Ptr(),
		}}
	}
	return traversalReference(traversal)
}

func traversalReference(e *hclsyntax.ScopeTraversalExpr) (model.Reference, hcl.Diagnostics) {
	invalid := hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Invalid reference",
		Detail:   "References have the form name or name.prop.",
		Subject:  e.SrcRange.Ptr(),
	}}
	if len(e.Traversal) > 2 {
		return model.Reference{}, invalid
	}
	ref := model.Reference{Name: e.Traversal.RootName(), Range: e.SrcRange}
	if len(e.Traversal) == 2 {
		attr, ok := e.Traversal[1].(hcl.TraverseAttr)
		if !ok {
			return model.Reference{}, invalid
		}
		ref.Prop = attr.Name
	}
	return ref, nil
}
