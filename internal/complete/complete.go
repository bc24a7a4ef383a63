package complete

import (
	"fmt"
	"strings"

	"asls/internal/source"
	"asls/internal/typedb"
	"asls/internal/workspace"
)

// Complete lists the completion items at offset of module, best first.
// It returns nil when the cursor is inside a comment or string or the
// module is unknown.
func (r *Resolver) Complete(module source.ModuleID, offset uint32) []Item {
	span := r.span("complete", module, offset)
	var (
		items []Item
		kind  ContextKind
	)
	r.ws.Read(func(v workspace.View) {
		res := r.resolve(v, module, offset)
		if res == nil {
			return
		}
		kind = res.ctx.Kind
		items = res.complete()
	})
	span.Attr("context", kind.String()).End(fmt.Sprintf("%d items", len(items)))
	return items
}

func (r *resolution) complete() []Item {
	c := newCollector(r)
	switch r.ctx.Kind {
	case KindScope:
		c.scope()
	case KindMember:
		c.members(r.ctx.PriorType, false)
	case KindNamespace:
		c.namespace(r.ctx.Target)
	case KindTypeOnly:
		c.types(false)
	case KindNewName:
		c.newNames()
	case KindSpecifier:
		c.specifiers()
	case KindImport:
		c.imports()
	default:
		return nil
	}
	return c.finish()
}

// scope offers everything reachable by an unqualified name.
func (c *collector) scope() {
	r := c.r
	for _, v := range r.locals() {
		c.local(v)
	}
	if ut := r.usingType(); ut != nil {
		c.members(ut, true)
	}
	for _, ns := range r.namespaceChain() {
		for _, h := range r.db.Hierarchy(ns) {
			if !h.IsNamespace() {
				continue
			}
			c.ownSymbols(h, bucketInherited, false)
		}
	}
	c.types(true)
	c.expectedEnum()
	if r.opts.Keywords {
		c.keywords()
	}
}

// members offers the members of t reached through '.' or, when inScope,
// through the implicit this of a method body.
func (c *collector) members(t *typedb.Type, inScope bool) {
	if t == nil {
		return
	}
	r := c.r
	for _, h := range r.db.Hierarchy(t) {
		if h.IsNamespace() {
			continue
		}
		bucket := bucketInherited
		if h == t {
			bucket = bucketLocal
		}
		c.ownSymbols(h, bucket, true)
	}
	if !inScope {
		for _, m := range r.ucsFunctions(t) {
			if !c.matches(m.Name) {
				continue
			}
			c.add(Item{
				Label:  m.Name,
				Kind:   ItemMethod,
				Detail: m.Signature(),
				Doc:    r.opts.Docs(m.Doc, m),
				typ:    r.canonical(m.Return),
			}, bucketInherited, "")
		}
	}
}

// ownSymbols adds the visible symbols declared directly on t.
// Constructors and enum values only appear through "::".
func (c *collector) ownSymbols(t *typedb.Type, bucket int, member bool) {
	access := c.r.ctx.Access()
	for _, sym := range t.OwnSymbolsWithPrefix(c.prefix) {
		if member && !c.memberSymbol(sym) {
			continue
		}
		if !c.r.db.IsVisible(sym, access) {
			continue
		}
		c.symbol(sym, t, bucket)
	}
	// accessors are indexed under their Get name
	if member && c.prefix != "" {
		for _, m := range t.Methods {
			if m.Flags.Has(typedb.MemberAccessor) && strings.HasPrefix(m.Name, "Get") && c.r.db.IsVisible(m, access) {
				c.symbol(m, t, bucket)
			}
		}
	}
}

func (c *collector) memberSymbol(sym typedb.Symbol) bool {
	switch s := sym.(type) {
	case *typedb.Method:
		return !s.IsConstructor()
	case *typedb.Property:
		return !s.Flags.Has(typedb.MemberEnumValue)
	}
	return false
}

// namespace offers what follows "Target::".
func (c *collector) namespace(target *typedb.Type) {
	if target == nil {
		return
	}
	r := c.r
	if target.IsEnum() {
		for i, p := range target.Properties {
			if p.Flags.Has(typedb.MemberEnumValue) {
				c.enumValue(p.Name, p, target.Name, i, bucketLocal)
			}
		}
		return
	}
	access := r.ctx.Access()
	for _, h := range r.db.Hierarchy(target) {
		bucket := bucketInherited
		if h == target {
			bucket = bucketLocal
		}
		for _, sym := range h.OwnSymbolsWithPrefix(c.prefix) {
			if !h.IsNamespace() && !sym.SymbolFlags().Has(typedb.MemberStatic) {
				continue
			}
			if !r.db.IsVisible(sym, access) {
				continue
			}
			c.symbol(sym, h, bucket)
		}
	}
	c.childTypes(target.Name)
}

// childTypes adds the types and namespaces declared directly inside the
// namespace named parent; "" is the root.
func (c *collector) childTypes(parent string) {
	want := ""
	if parent != "" {
		want = parent + "::"
	}
	for _, t := range c.r.db.TypesWithPrefix(want) {
		rest := t.Name[len(want):]
		if rest == "" || strings.Contains(rest, "::") {
			continue
		}
		c.typeItem(t, rest)
	}
}

// types offers type names. Namespaces are included when the position can
// start a qualified expression.
func (c *collector) types(namespaces bool) {
	r := c.r
	for _, t := range r.db.TypesWithPrefix(c.prefix) {
		if t.IsNamespace() {
			if !namespaces || strings.Contains(t.Name, "::") {
				continue
			}
		} else if strings.Contains(t.Name, "::") {
			continue
		}
		c.typeItem(t, t.Name)
	}
	if namespaces && r.ctx.Namespace != "" {
		c.childTypes(r.ctx.Namespace)
	}
}

// expectedEnum offers qualified values of an expected enum type.
func (c *collector) expectedEnum() {
	if c.expected == "" {
		return
	}
	t := c.r.db.GetType(c.expected)
	if t == nil || !t.IsEnum() {
		return
	}
	for i, p := range t.Properties {
		if p.Flags.Has(typedb.MemberEnumValue) {
			c.enumValue(t.Name+"::"+p.Name, p, t.Name, i, bucketLocal)
		}
	}
}

// imports offers module names for an import statement.
func (c *collector) imports() {
	r := c.r
	for _, m := range r.v.Modules() {
		if m.ID == r.mod.ID || m.Name == "" {
			continue
		}
		if !typedb.HasFoldedPrefix(m.Name, c.prefix) {
			continue
		}
		c.add(Item{Label: m.Name, Kind: ItemModule, Detail: m.Path}, bucketLocal, "")
	}
}
