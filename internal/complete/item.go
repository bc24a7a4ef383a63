package complete

import (
	"fmt"
	"sort"
	"strings"

	"asls/internal/scope"
	"asls/internal/typedb"
)

// ItemKind classifies a completion item.
type ItemKind uint8

const (
	ItemText ItemKind = iota
	ItemVariable
	ItemField
	ItemProperty
	ItemMethod
	ItemFunction
	ItemConstructor
	ItemClass
	ItemStruct
	ItemEnum
	ItemEnumMember
	ItemConstant
	ItemNamespace
	ItemModule
	ItemEvent
	ItemKeyword
	ItemSpecifier
)

var itemKindNames = [...]string{
	ItemText:        "text",
	ItemVariable:    "variable",
	ItemField:       "field",
	ItemProperty:    "property",
	ItemMethod:      "method",
	ItemFunction:    "function",
	ItemConstructor: "constructor",
	ItemClass:       "class",
	ItemStruct:      "struct",
	ItemEnum:        "enum",
	ItemEnumMember:  "enum-member",
	ItemConstant:    "constant",
	ItemNamespace:   "namespace",
	ItemModule:      "module",
	ItemEvent:       "event",
	ItemKeyword:     "keyword",
	ItemSpecifier:   "specifier",
}

func (k ItemKind) String() string {
	if int(k) < len(itemKindNames) {
		return itemKindNames[k]
	}
	return "text"
}

// Item is one completion proposal. SortText orders items; clients show
// them in SortText order.
type Item struct {
	Label      string
	Kind       ItemKind
	Detail     string
	Doc        string
	SortText   string
	InsertText string
	Preselect  bool

	bucket int
	// typ is the canonical type of the value the item produces.
	typ string
}

// Sort buckets, best first.
const (
	bucketExpected = iota
	bucketLocal
	bucketInherited
	bucketType
	bucketKeyword
)

type collector struct {
	r        *resolution
	prefix   string
	expected string
	items    []Item
	seen     map[string]int
}

func newCollector(r *resolution) *collector {
	return &collector{
		r:        r,
		prefix:   r.ctx.Prefix,
		expected: r.ctx.Expected,
		seen:     make(map[string]int),
	}
}

func (c *collector) matches(names ...string) bool {
	for _, n := range names {
		if typedb.HasFoldedPrefix(n, c.prefix) {
			return true
		}
	}
	return false
}

// add files it under bucket unless it matches the expected type. key
// orders items inside the bucket and defaults to the label. A label seen
// before keeps its better ranked entry.
func (c *collector) add(it Item, bucket int, key string) {
	if c.expected != "" && it.typ == c.expected && bucket != bucketKeyword {
		bucket = bucketExpected
	}
	if key == "" {
		key = it.Label
	}
	it.bucket = bucket
	it.SortText = fmt.Sprintf("%d_%s", bucket, key)
	if i, ok := c.seen[it.Label]; ok {
		if c.items[i].SortText <= it.SortText {
			return
		}
		c.items[i] = it
		return
	}
	c.seen[it.Label] = len(c.items)
	c.items = append(c.items, it)
}

func (c *collector) local(v scope.Variable) {
	if !c.matches(v.Name) {
		return
	}
	c.add(Item{
		Label:  v.Name,
		Kind:   ItemVariable,
		Detail: v.Type + " " + v.Name,
		Doc:    v.Doc,
		typ:    c.r.localType(&v).name,
	}, bucketLocal, "")
}

// symbol adds a property or method declared on owner.
func (c *collector) symbol(sym typedb.Symbol, owner *typedb.Type, bucket int) {
	r := c.r
	switch s := sym.(type) {
	case *typedb.Property:
		if !c.matches(s.Name) {
			return
		}
		kind := ItemField
		switch {
		case s.Flags.Has(typedb.MemberEnumValue):
			kind = ItemEnumMember
		case owner.IsNamespace() && s.Flags.Has(typedb.MemberConst):
			kind = ItemConstant
		case owner.IsNamespace():
			kind = ItemVariable
		}
		c.add(Item{
			Label:  s.Name,
			Kind:   kind,
			Detail: s.Label(),
			Doc:    r.opts.Docs(s.Doc, nil),
			typ:    r.canonical(s.Type),
		}, bucket, "")
	case *typedb.Method:
		if s.Flags.Has(typedb.MemberAccessor) && len(s.Name) > 3 && strings.HasPrefix(s.Name, "Get") && len(s.Args) == 0 {
			if name := s.Name[3:]; c.matches(name) {
				c.add(Item{
					Label:  name,
					Kind:   ItemProperty,
					Detail: s.Return + " " + name,
					Doc:    r.opts.Docs(s.Doc, s),
					typ:    r.canonical(s.Return),
				}, bucket, "")
			}
		}
		if !c.matches(s.Name) {
			return
		}
		kind := ItemMethod
		switch {
		case s.IsConstructor():
			kind = ItemConstructor
		case owner.IsNamespace():
			kind = ItemFunction
		}
		c.add(Item{
			Label:  s.Name,
			Kind:   kind,
			Detail: s.Signature(),
			Doc:    r.opts.Docs(s.Doc, s),
			typ:    r.canonical(s.Return),
		}, bucket, "")
	}
}

// enumValue adds a value keeping declaration order inside its bucket.
func (c *collector) enumValue(label string, p *typedb.Property, enum string, index, bucket int) {
	if !c.matches(label, p.Name) {
		return
	}
	detail := p.Name
	if p.Value != "" {
		detail += " = " + p.Value
	}
	c.add(Item{
		Label:  label,
		Kind:   ItemEnumMember,
		Detail: detail,
		Doc:    c.r.opts.Docs(p.Doc, nil),
		typ:    enum,
	}, bucket, fmt.Sprintf("%05d", index))
}

func (c *collector) typeItem(t *typedb.Type, label string) {
	if !c.matches(label) {
		return
	}
	kind, detail := typeDetail(t)
	c.add(Item{
		Label:  label,
		Kind:   kind,
		Detail: detail,
		Doc:    c.r.opts.Docs(t.Doc, nil),
	}, bucketType, "")
}

func typeDetail(t *typedb.Type) (ItemKind, string) {
	kind, detail := ItemClass, "class "+t.Name
	switch {
	case t.IsNamespace():
		kind, detail = ItemNamespace, "namespace "+t.Name
	case t.IsEnum():
		kind, detail = ItemEnum, "enum "+t.Name
	case t.Flags.Has(typedb.TypeEvent):
		kind, detail = ItemEvent, "event "+t.Name
	case t.Flags.Has(typedb.TypeDelegate):
		detail = "delegate " + t.Name
	case t.Flags.Has(typedb.TypePrimitive):
		kind, detail = ItemKeyword, t.Name
	case t.Flags.Has(typedb.TypeStruct):
		kind, detail = ItemStruct, "struct "+t.Name
	}
	super := t.Super
	if super == "" {
		super = t.HostSuper
	}
	if super != "" {
		detail += " : " + super
	}
	return kind, detail
}

func (c *collector) keyword(kw string) {
	if !c.matches(kw) {
		return
	}
	c.add(Item{Label: kw, Kind: ItemKeyword}, bucketKeyword, "")
}

// finish orders the items, marks the preselected one and applies the
// item limit.
func (c *collector) finish() []Item {
	items := c.items
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].SortText != items[j].SortText {
			return items[i].SortText < items[j].SortText
		}
		return items[i].Label < items[j].Label
	})
	if c.r.opts.Preselect {
		preselect(items, c.prefix)
	}
	if max := c.r.opts.MaxItems; max > 0 && len(items) > max {
		items = items[:max]
	}
	return items
}

// preselect marks an item only when it is the single expected-type match
// or the single exact spelling of the prefix.
func preselect(items []Item, prefix string) {
	if len(items) == 0 {
		return
	}
	expected := 0
	for _, it := range items {
		if it.bucket == bucketExpected {
			expected++
		}
	}
	if expected == 1 {
		items[0].Preselect = true
		return
	}
	if expected > 1 || prefix == "" {
		return
	}
	exact := -1
	for i, it := range items {
		if it.Label == prefix {
			if exact >= 0 {
				return
			}
			exact = i
		}
	}
	if exact >= 0 {
		items[exact].Preselect = true
	}
}
