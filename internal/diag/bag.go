package diag

import (
	"fmt"
	"sort"
)

type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag creates a bag holding at most max diagnostics; max <= 0 means
// unbounded.
func NewBag(max int) *Bag {
	return &Bag{max: max}
}

// Add appends d unless the bag is full.
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	if b == nil {
		return 0
	}
	return len(b.items)
}

// Items returns the backing slice; do not modify.
func (b *Bag) Items() []Diagnostic {
	if b == nil {
		return nil
	}
	return b.items
}

// Count returns how many diagnostics carry code.
func (b *Bag) Count(code Code) int {
	n := 0
	for i := range b.Items() {
		if b.items[i].Code == code {
			n++
		}
	}
	return n
}

func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if b.max > 0 && len(b.items)+len(other.items) > b.max {
		b.max = len(b.items) + len(other.items)
	}
	b.items = append(b.items, other.items...)
}

// Sort orders by module, start, end, severity (desc), code.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.Module != dj.Primary.Module {
			return di.Primary.Module < dj.Primary.Module
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Dedup drops repeated Code+Primary pairs.
func (b *Bag) Dedup() {
	seen := make(map[string]bool)
	items := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := fmt.Sprintf("%d:%s", d.Code, d.Primary.String())
		if seen[key] {
			continue
		}
		seen[key] = true
		items = append(items, d)
	}
	b.items = items
}
