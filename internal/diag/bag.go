package diag

import (
	"fmt"
	"math"
	"sort"

	"fortio.org/safecast"
)

// Bag accumulates diagnostics up to a fixed capacity.
type Bag struct {
	items []Diagnostic
	max   uint16
}

func NewBag(max int) *Bag {
	if max <= 0 {
		max = 100
	}
	limit, err := safecast.Conv[uint16](max)
	if err != nil {
		limit = math.MaxUint16
	}
	return &Bag{
		items: make([]Diagnostic, 0, limit),
		max:   limit,
	}
}

// Add appends a diagnostic, honoring the capacity limit.
// Returns false when the diagnostic was not added.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Items returns the accumulated diagnostics.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Len returns the number of accumulated diagnostics.
func (b *Bag) Len() int {
	return len(b.items)
}

// HasErrors reports whether any diagnostic has error severity.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity == SevError {
			return true
		}
	}
	return false
}

// Merge appends all diagnostics from another bag.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	for _, d := range other.items {
		b.Add(d)
	}
}

// Sort orders diagnostics by function name, then severity (errors first),
// then code, for deterministic output after parallel phases.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		a, c := b.items[i], b.items[j]
		if a.Func != c.Func {
			return a.Func < c.Func
		}
		if a.Severity != c.Severity {
			return a.Severity > c.Severity
		}
		return a.Code < c.Code
	})
}

// String renders the bag in a compact single-line-per-diagnostic form.
func (b *Bag) String() string {
	out := ""
	for _, d := range b.items {
		loc := ""
		if d.Func != "" {
			loc = d.Func + ": "
		}
		out += fmt.Sprintf("%s[%s] %s%s\n", d.Severity, d.Code, loc, d.Message)
	}
	return out
}
