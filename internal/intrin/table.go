package intrin

import (
	"fmt"
	"sort"
)

// Table binds rule names of the form intrin.<backend>.<base> to
// dispatchers. It is populated during initialization, sealed, and only
// read afterwards, so concurrent lowering needs no locking.
type Table struct {
	rules  map[string]Dispatcher
	sealed bool
}

// NewTable constructs an empty rule table.
func NewTable() *Table {
	return &Table{rules: make(map[string]Dispatcher, 32)}
}

// Register binds a rule name. Names are unique; duplicates and
// registration after Seal are programmer errors.
func (t *Table) Register(name string, d Dispatcher) {
	if t.sealed {
		panic(fmt.Sprintf("intrin: Register(%q) after Seal", name))
	}
	if d == nil {
		panic(fmt.Sprintf("intrin: Register(%q) with nil dispatcher", name))
	}
	if _, ok := t.rules[name]; ok {
		panic(fmt.Sprintf("intrin: duplicate rule %q", name))
	}
	t.rules[name] = d
}

// Seal freezes the table.
func (t *Table) Seal() {
	t.sealed = true
}

// Lookup resolves a rule name by exact string match.
func (t *Table) Lookup(name string) (Dispatcher, bool) {
	d, ok := t.rules[name]
	return d, ok
}

// Names returns all registered rule names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.rules))
	for name := range t.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
