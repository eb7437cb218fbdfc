package ir

import (
	"fmt"
	"sort"

	"fortio.org/safecast"
)

// OpID uniquely identifies a registered operation. Two call sites refer
// to the same operation exactly when their OpIDs are equal; names are
// never compared after registration.
type OpID uint32

// NoOpID marks the absence of an operation.
const NoOpID OpID = 0

// NumInputsAny marks operations without a fixed input arity.
const NumInputsAny = -1

// Well-known attribute keys.
const (
	// AttrGlobalSymbol holds the target symbol the code generator emits
	// for calls to the operation.
	AttrGlobalSymbol = "global_symbol"
	// AttrNeedWarpSync marks operations whose surrounding region must
	// establish warp-synchronization context.
	AttrNeedWarpSync = "need_warp_sync"
)

// Op describes a registered operation.
type Op struct {
	Name      string
	NumInputs int // exact required arity, NumInputsAny for variadic
}

// OpRegistry interns operations by name and stores per-operation
// attribute metadata. It is populated once during initialization, sealed,
// and safe for concurrent readers afterwards.
type OpRegistry struct {
	ops    []Op
	attrs  []map[string]any
	index  map[string]OpID
	sealed bool
}

// NewOpRegistry constructs an empty registry. OpID 0 is reserved as the
// invalid sentinel.
func NewOpRegistry() *OpRegistry {
	r := &OpRegistry{
		index: make(map[string]OpID, 64),
	}
	r.ops = append(r.ops, Op{})
	r.attrs = append(r.attrs, nil)
	return r
}

// Register interns a new operation. Duplicate names and registration
// after Seal are programmer errors.
func (r *OpRegistry) Register(name string, numInputs int) OpID {
	if r.sealed {
		panic(fmt.Sprintf("ir: Register(%q) after Seal", name))
	}
	if name == "" {
		panic("ir: Register with empty name")
	}
	if _, ok := r.index[name]; ok {
		panic(fmt.Sprintf("ir: duplicate op %q", name))
	}
	lenOps, err := safecast.Conv[uint32](len(r.ops))
	if err != nil {
		panic(fmt.Errorf("len(ops) overflow: %w", err))
	}
	id := OpID(lenOps)
	r.ops = append(r.ops, Op{Name: name, NumInputs: numInputs})
	r.attrs = append(r.attrs, nil)
	r.index[name] = id
	return id
}

// SetAttr attaches attribute metadata to a registered operation.
func (r *OpRegistry) SetAttr(id OpID, key string, value any) {
	if r.sealed {
		panic(fmt.Sprintf("ir: SetAttr(%q) after Seal", key))
	}
	if !r.valid(id) {
		panic("ir: SetAttr on invalid OpID")
	}
	if r.attrs[id] == nil {
		r.attrs[id] = make(map[string]any, 4)
	}
	r.attrs[id][key] = value
}

// Seal freezes the registry. Any later Register or SetAttr panics.
func (r *OpRegistry) Seal() {
	r.sealed = true
}

// Sealed reports whether the registry has been frozen.
func (r *OpRegistry) Sealed() bool {
	return r.sealed
}

// Lookup resolves a name to its OpID.
func (r *OpRegistry) Lookup(name string) (OpID, bool) {
	id, ok := r.index[name]
	return id, ok
}

// MustOp panics when the name is not registered. Use for operations the
// caller registered itself during initialization.
func (r *OpRegistry) MustOp(name string) OpID {
	id, ok := r.index[name]
	if !ok {
		panic(fmt.Sprintf("ir: unknown op %q", name))
	}
	return id
}

// Get returns the descriptor for an OpID.
func (r *OpRegistry) Get(id OpID) (Op, bool) {
	if !r.valid(id) {
		return Op{}, false
	}
	return r.ops[id], true
}

// Name returns the registered name, or "" for an invalid id.
func (r *OpRegistry) Name(id OpID) string {
	if !r.valid(id) {
		return ""
	}
	return r.ops[id].Name
}

// NumInputs returns the registered arity, or NumInputsAny for an invalid id.
func (r *OpRegistry) NumInputs(id OpID) int {
	if !r.valid(id) {
		return NumInputsAny
	}
	return r.ops[id].NumInputs
}

// AttrString reads a string attribute.
func (r *OpRegistry) AttrString(id OpID, key string) (string, bool) {
	if !r.valid(id) || r.attrs[id] == nil {
		return "", false
	}
	s, ok := r.attrs[id][key].(string)
	return s, ok
}

// AttrBool reads a boolean attribute; absent attributes read as false.
func (r *OpRegistry) AttrBool(id OpID, key string) bool {
	if !r.valid(id) || r.attrs[id] == nil {
		return false
	}
	b, _ := r.attrs[id][key].(bool)
	return b
}

// Names returns all registered operation names in sorted order.
func (r *OpRegistry) Names() []string {
	names := make([]string, 0, len(r.index))
	for name := range r.index {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *OpRegistry) valid(id OpID) bool {
	return id != NoOpID && int(id) < len(r.ops)
}
