package diag

import "testing"

func warn(fn, msg string) Diagnostic {
	return Diagnostic{Severity: SevWarning, Code: LowerNoRule, Message: msg, Func: fn}
}

func TestBagCapacityLimit(t *testing.T) {
	b := NewBag(2)
	if !b.Add(warn("a", "one")) || !b.Add(warn("a", "two")) {
		t.Fatalf("adds under the limit must succeed")
	}
	if b.Add(warn("a", "three")) {
		t.Fatalf("add past the limit must be dropped")
	}
	if b.Len() != 2 {
		t.Fatalf("len = %d, want 2", b.Len())
	}
}

func TestBagOversizedLimitClamps(t *testing.T) {
	// Limits past the uint16 range clamp instead of truncating to a
	// tiny or zero capacity.
	b := NewBag(1 << 16)
	if !b.Add(warn("a", "one")) {
		t.Fatalf("oversized limit must still accept diagnostics")
	}
	b = NewBag(1<<16 + 5)
	if !b.Add(warn("a", "one")) {
		t.Fatalf("oversized limit must still accept diagnostics")
	}
}

func TestBagSort(t *testing.T) {
	b := NewBag(10)
	b.Add(Diagnostic{Severity: SevWarning, Code: LowerNoRule, Func: "kb"})
	b.Add(Diagnostic{Severity: SevWarning, Code: LowerUnsupportedType, Func: "ka"})
	b.Add(Diagnostic{Severity: SevError, Code: LowerUnimplementable, Func: "ka"})
	b.Sort()

	items := b.Items()
	if items[0].Func != "ka" || items[0].Severity != SevError {
		t.Fatalf("errors of the first function must sort first: %+v", items[0])
	}
	if items[1].Func != "ka" || items[1].Code != LowerUnsupportedType {
		t.Fatalf("warnings follow errors within a function: %+v", items[1])
	}
	if items[2].Func != "kb" {
		t.Fatalf("later functions sort last: %+v", items[2])
	}
}
