package diag

// Diagnostic is a single finding produced by a compilation phase. This
// layer works on IR rather than source text, so findings carry a function
// name instead of a source span.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Func     string
}
