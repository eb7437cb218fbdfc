// Package diag defines the diagnostic model shared by the lowering
// pipeline phases.
//
// Diagnostic is the central record: a Severity, a compact numeric Code, a
// message and the name of the function the finding belongs to. Phases
// emit through a Reporter so they stay decoupled from storage and
// rendering; BagReporter aggregates into a Bag, which supports merging
// and deterministic sorting after parallel phases.
//
// The package performs no formatting beyond Bag.String and no IO; CLI
// rendering lives in cmd/ember.
package diag
