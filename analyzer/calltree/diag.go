package calltree

import "statyc/analyzer/pymodel"

// Diagnostic kinds.
const (
	DiagUnresolved = "unresolved-call-target"
)

// Diagnostic is one non-fatal finding produced during a build. Diagnostics
// are kept as data so callers can decide whether to log, ignore or fail on
// them; they are never interleaved with tree output.
type Diagnostic struct {
	Kind    string
	Message string
	Line    int
	Col     int
}

func (b *Builder) report(kind, msg string, call *pymodel.Call) {
	b.diags = append(b.diags, Diagnostic{
		Kind:    kind,
		Message: msg,
		Line:    call.Line(),
		Col:     call.Col(),
	})
}
