// Package calltree classifies call expressions, builds the owner-grouped
// call tree for a seed function and renders it as an indented listing.
package calltree

import (
	sitter "github.com/smacker/go-tree-sitter"

	"statyc/analyzer/pymodel"
	"statyc/config"
)

// Callee is one distinct call target grouped under an owner key.
type Callee struct {
	Name  string
	Owner string
	Call  *pymodel.Call // first call site encountered for this target
	local bool
}

// Local reports whether the callee resolves to a function definition of the
// unit itself and can therefore be expanded.
func (c Callee) Local() bool { return c.local }

// CallTree maps owner keys (the unit name or a local object name) to ordered
// sequences of distinct callees. Iteration order is first-encountered-first.
// A tree is built fresh per invocation and never mutated after being
// returned.
type CallTree struct {
	owners []string
	groups map[string][]Callee
}

func newCallTree() *CallTree {
	return &CallTree{groups: make(map[string][]Callee)}
}

// Owners returns the owner keys in insertion order.
func (t *CallTree) Owners() []string { return t.owners }

// Group returns the callees recorded under an owner key.
func (t *CallTree) Group(owner string) []Callee { return t.groups[owner] }

// Empty reports whether the tree holds no callees.
func (t *CallTree) Empty() bool { return len(t.owners) == 0 }

// add appends a callee to its owner group unless a structurally equal entry
// (same owner and callee name) is already present.
func (t *CallTree) add(c Callee) {
	group, ok := t.groups[c.Owner]
	if !ok {
		t.owners = append(t.owners, c.Owner)
	}
	for _, existing := range group {
		if existing.Name == c.Name {
			return
		}
	}
	t.groups[c.Owner] = append(group, c)
}

// Builder constructs call trees for function definitions within one unit.
// It accumulates non-fatal diagnostics as structured records instead of
// printing them inline with the tree.
type Builder struct {
	builtins *config.BuiltinRegistry
	diags    []Diagnostic
}

// NewBuilder returns a builder that skips calls to names in the given
// registry.
func NewBuilder(builtins *config.BuiltinRegistry) *Builder {
	return &Builder{builtins: builtins}
}

// Diagnostics returns the records accumulated across all builds so far.
func (b *Builder) Diagnostics() []Diagnostic { return b.diags }

// Build classifies every call expression found textually inside fn
// (unscoped: nested definitions are walked too) and groups the callees by
// owner. Calls to registered builtin names are skipped. A bare-name call
// with no local definition is recorded as a terminal leaf with an
// unresolved-call diagnostic. A subscript-rooted call target aborts the
// build with ErrUnsupportedCallShape.
func (b *Builder) Build(fn *pymodel.FunctionDef) (*CallTree, error) {
	unit := fn.Unit()
	tree := newCallTree()

	var calls []*pymodel.Call
	pymodel.Walk(fn.Node, func(n *sitter.Node) {
		if n.Type() == "call" {
			calls = append(calls, unit.NewCall(n))
		}
	})

	for _, call := range calls {
		res, err := Classify(call)
		if err != nil {
			return nil, err
		}
		if res.Callee == "" {
			b.report(DiagUnresolved, res.Hint, call)
			continue
		}
		if b.builtins.Has(res.Callee) {
			continue
		}
		if !res.Resolved {
			b.report(DiagUnresolved, res.Hint, call)
		}
		tree.add(Callee{
			Name:  res.Callee,
			Owner: res.Owner,
			Call:  call,
			local: res.Resolved && res.Owner == unit.Name,
		})
	}
	return tree, nil
}

// ExpandCall resolves a call site back to a local function definition and
// builds its subtree. A callee that is not a function definition of the
// unit itself (a foreign owner, or a name with no local definition) is a
// terminal leaf and yields an empty tree, not an error.
func (b *Builder) ExpandCall(call *pymodel.Call) (*CallTree, error) {
	res, err := Classify(call)
	if err != nil {
		return nil, err
	}
	unit := call.Unit()
	if !res.Resolved || res.Owner != unit.Name {
		return newCallTree(), nil
	}
	fn := unit.FunctionByName(res.Callee)
	if fn == nil {
		return newCallTree(), nil
	}
	return b.Build(fn)
}
