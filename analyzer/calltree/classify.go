package calltree

import (
	"errors"
	"fmt"

	"statyc/analyzer/pymodel"
)

// ErrUnsupportedCallShape marks a call whose target is a subscript
// expression, e.g. handlers[0](). Resolving such targets is not implemented;
// the current build must stop rather than skip them.
var ErrUnsupportedCallShape = errors.New("unsupported call shape: subscripted call target")

// Resolution is the outcome of classifying one call site. When Resolved is
// false, Hint carries a human-readable diagnostic; Callee may still be set
// for bare-name calls so the caller can record the target as a leaf.
type Resolution struct {
	Callee   string // simple name being called
	Owner    string // unit name or local object the callee is rooted in
	Resolved bool
	Hint     string
}

// Classify determines the callee name and owner of one call expression
// within its owning unit. It is a pure per-call-site classification and
// never recurses into callees.
//
// A bare name f() resolves against the unit's local function definitions.
// An attribute call x.f() resolves to owner x when x is a simple name; a
// chained target like g().f() unwraps the intermediate calls and reports the
// innermost base name as the owner, which is a best-effort approximation,
// not a semantic guarantee.
func Classify(call *pymodel.Call) (Resolution, error) {
	unit := call.Unit()
	fn := call.Node.ChildByFieldName("function")
	if fn == nil {
		return Resolution{Hint: "call expression has no target"}, nil
	}

	switch fn.Type() {
	case "identifier":
		name := unit.Text(fn)
		if unit.FunctionByName(name) != nil {
			return Resolution{Callee: name, Owner: unit.Name, Resolved: true}, nil
		}
		hint := fmt.Sprintf("%q is not a function definition in module %s; check for an import or a re-binding",
			name, unit.Name)
		if unit.ImportByName(name) != nil {
			hint = fmt.Sprintf("%q is imported into module %s, not defined there; cross-file resolution is not performed",
				name, unit.Name)
		}
		return Resolution{Callee: name, Owner: unit.Name, Hint: hint}, nil

	case "attribute":
		attr := fn.ChildByFieldName("attribute")
		if attr == nil {
			return Resolution{Hint: "attribute call without an attribute name"}, nil
		}
		callee := unit.Text(attr)

		base := fn.ChildByFieldName("object")
		for base != nil && base.Type() == "call" {
			inner := base.ChildByFieldName("function")
			if inner == nil {
				break
			}
			if inner.Type() == "attribute" {
				base = inner.ChildByFieldName("object")
			} else {
				base = inner
			}
		}
		if base == nil {
			return Resolution{Hint: "attribute call without a base object"}, nil
		}
		if base.Type() != "identifier" {
			return Resolution{Hint: fmt.Sprintf("attribute call on a %q target does not reduce to a simple name", base.Type())}, nil
		}
		return Resolution{Callee: callee, Owner: unit.Text(base), Resolved: true}, nil

	case "subscript":
		return Resolution{}, fmt.Errorf("%w at %s:%d:%d",
			ErrUnsupportedCallShape, unit.Path, call.Line(), call.Col())

	default:
		return Resolution{Hint: fmt.Sprintf("unhandled call target shape %q", fn.Type())}, nil
	}
}
