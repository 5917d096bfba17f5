package calltree

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const indentUnit = "· · "

// Renderer prints a call tree as an indented, deduplicated listing. Each
// renderer owns its visited set: a callee already shown in the current pass
// is skipped, which bounds the recursion on cyclic call graphs. Renderers
// are not safe for concurrent use; each render pass should own its own
// instance.
type Renderer struct {
	out     io.Writer
	builder *Builder
	style   lipgloss.Style
	seen    map[string]bool
}

// NewRenderer returns a renderer writing to out, with callee names in bold.
func NewRenderer(out io.Writer, builder *Builder) *Renderer {
	return &Renderer{
		out:     out,
		builder: builder,
		style:   lipgloss.NewStyle().Bold(true),
	}
}

// WithStyle overrides the callee name style.
func (r *Renderer) WithStyle(style lipgloss.Style) *Renderer {
	r.style = style
	return r
}

// Render starts a fresh pass over tree. Every owner group is walked in
// insertion order; each callee is printed once and, when it resolves to a
// function definition of the unit named unitName, expanded exactly once
// across the whole pass. An empty tree renders zero lines.
func (r *Renderer) Render(tree *CallTree, unitName string) error {
	r.seen = make(map[string]bool)
	return r.render(tree, unitName, 0)
}

func (r *Renderer) render(tree *CallTree, unitName string, depth int) error {
	for _, owner := range tree.Owners() {
		for _, callee := range tree.Group(owner) {
			key := callee.Owner + "." + callee.Name
			if r.seen[key] {
				continue
			}
			r.seen[key] = true

			label := r.style.Render(callee.Name)
			if callee.Owner != unitName {
				label = callee.Owner + "." + label
			}
			if _, err := fmt.Fprintf(r.out, "%s%s\n", strings.Repeat(indentUnit, depth), label); err != nil {
				return err
			}

			if !callee.Local() {
				continue
			}
			subtree, err := r.builder.ExpandCall(callee.Call)
			if err != nil {
				return err
			}
			if err := r.render(subtree, unitName, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}
