package calltree

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"statyc/config"
)

// renderSeed builds the tree for the named function and renders it with an
// unstyled renderer so expected output is plain text.
func renderSeed(t *testing.T, source, name string) string {
	t.Helper()
	m := parseModule(t, source)
	fn := m.FunctionByName(name)
	require.NotNil(t, fn)

	b := NewBuilder(config.DefaultBuiltins())
	tree, err := b.Build(fn)
	require.NoError(t, err)

	var buf bytes.Buffer
	r := NewRenderer(&buf, b).WithStyle(lipgloss.NewStyle())
	require.NoError(t, r.Render(tree, m.Name))
	return buf.String()
}

func TestRenderMutualRecursionTerminates(t *testing.T) {
	out := renderSeed(t, `def a():
    b()

def b():
    a()
`, "a")
	require.Equal(t, "b\n· · a\n", out)
}

func TestRenderSelfRecursionTerminates(t *testing.T) {
	out := renderSeed(t, `def a():
    a()
`, "a")
	require.Equal(t, "a\n", out)
}

func TestRenderDeduplicatesRepeatedAttributeCalls(t *testing.T) {
	out := renderSeed(t, `def a():
    helper.run()
    helper.run()
`, "a")
	require.Equal(t, "helper.run\n", out)
}

func TestRenderEmptyTreeProducesNoLines(t *testing.T) {
	out := renderSeed(t, `def a():
    return print("done")
`, "a")
	require.Empty(t, out)
}

func TestRenderWalksAllOwnerGroupsInInsertionOrder(t *testing.T) {
	out := renderSeed(t, `def a():
    b()
    helper.run()

def b():
    store.flush()
`, "a")
	require.Equal(t, "b\n· · store.flush\nhelper.run\n", out)
}

func TestRenderIsDeterministicAcrossPasses(t *testing.T) {
	source := `def a():
    b()
    c()

def b():
    c()

def c():
    b()
`
	m := parseModule(t, source)
	fn := m.FunctionByName("a")
	require.NotNil(t, fn)

	b := NewBuilder(config.DefaultBuiltins())
	tree, err := b.Build(fn)
	require.NoError(t, err)

	var first, second bytes.Buffer
	r := NewRenderer(&first, b).WithStyle(lipgloss.NewStyle())
	require.NoError(t, r.Render(tree, m.Name))

	r = NewRenderer(&second, b).WithStyle(lipgloss.NewStyle())
	require.NoError(t, r.Render(tree, m.Name))

	// c is shown once, under b; the sibling entry is skipped by the
	// visited guard.
	require.Equal(t, first.String(), second.String())
	require.Equal(t, "b\n· · c\n", first.String())
}
