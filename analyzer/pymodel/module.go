// Package pymodel parses one Python compilation unit into a queryable model
// of its imports and function definitions. The model wraps tree-sitter nodes
// by composition and is immutable after construction; all lookups are pure.
package pymodel

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// SyntaxError reports the position of the first invalid construct in a file.
type SyntaxError struct {
	Path string
	Line int
	Col  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: syntax error", e.Path, e.Line, e.Col)
}

// Alias is one name bound by an import statement.
type Alias struct {
	Name   string // imported name as written ("os.path", "loads")
	AsName string // explicit `as` alias, empty if none
}

// ImportStatement is one `import X` or `from X import Y` statement together
// with the names it binds.
type ImportStatement struct {
	Node    *sitter.Node
	From    string // module path of a from-import, empty for plain imports
	Aliases []Alias
}

// FunctionDef wraps one function_definition node. The back-reference to the
// owning Module is used only for lookups, never to mutate it.
type FunctionDef struct {
	Node *sitter.Node
	Name string
	unit *Module
}

// Unit returns the module the definition was found in.
func (f *FunctionDef) Unit() *Module { return f.unit }

// Line returns the definition's 1-based source line.
func (f *FunctionDef) Line() int { return int(f.Node.StartPoint().Row) + 1 }

// Call wraps one call node found in a module.
type Call struct {
	Node *sitter.Node
	unit *Module
}

// Unit returns the module the call site was found in.
func (c *Call) Unit() *Module { return c.unit }

// Line returns the call's 1-based source line.
func (c *Call) Line() int { return int(c.Node.StartPoint().Row) + 1 }

// Col returns the call's 0-based source column.
func (c *Call) Col() int { return int(c.Node.StartPoint().Column) }

// Module is one parsed compilation unit: a name derived from the file path,
// plus every import and function definition found anywhere in the unit.
type Module struct {
	Name      string
	Path      string
	Imports   []*ImportStatement
	Functions []*FunctionDef

	source []byte
	tree   *sitter.Tree
}

// Parse parses Python source into a Module. The returned error is a
// *SyntaxError when the source is not syntactically valid.
func Parse(source []byte, path string) (*Module, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	root := tree.RootNode()
	if root.HasError() {
		line, col := firstErrorPosition(root)
		tree.Close()
		return nil, &SyntaxError{Path: path, Line: line, Col: col}
	}

	m := &Module{
		Name:   moduleName(path),
		Path:   path,
		source: source,
		tree:   tree,
	}
	m.collect(root)
	return m, nil
}

// Close releases the underlying tree-sitter tree.
func (m *Module) Close() { m.tree.Close() }

// Text returns the source text covered by a node.
func (m *Module) Text(n *sitter.Node) string {
	return string(m.source[n.StartByte():n.EndByte()])
}

// FunctionByName returns the first function definition with the given name,
// or nil. Later same-named definitions do not shadow earlier ones.
func (m *Module) FunctionByName(name string) *FunctionDef {
	for _, fn := range m.Functions {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}

// ImportByName returns the first import statement binding name, or nil. An
// explicit alias takes precedence: a statement importing `x as y` matches y
// and never x.
func (m *Module) ImportByName(name string) *ImportStatement {
	for _, imp := range m.Imports {
		for _, a := range imp.Aliases {
			if a.AsName != "" {
				if a.AsName == name {
					return imp
				}
				continue
			}
			if a.Name == name {
				return imp
			}
		}
	}
	return nil
}

// NewCall wraps a call node found in this module.
func (m *Module) NewCall(n *sitter.Node) *Call { return &Call{Node: n, unit: m} }

// Walk visits n and every node below it in document order.
func Walk(n *sitter.Node, visit func(*sitter.Node)) {
	if n == nil {
		return
	}
	visit(n)
	for i := 0; i < int(n.ChildCount()); i++ {
		Walk(n.Child(i), visit)
	}
}

// collect gathers imports and function definitions from the whole unit. The
// walk is deliberately unscoped: nested defs and inline imports count too.
func (m *Module) collect(root *sitter.Node) {
	Walk(root, func(n *sitter.Node) {
		switch n.Type() {
		case "import_statement":
			m.Imports = append(m.Imports, m.importStatement(n))
		case "import_from_statement":
			m.Imports = append(m.Imports, m.importFromStatement(n))
		case "function_definition":
			if name := n.ChildByFieldName("name"); name != nil {
				m.Functions = append(m.Functions, &FunctionDef{
					Node: n,
					Name: m.Text(name),
					unit: m,
				})
			}
		}
	})
}

// importStatement handles `import foo` and `import foo as bar`.
func (m *Module) importStatement(n *sitter.Node) *ImportStatement {
	imp := &ImportStatement{Node: n}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "dotted_name":
			imp.Aliases = append(imp.Aliases, Alias{Name: m.Text(child)})
		case "aliased_import":
			imp.Aliases = append(imp.Aliases, m.aliasedImport(child))
		}
	}
	return imp
}

// importFromStatement handles `from x import y`, aliased and wildcard forms.
// Names before the import keyword are the module path; names after it are
// the bound aliases.
func (m *Module) importFromStatement(n *sitter.Node) *ImportStatement {
	imp := &ImportStatement{Node: n}
	sawImport := false
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "import":
			sawImport = true
		case "relative_import":
			imp.From = m.Text(child)
		case "dotted_name":
			if !sawImport {
				imp.From = m.Text(child)
			} else {
				imp.Aliases = append(imp.Aliases, Alias{Name: m.Text(child)})
			}
		case "aliased_import":
			imp.Aliases = append(imp.Aliases, m.aliasedImport(child))
		case "wildcard_import":
			imp.Aliases = append(imp.Aliases, Alias{Name: "*"})
		case "identifier":
			if sawImport {
				imp.Aliases = append(imp.Aliases, Alias{Name: m.Text(child)})
			}
		}
	}
	return imp
}

// aliasedImport extracts the name and alias from `foo as bar`.
func (m *Module) aliasedImport(n *sitter.Node) Alias {
	var a Alias
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "dotted_name":
			a.Name = m.Text(child)
		case "identifier":
			a.AsName = m.Text(child)
		}
	}
	return a
}

func moduleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func firstErrorPosition(root *sitter.Node) (line, col int) {
	line, col = int(root.StartPoint().Row)+1, int(root.StartPoint().Column)
	found := false
	Walk(root, func(n *sitter.Node) {
		if found {
			return
		}
		if n.Type() == "ERROR" || n.IsMissing() {
			line, col = int(n.StartPoint().Row)+1, int(n.StartPoint().Column)
			found = true
		}
	})
	return line, col
}
