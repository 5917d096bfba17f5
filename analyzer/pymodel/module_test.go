package pymodel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, source, path string) *Module {
	t.Helper()
	m, err := Parse([]byte(source), path)
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func TestParseDerivesModuleNameFromPath(t *testing.T) {
	m := parse(t, "def a():\n    pass\n", "/tmp/workflows/query_graph.py")
	require.Equal(t, "query_graph", m.Name)
	require.Equal(t, "/tmp/workflows/query_graph.py", m.Path)
}

func TestFunctionCollectionIsUnscoped(t *testing.T) {
	source := `def outer():
    def inner():
        pass
    return inner

def trailing():
    pass
`
	m := parse(t, source, "sample.py")

	names := make([]string, 0, len(m.Functions))
	for _, fn := range m.Functions {
		names = append(names, fn.Name)
	}
	require.Equal(t, []string{"outer", "inner", "trailing"}, names)
}

func TestFunctionByNameReturnsFirstMatch(t *testing.T) {
	source := `def dup():
    return 1

def dup():
    return 2
`
	m := parse(t, source, "sample.py")

	fn := m.FunctionByName("dup")
	require.NotNil(t, fn)
	require.Equal(t, 1, fn.Line())
	require.Nil(t, m.FunctionByName("missing"))
}

func TestImportByNameHonorsAliases(t *testing.T) {
	source := `import os
import numpy as np
from json import loads
from collections import OrderedDict as OD

def f():
    pass
`
	m := parse(t, source, "sample.py")
	require.Len(t, m.Imports, 4)

	require.NotNil(t, m.ImportByName("os"))
	require.NotNil(t, m.ImportByName("np"))
	require.Nil(t, m.ImportByName("numpy"), "an explicit alias hides the original name")
	require.NotNil(t, m.ImportByName("loads"))
	require.NotNil(t, m.ImportByName("OD"))
	require.Nil(t, m.ImportByName("OrderedDict"))
	require.Nil(t, m.ImportByName("missing"))
}

func TestImportFromRecordsModulePath(t *testing.T) {
	m := parse(t, "from collections import OrderedDict\n", "sample.py")

	require.Len(t, m.Imports, 1)
	require.Equal(t, "collections", m.Imports[0].From)
	require.Equal(t, []Alias{{Name: "OrderedDict"}}, m.Imports[0].Aliases)
}

func TestInlineImportsAreCollected(t *testing.T) {
	source := `def f():
    import json
    return json.dumps({})
`
	m := parse(t, source, "sample.py")
	require.NotNil(t, m.ImportByName("json"))
}

func TestParseReportsSyntaxError(t *testing.T) {
	_, err := Parse([]byte("def broken(:\n    pass\n"), "bad.py")
	require.Error(t, err)

	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	require.Equal(t, "bad.py", se.Path)
	require.Positive(t, se.Line)
}
