// Package analyzer ties the pipeline together: read one Python file, parse
// it into a source model, seed the call tree at one function, render the
// tree and log the diagnostics collected along the way.
package analyzer

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"statyc/analyzer/calltree"
	"statyc/analyzer/pymodel"
	"statyc/config"
)

// Options control one analysis run.
type Options struct {
	Function     string // seed function name
	DumpAST      bool   // dump the seed function's syntax tree before the call tree
	BuiltinsPath string // optional builtin registry override

	Out    io.Writer    // tree output; defaults to os.Stdout
	Logger *slog.Logger // diagnostic channel; defaults to slog.Default()
}

// RunAnalysis analyzes one file and writes the indented call tree rooted at
// the configured function. The whole run is synchronous and owns all of its
// state; two runs over the same input produce identical output.
func RunAnalysis(path string, opts Options) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	builtins := config.DefaultBuiltins()
	if opts.BuiltinsPath != "" {
		builtins, err = config.LoadBuiltins(opts.BuiltinsPath)
		if err != nil {
			return err
		}
	}

	mod, err := pymodel.Parse(source, path)
	if err != nil {
		return err
	}
	defer mod.Close()

	seed := mod.FunctionByName(opts.Function)
	if seed == nil {
		return fmt.Errorf("function %q is not defined in %s", opts.Function, path)
	}

	if opts.DumpAST {
		fmt.Fprintln(out, seed.Node.String())
	}

	builder := calltree.NewBuilder(builtins)
	tree, err := builder.Build(seed)
	if err != nil {
		return err
	}

	renderer := calltree.NewRenderer(out, builder)
	if err := renderer.Render(tree, mod.Name); err != nil {
		return err
	}

	for _, d := range builder.Diagnostics() {
		logger.Warn(d.Message,
			slog.String("kind", d.Kind),
			slog.String("file", path),
			slog.Int("line", d.Line),
			slog.Int("col", d.Col),
		)
	}
	return nil
}
