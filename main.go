package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"statyc/analyzer"
)

var (
	functionName string
	dumpAST      bool
	builtinsPath string
)

var rootCmd = &cobra.Command{
	Use:   "statyc <file.py>",
	Short: "Print the static call tree rooted at one function in a Python file",
	Long: `statyc parses a single Python file and prints the tree of functions
reachable from a seed function, grouped by the module or object each callee
belongs to. Resolution is purely syntactic: imported names are terminal
leaves and no analyzed code is executed.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("cannot analyze %s: %w", path, err)
		}
		return analyzer.RunAnalysis(path, analyzer.Options{
			Function:     functionName,
			DumpAST:      dumpAST,
			BuiltinsPath: builtinsPath,
		})
	},
}

func init() {
	rootCmd.Flags().StringVarP(&functionName, "function", "f", "", "function to seed the call tree at (required)")
	rootCmd.Flags().BoolVar(&dumpAST, "dump", false, "dump the seed function's syntax tree before the call tree")
	rootCmd.Flags().StringVar(&builtinsPath, "builtins", "", "YAML registry of builtin names to exclude (defaults to the embedded registry)")
	cobra.CheckErr(rootCmd.MarkFlagRequired("function"))

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
