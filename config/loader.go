// Package config supplies the builtin-name registry consumed by the call
// tree builder. The registry is static configuration, a YAML list of names
// considered standard/global and therefore excluded from call-tree
// expansion.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed builtins.yaml
var defaultBuiltins []byte

type registryFile struct {
	Builtins []string `yaml:"builtins"`
}

// BuiltinRegistry is the set of names excluded from call-tree expansion.
type BuiltinRegistry struct {
	names map[string]struct{}
}

// Has reports whether name is a registered builtin.
func (r *BuiltinRegistry) Has(name string) bool {
	_, ok := r.names[name]
	return ok
}

// Len returns the number of registered names.
func (r *BuiltinRegistry) Len() int { return len(r.names) }

// LoadBuiltins reads a registry from a YAML file.
func LoadBuiltins(path string) (*BuiltinRegistry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseRegistry(b)
}

// DefaultBuiltins returns the embedded registry of Python builtin names.
func DefaultBuiltins() *BuiltinRegistry {
	r, err := parseRegistry(defaultBuiltins)
	if err != nil {
		panic(fmt.Sprintf("embedded builtins.yaml is invalid: %v", err))
	}
	return r
}

func parseRegistry(b []byte) (*BuiltinRegistry, error) {
	var f registryFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse builtins registry: %w", err)
	}
	r := &BuiltinRegistry{names: make(map[string]struct{}, len(f.Builtins))}
	for _, n := range f.Builtins {
		r.names[n] = struct{}{}
	}
	return r, nil
}
