package apptree

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_types.yaml
var defaultTypesYAML []byte

// ApplicationType describes one kind of application instance.
type ApplicationType struct {
	Name        string `yaml:"name"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Singleton   bool   `yaml:"singleton"`
}

// DisplayTitle falls back to the type name when no title is declared.
func (t ApplicationType) DisplayTitle() string {
	if title := strings.TrimSpace(t.Title); title != "" {
		return title
	}
	return t.Name
}

type registryFile struct {
	Types []ApplicationType `yaml:"types"`
}

// Registry is the immutable set of registered application types.
type Registry struct {
	types  []ApplicationType
	byName map[string]int
}

// DefaultRegistry returns the registry compiled into the binary.
func DefaultRegistry() (*Registry, error) {
	return ParseRegistry(defaultTypesYAML)
}

// LoadRegistry reads the registry from path, or the embedded default when path is empty.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultRegistry()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read application types %s: %w", path, err)
	}
	reg, err := ParseRegistry(data)
	if err != nil {
		return nil, fmt.Errorf("load application types %s: %w", path, err)
	}
	return reg, nil
}

func ParseRegistry(data []byte) (*Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse application types: %w", err)
	}

	reg := &Registry{byName: make(map[string]int, len(file.Types))}
	for i, t := range file.Types {
		t.Name = strings.TrimSpace(t.Name)
		t.Title = strings.TrimSpace(t.Title)
		if t.Name == "" {
			return nil, fmt.Errorf("application type #%d: name is required", i+1)
		}
		if _, dup := reg.byName[t.Name]; dup {
			return nil, fmt.Errorf("application type %q declared more than once", t.Name)
		}
		reg.byName[t.Name] = len(reg.types)
		reg.types = append(reg.types, t)
	}
	if len(reg.types) == 0 {
		return nil, errors.New("no application types declared")
	}
	return reg, nil
}

// Types returns the registered types in declaration order.
func (r *Registry) Types() []ApplicationType {
	if r == nil {
		return nil
	}
	out := make([]ApplicationType, len(r.types))
	copy(out, r.types)
	return out
}

func (r *Registry) Lookup(name string) (ApplicationType, bool) {
	if r == nil {
		return ApplicationType{}, false
	}
	idx, ok := r.byName[strings.TrimSpace(name)]
	if !ok {
		return ApplicationType{}, false
	}
	return r.types[idx], true
}
