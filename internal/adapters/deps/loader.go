// Package deps reads the declarative module -> version file.
package deps

import (
	"os"
	"strings"
	"unicode/utf8"

	"go.trai.ch/modcache/internal/core/domain"
	"go.trai.ch/modcache/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.DependencyLoader = (*Loader)(nil)

// Loader implements ports.DependencyLoader for a flat YAML mapping.
//
// The file is decoded into a yaml.Node rather than a map so that module order and the
// exact spelling of version scalars survive.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and parses the dependency file at path.
func (l *Loader) Load(path string) (*domain.DependencySpec, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is user configuration
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDependencyFileRead.Error()), "path", path)
	}

	if !utf8.Valid(data) {
		err := zerr.With(domain.ErrDependencyFileParse, "reason", "file is not valid UTF-8")
		return nil, zerr.With(err, "path", path)
	}

	modules, err := parseModules(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	return &domain.DependencySpec{
		Raw:     strings.TrimSpace(string(data)),
		Modules: modules,
	}, nil
}

func parseModules(data []byte) ([]domain.Module, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, zerr.Wrap(err, domain.ErrDependencyFileParse.Error())
	}

	// An empty document declares no modules.
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return nil, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, zerr.With(zerr.With(domain.ErrDependencyFileParse, "reason", "top level must be a mapping"), "line", root.Line)
	}

	modules := make([]domain.Module, 0, len(root.Content)/2)
	seen := make(map[string]int, len(root.Content)/2)

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return nil, zerr.With(zerr.With(domain.ErrDependencyFileParse, "reason", "module name must be a non-empty string"), "line", key.Line)
		}
		if value.Kind != yaml.ScalarNode || value.Tag == "!!null" {
			err := zerr.With(domain.ErrDependencyFileParse, "reason", "version must be a scalar")
			return nil, zerr.With(zerr.With(err, "module", key.Value), "line", value.Line)
		}

		if first, dup := seen[key.Value]; dup {
			err := zerr.With(domain.ErrDuplicateModule, "module", key.Value)
			return nil, zerr.With(zerr.With(err, "line", key.Line), "first_line", first)
		}
		seen[key.Value] = key.Line

		modules = append(modules, domain.Module{Name: key.Value, Version: value.Value})
	}

	return modules, nil
}
