// Package catalog provides prototype catalogs for the respool registry: a
// directory-backed catalog that decodes one prototype per YAML or JSON file,
// and an in-memory catalog for hosts that assemble prototypes themselves.
package catalog

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/poolforge/repool/pkg/poolerrors"
)

// Dir is a directory-backed prototype catalog. Every regular file with a
// .yaml, .yml, or .json extension is one prototype document; Load resolves
// names against file stems, so "ember" matches ember.yaml before ember.json.
// T must be a pointer type for documents to decode into.
type Dir[T any] struct {
	// New allocates an empty prototype to decode a document into.
	New func() T
}

// NewDir creates a directory catalog decoding into prototypes allocated by
// newFn.
func NewDir[T any](newFn func() T) *Dir[T] {
	return &Dir[T]{New: newFn}
}

// extensions in Load resolution order.
var extensions = []string{".yaml", ".yml", ".json"}

// LoadAll decodes every prototype document under path, in file-name order.
func (d *Dir[T]) LoadAll(path string) ([]T, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, poolerrors.Wrap(err, poolerrors.ErrorTypeCatalog, "catalog directory unreadable").
			WithDetail("path", path)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !supported(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	protos := make([]T, 0, len(names))
	for _, name := range names {
		proto, err := d.decodeFile(filepath.Join(path, name))
		if err != nil {
			return nil, err
		}
		protos = append(protos, proto)
	}
	return protos, nil
}

// Load decodes the single prototype whose file stem matches name.
func (d *Dir[T]) Load(path, name string) (T, error) {
	for _, ext := range extensions {
		fp := filepath.Join(path, name+ext)
		if info, err := os.Stat(fp); err == nil && !info.IsDir() {
			return d.decodeFile(fp)
		}
	}
	var zero T
	return zero, poolerrors.New(poolerrors.ErrorTypeCatalog, "prototype not found").
		WithDetail("name", name).
		WithDetail("path", path)
}

func (d *Dir[T]) decodeFile(fp string) (T, error) {
	var zero T
	data, err := os.ReadFile(fp) //nolint:gosec // G304: catalog path is controlled by the host
	if err != nil {
		return zero, poolerrors.Wrap(err, poolerrors.ErrorTypeCatalog, "prototype file unreadable").
			WithDetail("file", fp)
	}

	proto := d.New()
	switch strings.ToLower(filepath.Ext(fp)) {
	case ".json":
		err = json.Unmarshal(data, proto)
	default:
		err = yaml.Unmarshal(data, proto)
	}
	if err != nil {
		return zero, poolerrors.Wrap(err, poolerrors.ErrorTypeCatalog, "prototype decode failed").
			WithDetail("file", fp)
	}
	return proto, nil
}

func supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Static is an in-memory catalog keyed by prototype name. The path argument
// of the Catalog contract is ignored.
type Static[T any] struct {
	protos map[string]T
}

// NewStatic creates a catalog over the given name-to-prototype mapping.
func NewStatic[T any](protos map[string]T) *Static[T] {
	return &Static[T]{protos: protos}
}

// LoadAll returns every prototype, in sorted name order.
func (s *Static[T]) LoadAll(string) ([]T, error) {
	names := make([]string, 0, len(s.protos))
	for name := range s.protos {
		names = append(names, name)
	}
	sort.Strings(names)

	protos := make([]T, 0, len(names))
	for _, name := range names {
		protos = append(protos, s.protos[name])
	}
	return protos, nil
}

// Load returns the prototype registered under name.
func (s *Static[T]) Load(_, name string) (T, error) {
	proto, ok := s.protos[name]
	if !ok {
		var zero T
		return zero, poolerrors.New(poolerrors.ErrorTypeCatalog, "prototype not found").
			WithDetail("name", name)
	}
	return proto, nil
}
