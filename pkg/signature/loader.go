// Package signature loads named byte patterns from YAML files.
package signature

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/praetorian-inc/sigscan/pkg/pattern"
	"github.com/praetorian-inc/sigscan/pkg/types"
	"gopkg.in/yaml.v3"
)

// Loader handles loading signatures from YAML files.
type Loader struct {
	fs fs.FS // embedded filesystem for built-in signatures
}

// NewLoader creates a loader with built-in signatures from embedded filesystem.
func NewLoader() *Loader {
	return &Loader{
		fs: builtinSignaturesFS,
	}
}

// NewLoaderWithFS creates a loader whose builtin set comes from fsys.
// fsys must contain a "signatures" directory.
func NewLoaderWithFS(fsys fs.FS) *Loader {
	return &Loader{
		fs: fsys,
	}
}

// LoadSignatures parses every signature in YAML bytes.
// Each pattern is compiled; the first invalid one aborts loading.
func (l *Loader) LoadSignatures(data []byte) ([]*types.Signature, error) {
	var file yamlSignaturesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(file.Signatures) == 0 {
		return nil, fmt.Errorf("no signatures found in YAML")
	}

	sigs := make([]*types.Signature, 0, len(file.Signatures))
	for _, ys := range file.Signatures {
		sig, err := convertYAMLSignature(ys)
		if err != nil {
			return nil, err
		}
		sigs = append(sigs, sig)
	}
	if err := checkDuplicates(sigs); err != nil {
		return nil, err
	}
	return sigs, nil
}

// LoadFile loads signatures from a YAML file path.
func (l *Loader) LoadFile(path string) ([]*types.Signature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	sigs, err := l.LoadSignatures(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sigs, nil
}

// LoadPath loads a single file, or every .yml/.yaml file below a directory.
func (l *Loader) LoadPath(path string) ([]*types.Signature, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return l.LoadFile(path)
	}

	sigs, err := loadTree(os.DirFS(path), ".")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sigs, nil
}

// LoadBuiltin loads all built-in signatures from embedded filesystem.
func (l *Loader) LoadBuiltin() ([]*types.Signature, error) {
	return loadTree(l.fs, "signatures")
}

// loadTree parses every YAML file below root in fsys.
func loadTree(fsys fs.FS, root string) ([]*types.Signature, error) {
	var sigs []*types.Signature

	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isYAML(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		var file yamlSignaturesFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}

		for _, ys := range file.Signatures {
			sig, err := convertYAMLSignature(ys)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			sigs = append(sigs, sig)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := checkDuplicates(sigs); err != nil {
		return nil, err
	}
	return sigs, nil
}

func isYAML(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yml" || ext == ".yaml"
}

// convertYAMLSignature converts yamlSignature to types.Signature,
// compiles its pattern and computes StructuralID.
func convertYAMLSignature(ys yamlSignature) (*types.Signature, error) {
	if _, err := pattern.Compile(ys.Pattern); err != nil {
		return nil, fmt.Errorf("signature %q: %w", ys.ID, err)
	}

	s := &types.Signature{
		ID:               ys.ID,
		Name:             ys.Name,
		Pattern:          ys.Pattern,
		Description:      ys.Description,
		Examples:         ys.Examples,
		NegativeExamples: ys.NegativeExamples,
		References:       ys.References,
		Categories:       ys.Categories,
	}
	s.StructuralID = s.ComputeStructuralID()
	return s, nil
}

func checkDuplicates(sigs []*types.Signature) error {
	seen := make(map[string]bool, len(sigs))
	for _, s := range sigs {
		if seen[s.ID] {
			return fmt.Errorf("duplicate signature ID: %s", s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}
