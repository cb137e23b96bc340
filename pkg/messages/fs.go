package messages

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// FSSource loads JSON and YAML catalogs from an fs.FS.
//
// Two layouts are recognised and may be mixed:
//
//	en.json              -> whole tree of locale "en"
//	de/common.json       -> subtree "common" of locale "de"
//	fr/errors.yaml       -> subtree "errors" of locale "fr" (.yml works too)
type FSSource struct {
	fsys fs.FS
}

// NewFSSource creates a source reading from fsys.
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

// Load walks the file system and decodes every catalog file.
func (s *FSSource) Load(ctx context.Context) (map[string]*Node, error) {
	trees := map[string]*Node{}

	err := fs.WalkDir(s.fsys, ".", func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		if unmarshalerFor(filePath) == nil {
			return nil
		}

		data, err := fs.ReadFile(s.fsys, filePath)
		if err != nil {
			return fmt.Errorf("reading %q: %w", filePath, err)
		}
		return addFile(trees, filePath, data)
	})
	if err != nil {
		return nil, err
	}
	return trees, nil
}

// addFile decodes one catalog file and merges it into trees according to
// its path relative to the catalog root.
func addFile(trees map[string]*Node, filePath string, data []byte) error {
	unmarshal := unmarshalerFor(filePath)
	if unmarshal == nil {
		return fmt.Errorf("%w: unsupported extension %q", ErrInvalidFile, filePath)
	}

	var decoded map[string]any
	if err := unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("%w: parsing %q: %s", ErrInvalidFile, filePath, err)
	}

	tree, err := FromMap(decoded)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidFile, filePath, err)
	}

	name := strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))
	dir := path.Dir(filePath)

	locale := name
	if dir != "." && dir != "" {
		// {locale}/{namespace}.ext
		locale = path.Base(dir)
		tree = Branch(map[string]*Node{name: tree})
	}
	if locale == "" {
		return fmt.Errorf("%w: %q", ErrEmptyLocale, filePath)
	}

	trees[locale] = Merge(trees[locale], tree)
	return nil
}

func unmarshalerFor(filePath string) func([]byte, any) error {
	switch strings.ToLower(path.Ext(filePath)) {
	case ".json":
		return json.Unmarshal
	case ".yaml", ".yml":
		return yaml.Unmarshal
	default:
		return nil
	}
}
