package messages

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Source produces message trees keyed by locale.
type Source interface {
	Load(ctx context.Context) (map[string]*Node, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (map[string]*Node, error)

// Load calls f(ctx).
func (f SourceFunc) Load(ctx context.Context) (map[string]*Node, error) {
	return f(ctx)
}

// Static returns a Source serving fixed trees. Handy for tests and for
// catalogs compiled into the binary.
func Static(trees map[string]*Node) Source {
	return SourceFunc(func(context.Context) (map[string]*Node, error) {
		return trees, nil
	})
}

// Load reads all sources concurrently and merges them into one catalog.
// Sources are merged in argument order, so later sources override earlier
// ones key by key. Every tree is validated against the default delimiter.
func Load(ctx context.Context, sources ...Source) (*Catalog, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	results := make([]map[string]*Node, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			trees, err := src.Load(gctx)
			if err != nil {
				return errors.Join(ErrSourceFailed, err)
			}
			results[i] = trees
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	catalog := NewCatalog(nil)
	for _, trees := range results {
		for locale, tree := range trees {
			if locale == "" {
				return nil, ErrEmptyLocale
			}
			if err := Validate(tree, DefaultDelimiter); err != nil {
				return nil, fmt.Errorf("locale %q: %w", locale, err)
			}
			catalog = catalog.With(locale, tree)
		}
	}
	return catalog, nil
}
