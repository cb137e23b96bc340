package messages

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Catalog maps locales to message trees. It is immutable: every method
// that changes content returns a new Catalog, so a loaded catalog can be
// shared by concurrent requests without locking.
type Catalog struct {
	trees map[string]*Node
}

// NewCatalog creates a catalog from locale trees. The map is copied.
func NewCatalog(trees map[string]*Node) *Catalog {
	c := &Catalog{trees: make(map[string]*Node, len(trees))}
	for locale, tree := range trees {
		if locale != "" && tree != nil {
			c.trees[locale] = tree
		}
	}
	return c
}

// Tree returns the message tree of a locale.
func (c *Catalog) Tree(locale string) (*Node, bool) {
	if c == nil {
		return nil, false
	}
	t, ok := c.trees[locale]
	return t, ok
}

// Locales returns the sorted list of locales present in the catalog.
func (c *Catalog) Locales() []string {
	if c == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(c.trees))
}

// With returns a copy of the catalog where tree is merged over the
// existing tree of locale.
func (c *Catalog) With(locale string, tree *Node) *Catalog {
	trees := map[string]*Node{}
	if c != nil {
		trees = maps.Clone(c.trees)
	}
	trees[locale] = Merge(trees[locale], tree)
	return NewCatalog(trees)
}

// Lookup resolves key in each locale in order and returns the first node
// found together with the locale that held it. When every locale misses,
// the error from the first locale is returned.
func (c *Catalog) Lookup(locales []string, key, delim string) (*Node, string, error) {
	var firstErr error
	for _, locale := range locales {
		tree, ok := c.Tree(locale)
		if !ok {
			continue
		}
		n, err := Resolve(tree, key, delim)
		if err == nil {
			return n, locale, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = fmt.Errorf("%w: %q (no messages for %s)", ErrMissingMessage, key, strings.Join(locales, ", "))
	}
	return nil, "", firstErr
}

// LookupMessage is Lookup restricted to leaves. A locale whose node at key
// is a namespace does not end the search; the next locale in order is
// consulted.
func (c *Catalog) LookupMessage(locales []string, key, delim string) (string, string, error) {
	var firstErr error
	for _, locale := range locales {
		tree, ok := c.Tree(locale)
		if !ok {
			continue
		}
		msg, err := ResolveMessage(tree, key, delim)
		if err == nil {
			return msg, locale, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = fmt.Errorf("%w: %q (no messages for %s)", ErrMissingMessage, key, strings.Join(locales, ", "))
	}
	return "", "", firstErr
}

// Chain returns the lookup order for a locale: the locale itself, its
// base language ("de-AT" -> "de") and the fallback locale, deduplicated.
func Chain(locale, fallback string) []string {
	chain := make([]string, 0, 3)
	add := func(l string) {
		if l != "" && !slices.Contains(chain, l) {
			chain = append(chain, l)
		}
	}
	add(locale)
	add(BaseLanguage(locale))
	add(fallback)
	return chain
}

// BaseLanguage strips the region from a language tag (e.g., "en-US" -> "en").
// Returns the input unchanged if there is no region.
func BaseLanguage(locale string) string {
	if i := strings.IndexAny(locale, "-_"); i > 0 {
		return locale[:i]
	}
	return locale
}
