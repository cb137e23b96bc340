package i18n

import (
	"context"
	"sync"

	"github.com/dmitrymomot/intl/pkg/cache"
	"github.com/dmitrymomot/intl/pkg/icu"
)

var defaultDescriptors = sync.OnceValue(func() cache.Cache[*icu.Message] {
	return cache.NewLRU[*icu.Message](cache.DefaultLRUSize)
})

// NewDescriptorCache returns an LRU for parsed messages, for services that
// want to size or share it explicitly.
func NewDescriptorCache(size int) *cache.LRU[*icu.Message] {
	return cache.NewLRU[*icu.Message](size)
}

// parse returns the descriptor of src, parsing it at most once per cache
// lifetime. Syntax errors are not cached.
func parse(ctx context.Context, c cache.Cache[*icu.Message], src string) (*icu.Message, error) {
	return cache.GetOrSet(ctx, c, src, 0, func(context.Context) (*icu.Message, error) {
		return icu.Parse(src)
	})
}
