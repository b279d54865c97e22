package embed

import (
	"context"
	"fmt"
	"sync"
)

// Cache wraps an Embedder and memoizes vectors by exact text so repeated
// texts are embedded once. Misses are forwarded to the inner embedder in a
// single batched call, preserving submission order.
//
// Entries live for the lifetime of the Cache and are never evicted, so the
// intended scope is one Cache per pipeline run. A Cache shared across runs
// grows with every distinct text it sees; call Reset between runs to bound
// it.
type Cache struct {
	inner Embedder

	mu     sync.Mutex
	byText map[string][]float64
}

var _ Embedder = (*Cache)(nil)

// NewCache creates a caching wrapper around inner.
func NewCache(inner Embedder) *Cache {
	return &Cache{
		inner:  inner,
		byText: make(map[string][]float64),
	}
}

// Embed returns one vector per text, serving cached texts locally and
// fetching the remaining distinct texts from the inner embedder in one call.
func (c *Cache) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyBatch
	}

	c.mu.Lock()
	var misses []string
	seen := make(map[string]bool)
	for _, text := range texts {
		if _, ok := c.byText[text]; ok || seen[text] {
			continue
		}
		seen[text] = true
		misses = append(misses, text)
	}
	c.mu.Unlock()

	if len(misses) > 0 {
		vectors, err := c.inner.Embed(ctx, misses)
		if err != nil {
			return nil, err
		}
		if err := validateVectors(misses, vectors); err != nil {
			return nil, err
		}
		c.mu.Lock()
		for i, text := range misses {
			c.byText[text] = vectors[i]
		}
		c.mu.Unlock()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]float64, len(texts))
	for i, text := range texts {
		vec, ok := c.byText[text]
		if !ok {
			return nil, fmt.Errorf("%w: missing vector for %q", ErrBatchSizeMismatch, text)
		}
		out[i] = vec
	}
	return out, nil
}

// Len returns the number of distinct texts currently cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.byText)
}

// Reset discards all cached vectors. Subsequent texts are fetched from the
// inner embedder again.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byText = make(map[string][]float64)
}
