// Package observability lets the CLI and server watch warehouse, cache and
// HTTP activity without those packages importing a logger or metrics client.
//
// Library code reports events through the accessor for its concern:
//
//	observability.Stock().OnMovement(ctx, location, sku, -5, elapsed, err)
//
// A binary installs real hooks once at startup with SetStockHooks,
// SetCacheHooks and SetHTTPHooks. Until then every event goes to a no-op.
package observability

import (
	"context"
	"sync"
	"time"
)

// StockHooks observes inventory changes and route queries.
type StockHooks interface {
	// OnMovement is called after every stock movement attempt. delta is
	// negative for removals and err is set when the movement was rejected.
	OnMovement(ctx context.Context, location int, sku string, delta int, duration time.Duration, err error)
	OnRoute(ctx context.Context, from, to int, distance float64, duration time.Duration, err error)
}

// CacheHooks observes render cache lookups. keyType names the cache
// ("render") so several caches can share one set of hooks.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks observes requests served by the HTTP API.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// NoopStockHooks ignores every event. Embed it to implement only some methods.
type NoopStockHooks struct{}

func (NoopStockHooks) OnMovement(context.Context, int, string, int, time.Duration, error) {}
func (NoopStockHooks) OnRoute(context.Context, int, int, float64, time.Duration, error)   {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

type registry struct {
	mu    sync.RWMutex
	stock StockHooks
	cache CacheHooks
	http  HTTPHooks
}

var hooks = newRegistry()

func newRegistry() *registry {
	return &registry{
		stock: NoopStockHooks{},
		cache: NoopCacheHooks{},
		http:  NoopHTTPHooks{},
	}
}

// install replaces *slot with h under the registry lock. A nil h is ignored.
func install[T comparable](slot *T, h T) {
	var zero T
	if h == zero {
		return
	}
	hooks.mu.Lock()
	*slot = h
	hooks.mu.Unlock()
}

// SetStockHooks installs h for warehouse events. A nil h is ignored.
func SetStockHooks(h StockHooks) { install(&hooks.stock, h) }

// SetCacheHooks installs h for cache events. A nil h is ignored.
func SetCacheHooks(h CacheHooks) { install(&hooks.cache, h) }

// SetHTTPHooks installs h for HTTP events. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) { install(&hooks.http, h) }

// Stock returns the installed stock hooks.
func Stock() StockHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.stock
}

// Cache returns the installed cache hooks.
func Cache() CacheHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.cache
}

// HTTP returns the installed HTTP hooks.
func HTTP() HTTPHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.http
}

// Reset puts the no-op hooks back. Tests call it in cleanup.
func Reset() {
	fresh := newRegistry()
	hooks.mu.Lock()
	hooks.stock, hooks.cache, hooks.http = fresh.stock, fresh.cache, fresh.http
	hooks.mu.Unlock()
}
