package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// stockLogHooks logs stock movements and route lookups at debug level.
// Rejected movements are logged as warnings.
type stockLogHooks struct{ logger *log.Logger }

func (h stockLogHooks) OnMovement(_ context.Context, location int, sku string, delta int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("Movement rejected", "location", location, "sku", sku, "delta", delta, "error", err)
		return
	}
	h.logger.Debug("Movement", "location", location, "sku", sku, "delta", delta, "took", d)
}

func (h stockLogHooks) OnRoute(_ context.Context, from, to int, distance float64, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("Route failed", "from", from, "to", to, "error", err)
		return
	}
	h.logger.Debug("Route", "from", from, "to", to, "distance", distance, "took", d)
}

type cacheLogHooks struct{ logger *log.Logger }

func (h cacheLogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("Cache hit", "type", keyType)
}

func (h cacheLogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("Cache miss", "type", keyType)
}

func (h cacheLogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("Cache set", "type", keyType, "bytes", size)
}

type httpLogHooks struct{ logger *log.Logger }

func (h httpLogHooks) OnRequest(context.Context, string, string) {}

func (h httpLogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info(method+" "+path, "status", status, "took", d.Round(time.Microsecond))
}
