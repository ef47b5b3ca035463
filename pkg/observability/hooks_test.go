package observability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// recorder counts movements and keeps the last rejection.
type recorder struct {
	NoopStockHooks
	mu        sync.Mutex
	movements int
	rejected  error
}

func (r *recorder) OnMovement(_ context.Context, _ int, _ string, _ int, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements++
	if err != nil {
		r.rejected = err
	}
}

type cacheRecorder struct{ NoopCacheHooks }
type httpRecorder struct{ NoopHTTPHooks }

func TestDefaultsAreNoop(t *testing.T) {
	t.Cleanup(Reset)
	ctx := context.Background()

	Stock().OnMovement(ctx, 10, "SKU-100", -5, time.Millisecond, nil)
	Stock().OnRoute(ctx, 1, 2, 17.5, time.Millisecond, nil)
	Cache().OnCacheHit(ctx, "render")
	Cache().OnCacheMiss(ctx, "render")
	Cache().OnCacheSet(ctx, "render", 1024)
	HTTP().OnRequest(ctx, "GET", "/locations")
	HTTP().OnResponse(ctx, "GET", "/locations", 200, time.Millisecond)

	if _, ok := Stock().(NoopStockHooks); !ok {
		t.Errorf("Stock() = %T", Stock())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T", HTTP())
	}
}

func TestInstalledHooksReceiveEvents(t *testing.T) {
	t.Cleanup(Reset)
	rec := &recorder{}
	SetStockHooks(rec)

	short := errors.New("only 3 left")
	Stock().OnMovement(context.Background(), 10, "SKU-100", 5, 0, nil)
	Stock().OnMovement(context.Background(), 10, "SKU-100", -9, 0, short)

	if rec.movements != 2 || rec.rejected != short {
		t.Errorf("movements=%d rejected=%v", rec.movements, rec.rejected)
	}
}

func TestSetAndReset(t *testing.T) {
	t.Cleanup(Reset)
	c, h := &cacheRecorder{}, &httpRecorder{}
	SetCacheHooks(c)
	SetHTTPHooks(h)
	if Cache() != c || HTTP() != h {
		t.Fatal("hooks not installed")
	}

	Reset()
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("after Reset Cache() = %T", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("after Reset HTTP() = %T", HTTP())
	}
}

func TestNilIsIgnored(t *testing.T) {
	t.Cleanup(Reset)
	rec := &recorder{}
	SetStockHooks(rec)
	SetStockHooks(nil)
	SetCacheHooks(nil)

	if Stock() != rec {
		t.Error("SetStockHooks(nil) replaced the installed hooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("SetCacheHooks(nil) replaced the default")
	}
}

func TestConcurrentAccess(t *testing.T) {
	t.Cleanup(Reset)
	rec := &recorder{}
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				SetStockHooks(rec)
			}
			Stock().OnRoute(context.Background(), 1, 2, 0, 0, nil)
		}()
	}
	wg.Wait()
	if Stock() != rec {
		t.Errorf("Stock() = %T", Stock())
	}
}
