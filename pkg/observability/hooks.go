// Package observability provides hooks for metrics, tracing, and logging.
//
// The core packages stay free of observability frameworks: they emit
// events through small hook interfaces with no-op defaults, and the main
// program registers concrete implementations at startup. Any backend
// (OpenTelemetry, Prometheus, plain logging) can sit behind the hooks.
//
// # Usage
//
// Register hooks once before running the pipeline:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries emit events as they work:
//
//	observability.Pipeline().OnLoadStart(ctx, source)
//	// ... load the dataset ...
//	observability.Pipeline().OnLoadComplete(ctx, source, rows, elapsed, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the chart pipeline stages.
type PipelineHooks interface {
	// Load events cover reading or fetching a dataset.
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, rowCount int, duration time.Duration, err error)

	// Build events cover figure assembly.
	OnBuildStart(ctx context.Context, kind string, rowCount int)
	OnBuildComplete(ctx context.Context, kind string, duration time.Duration, err error)

	// Export events cover artifact rendering.
	OnExportStart(ctx context.Context, formats []string)
	OnExportComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyKind string)
	OnCacheMiss(ctx context.Context, keyKind string)
	OnCacheSet(ctx context.Context, keyKind string, size int)
}

// HTTPHooks receives events from outgoing HTTP requests.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, host, path string, err error)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnBuildStart(context.Context, string, int)                         {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, string, time.Duration, error)     {}
func (NoopPipelineHooks) OnExportStart(context.Context, []string)                           {}
func (NoopPipelineHooks) OnExportComplete(context.Context, []string, time.Duration, error)  {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks. Call once at startup
// before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Call once at startup.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks. Call once at startup.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores the no-op defaults. Primarily useful in tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
