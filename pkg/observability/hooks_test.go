package observability

import (
	"context"
	"testing"
	"time"
)

type countingPipelineHooks struct {
	NoopPipelineHooks
	loads, builds, exports int
}

func (h *countingPipelineHooks) OnLoadStart(context.Context, string)       { h.loads++ }
func (h *countingPipelineHooks) OnBuildStart(context.Context, string, int) { h.builds++ }
func (h *countingPipelineHooks) OnExportStart(context.Context, []string)   { h.exports++ }

type countingCacheHooks struct {
	NoopCacheHooks
	hits, misses int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)  { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string) { h.misses++ }

func TestHookRegistration(t *testing.T) {
	t.Cleanup(Reset)
	ctx := context.Background()

	ph := &countingPipelineHooks{}
	SetPipelineHooks(ph)
	Pipeline().OnLoadStart(ctx, "elements.csv")
	Pipeline().OnBuildStart(ctx, "table", 118)
	Pipeline().OnExportStart(ctx, []string{"svg"})
	if ph.loads != 1 || ph.builds != 1 || ph.exports != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1", ph.loads, ph.builds, ph.exports)
	}

	ch := &countingCacheHooks{}
	SetCacheHooks(ch)
	Cache().OnCacheHit(ctx, "dataset")
	Cache().OnCacheMiss(ctx, "artifact")
	if ch.hits != 1 || ch.misses != 1 {
		t.Errorf("cache counts = %d/%d, want 1/1", ch.hits, ch.misses)
	}
}

func TestSetNilKeepsCurrentHooks(t *testing.T) {
	t.Cleanup(Reset)

	ph := &countingPipelineHooks{}
	SetPipelineHooks(ph)
	SetPipelineHooks(nil)
	Pipeline().OnLoadStart(context.Background(), "x")
	if ph.loads != 1 {
		t.Errorf("loads = %d, want 1", ph.loads)
	}
}

func TestReset(t *testing.T) {
	SetPipelineHooks(&countingPipelineHooks{})
	SetCacheHooks(&countingCacheHooks{})
	SetHTTPHooks(NoopHTTPHooks{})
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("pipeline hooks not reset")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("cache hooks not reset")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("http hooks not reset")
	}

	// Completing events on no-op hooks must be safe.
	Pipeline().OnLoadComplete(context.Background(), "x", 0, time.Millisecond, nil)
}
