package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Errorf("empty cache: hit=%v err=%v", hit, err)
	}

	if err := c.Set(ctx, "key", []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit {
		t.Fatalf("Get after Set: hit=%v err=%v", hit, err)
	}
	if string(data) != "payload" {
		t.Errorf("data = %q", data)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("entry survived Delete")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("deleting absent key: %v", err)
	}
}

func TestFileCacheExpiration(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "short", []byte("x"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, err := c.Get(ctx, "short"); err != nil || hit {
		t.Errorf("expired entry: hit=%v err=%v", hit, err)
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("x"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, err := c.Get(ctx, "key"); err != nil || hit {
		t.Errorf("null cache stored an entry: hit=%v err=%v", hit, err)
	}
}

func TestDefaultKeyerDeterminism(t *testing.T) {
	k := NewDefaultKeyer()

	a := k.DatasetKey("https://example.com/elements.csv", DatasetKeyOpts{Format: "csv"})
	b := k.DatasetKey("https://example.com/elements.csv", DatasetKeyOpts{Format: "csv"})
	if a != b {
		t.Errorf("equal inputs produced different keys: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "dataset:") {
		t.Errorf("key = %q, want dataset: prefix", a)
	}

	c := k.DatasetKey("https://example.com/elements.csv", DatasetKeyOpts{Format: "xlsx"})
	if a == c {
		t.Error("different options produced the same key")
	}

	fig := k.FigureKey("abc", FigureKeyOpts{Kind: "table", Attribute: "atomic_weight"})
	art := k.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg"})
	if !strings.HasPrefix(fig, "figure:") || !strings.HasPrefix(art, "artifact:") {
		t.Errorf("kind prefixes: %q, %q", fig, art)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "tenant:acme:")

	base := inner.FigureKey("abc", FigureKeyOpts{Kind: "scale", Scale: "en_pauling"})
	got := scoped.FigureKey("abc", FigureKeyOpts{Kind: "scale", Scale: "en_pauling"})
	if got != "tenant:acme:"+base {
		t.Errorf("scoped key = %q", got)
	}

	fallback := NewScopedKeyer(nil, "p:")
	if !strings.HasPrefix(fallback.DatasetKey("s", DatasetKeyOpts{}), "p:dataset:") {
		t.Error("nil inner keyer did not fall back to the default")
	}
}
