package cache

// ScopedKeyer wraps a Keyer with a prefix so separate deployments or
// users sharing one backend get disjoint key spaces.
//
// Example usage:
//
//	// Per-request keys on a shared Redis instance
//	keyer := cache.NewScopedKeyer(nil, "tenant:acme:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every generated
// key. A nil inner keyer defaults to the standard one.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// DatasetKey generates a prefixed key for raw dataset bytes.
func (k *ScopedKeyer) DatasetKey(source string, opts DatasetKeyOpts) string {
	return k.prefix + k.inner.DatasetKey(source, opts)
}

// FigureKey generates a prefixed key for a figure specification.
func (k *ScopedKeyer) FigureKey(datasetHash string, opts FigureKeyOpts) string {
	return k.prefix + k.inner.FigureKey(datasetHash, opts)
}

// ArtifactKey generates a prefixed key for an exported artifact.
func (k *ScopedKeyer) ArtifactKey(figureHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(figureHash, opts)
}

// Ensure ScopedKeyer implements Keyer.
var _ Keyer = (*ScopedKeyer)(nil)
