package cache

// ScopedKeyer wraps a Keyer with a prefix so separate projects or CI jobs
// sharing one Redis instance get isolated namespaces.
//
// Example usage:
//
//	projectKeyer := NewScopedKeyer(NewDefaultKeyer(), "proj:sensor-hub:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PlacementKey generates a prefixed key for placement caching.
func (k *ScopedKeyer) PlacementKey(designHash string, opts PlacementKeyOpts) string {
	return k.prefix + k.inner.PlacementKey(designHash, opts)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(designHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(designHash, opts)
}
