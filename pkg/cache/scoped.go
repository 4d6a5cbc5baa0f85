package cache

// ScopedKeyer wraps a Keyer with a prefix, giving callers that share one
// backend separate namespaces.
//
// Example usage:
//
//	// keys written by the HTTP server
//	serverKeyer := NewScopedKeyer(NewDefaultKeyer(), "albumgrid:server:")
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

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(opts)
}

// GroupsKey generates a prefixed key for partition caching.
func (k *ScopedKeyer) GroupsKey(opts GroupsKeyOpts) string {
	return k.prefix + k.inner.GroupsKey(opts)
}
