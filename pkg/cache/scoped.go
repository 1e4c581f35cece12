package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// This is useful in server deployments where different users or contexts
// need separate cache namespaces.
//
// Example usage:
//
//	// User-specific keys for private documents
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
//
//	// Global keys for public image sources
//	globalKeyer := NewDefaultKeyer()
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

// ImageKey generates a prefixed key for fetched image bytes.
func (k *ScopedKeyer) ImageKey(source string, opts ImageKeyOpts) string {
	return k.prefix + k.inner.ImageKey(source, opts)
}

// DocumentKey generates a prefixed key for a parsed document.
func (k *ScopedKeyer) DocumentKey(docHash string, opts DocumentKeyOpts) string {
	return k.prefix + k.inner.DocumentKey(docHash, opts)
}
