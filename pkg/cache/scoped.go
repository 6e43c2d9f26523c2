package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one Redis or Mongo backend.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer falls back to the default scheme.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// CycleKey returns the prefixed cycle key.
func (k *ScopedKeyer) CycleKey(n int) string { return k.prefix + k.inner.CycleKey(n) }

// ControlKey returns the prefixed control-sequence key.
func (k *ScopedKeyer) ControlKey(n int) string { return k.prefix + k.inner.ControlKey(n) }

// VerifyKey returns the prefixed verification key.
func (k *ScopedKeyer) VerifyKey(n int, strategy string, cycle []int) string {
	return k.prefix + k.inner.VerifyKey(n, strategy, cycle)
}
