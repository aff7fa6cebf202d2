package cache

// ScopedKeyer wraps a Keyer with a prefix so that several producers can
// share one store without colliding. The server scopes its keys with
// "api:" so a redis instance can also back CLI runs.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
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

// DesignKey generates a prefixed design key.
func (k *ScopedKeyer) DesignKey(spec any) string {
	return k.prefix + k.inner.DesignKey(spec)
}

// PolesKey generates a prefixed pole table key.
func (k *ScopedKeyer) PolesKey(family string, order int, rippleDB float64) string {
	return k.prefix + k.inner.PolesKey(family, order, rippleDB)
}
