package cache

import "strconv"

// Keyer derives cache keys.
type Keyer interface {
	// DesignKey returns the key for a rendered design. spec must capture
	// every option that changes the output.
	DesignKey(spec any) string
	// PolesKey returns the key for a pole table.
	PolesKey(family string, order int, rippleDB float64) string
}

// DefaultKeyer builds keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DesignKey hashes spec under the "design" prefix.
func (DefaultKeyer) DesignKey(spec any) string {
	return designDigest(spec)
}

// PolesKey returns "poles:<family>:<order>:<ripple>".
func (DefaultKeyer) PolesKey(family string, order int, rippleDB float64) string {
	return "poles:" + family + ":" + strconv.Itoa(order) + ":" + strconv.FormatFloat(rippleDB, 'g', -1, 64)
}
