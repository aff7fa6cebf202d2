package pipeline

import (
	"context"

	"github.com/bson/filtergen/pkg/cache"
	"github.com/bson/filtergen/pkg/filter/pole"
	"github.com/bson/filtergen/pkg/observability"
)

// PoleTable is a family's stage list for one order.
type PoleTable struct {
	Family   string      `json:"family" msgpack:"family"`
	Order    int         `json:"order" msgpack:"order"`
	RippleDB float64     `json:"ripple_db,omitempty" msgpack:"ripple_db"`
	Poles    []pole.Pole `json:"poles" msgpack:"poles"`
}

// Poles returns the pole table for family and order, reading it from the
// cache when present.
func (r *Runner) Poles(ctx context.Context, family string, order int, rippleDB float64) (*PoleTable, error) {
	fam, err := pole.Lookup(family, rippleDB)
	if err != nil {
		return nil, err
	}
	t := &PoleTable{Family: fam.Name(), Order: order}
	if c, ok := fam.(pole.Chebyshev); ok {
		t.RippleDB = c.RippleDB
	}

	key := r.Keyer.PolesKey(t.Family, order, t.RippleDB)
	var cached PoleTable
	if hit, err := cache.GetValue(ctx, r.Cache, key, &cached); err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	} else if hit {
		observability.Cache().OnCacheHit(ctx, "poles")
		return &cached, nil
	}
	observability.Cache().OnCacheMiss(ctx, "poles")

	if t.Poles, err = fam.Poles(order); err != nil {
		return nil, err
	}
	if err := cache.SetValue(ctx, r.Cache, key, t, cache.TTLPoles); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "poles", len(t.Poles))
	}
	return t, nil
}
