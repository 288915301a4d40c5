package commission

import "sync/atomic"

// Registry publishes the active Calculator. Replacements are copy-on-write so callers
// holding the previous Calculator keep a consistent table.
type Registry struct {
	current atomic.Pointer[Calculator]
}

func NewRegistry(calc *Calculator) *Registry {
	if calc == nil {
		panic("calculator is required")
	}
	r := &Registry{}
	r.current.Store(calc)
	return r
}

func (r *Registry) Current() *Calculator {
	return r.current.Load()
}

// Replace builds a Calculator from tiers and swaps it in. The active Calculator is left
// untouched when validation fails.
func (r *Registry) Replace(tiers []Tier, opts ...Option) (*Calculator, error) {
	calc, err := NewCalculator(tiers, opts...)
	if err != nil {
		return nil, err
	}
	r.current.Store(calc)
	return calc, nil
}
