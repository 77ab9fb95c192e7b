package translate

import (
	"github.com/roach88/bct/internal/bpl"
	"github.com/roach88/bct/internal/meta"
)

// DelegateEntry is one delegate type with its registered targets, in
// registration order.
type DelegateEntry struct {
	Type    *meta.TypeDefinition
	Targets []*bpl.Constant
}

// DelegateRegistry maps delegate types to the constants registered as their
// call targets. Types keep first-seen order; targets keep registration
// order and are de-duplicated by name. The registry is consumed once, by
// Drain, after which further registrations are rejected.
type DelegateRegistry struct {
	order   []*meta.TypeDefinition
	targets map[*meta.TypeDefinition][]*bpl.Constant
	drained bool
}

// NewDelegateRegistry returns an empty registry.
func NewDelegateRegistry() *DelegateRegistry {
	return &DelegateRegistry{targets: make(map[*meta.TypeDefinition][]*bpl.Constant)}
}

// AddType records t with no targets. Adding a known type is a no-op.
func (r *DelegateRegistry) AddType(t *meta.TypeDefinition) error {
	if r.drained {
		return unsupported(ErrCodeLateDelegateRegistration, t.FullName(),
			"delegate type recorded after dispatch synthesis")
	}
	if _, ok := r.targets[t]; !ok {
		r.order = append(r.order, t)
		r.targets[t] = nil
	}
	return nil
}

// Register appends c to t's targets, recording t if needed. Registering a
// constant with a name already present for t is a no-op.
func (r *DelegateRegistry) Register(t *meta.TypeDefinition, c *bpl.Constant) error {
	if r.drained {
		return unsupported(ErrCodeLateDelegateRegistration, t.FullName(),
			"target %s registered after dispatch synthesis", c.Name)
	}
	if err := r.AddType(t); err != nil {
		return err
	}
	for _, existing := range r.targets[t] {
		if existing.Name == c.Name {
			return nil
		}
	}
	r.targets[t] = append(r.targets[t], c)
	return nil
}

// Targets returns the constants registered for t so far.
func (r *DelegateRegistry) Targets(t *meta.TypeDefinition) []*bpl.Constant {
	return r.targets[t]
}

// Len returns the number of recorded delegate types.
func (r *DelegateRegistry) Len() int {
	return len(r.order)
}

// Drain returns every entry in first-seen order and closes the registry.
func (r *DelegateRegistry) Drain() []DelegateEntry {
	entries := make([]DelegateEntry, len(r.order))
	for i, t := range r.order {
		entries[i] = DelegateEntry{Type: t, Targets: r.targets[t]}
	}
	r.drained = true
	return entries
}
