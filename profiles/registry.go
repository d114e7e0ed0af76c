// profiles/registry.go
package profiles

import (
	"fmt"

	"github.com/davidkohl/stratus/loadplan"
	"github.com/davidkohl/stratus/profiles/c130"
	"github.com/davidkohl/stratus/profiles/c17"
)

// Registry is the reference ProfileRegistry: an immutable, ordered set
// of aircraft profiles keyed by type id.
type Registry struct {
	byID  map[string]*loadplan.AircraftProfile
	order []string
}

// New builds a registry from the given profiles, validating each.
func New(profs ...*loadplan.AircraftProfile) (*Registry, error) {
	r := &Registry{byID: make(map[string]*loadplan.AircraftProfile, len(profs))}
	for _, p := range profs {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("registering profile: %w", err)
		}
		if _, exists := r.byID[p.TypeID]; exists {
			return nil, fmt.Errorf("%w: duplicate type id %q", loadplan.ErrInvalidProfile, p.TypeID)
		}
		r.byID[p.TypeID] = p
		r.order = append(r.order, p.TypeID)
	}
	return r, nil
}

// Default returns the registry with the reference C-17A, C-130H, and
// C-130J profiles.
func Default() *Registry {
	r, err := New(c17.New(), c130.NewH(), c130.NewJ())
	if err != nil {
		// The reference profiles are compiled in; failing to build them
		// is a programming error.
		panic(err)
	}
	return r
}

// Get returns the profile for the given type id.
func (r *Registry) Get(typeID string) (*loadplan.AircraftProfile, error) {
	p, ok := r.byID[typeID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", loadplan.ErrUnknownProfile, typeID)
	}
	return p, nil
}

// Types returns all registered type ids in registration order.
func (r *Registry) Types() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
