// loadplan/plan.go
package loadplan

import "fmt"

// PlanState tracks the load plan lifecycle. Transitions are monotonic
// except that an overweight condition reopens PALLETS_PLACED by
// popping the most recent pallet.
type PlanState int

const (
	StateEmpty PlanState = iota
	StateVehiclesPlaced
	StatePalletsPlaced
	StateBalanced
	StateFinalized
)

func (s PlanState) String() string {
	switch s {
	case StateEmpty:
		return "EMPTY"
	case StateVehiclesPlaced:
		return "VEHICLES_PLACED"
	case StatePalletsPlaced:
		return "PALLETS_PLACED"
	case StateBalanced:
		return "BALANCED"
	case StateFinalized:
		return "FINALIZED"
	default:
		return fmt.Sprintf("STATE(%d)", int(s))
	}
}

// PlacedPallet pairs a pallet with its placement.
type PlacedPallet struct {
	Pallet    *Pallet   `json:"pallet"`
	Placement PlacedBox `json:"placement"`
}

// PlacedVehicle pairs a rolling-stock item with its placement.
type PlacedVehicle struct {
	Item      CargoItem `json:"item"`
	Placement PlacedBox `json:"placement"`
}

// PlanTotals aggregates a finished plan.
type PlanTotals struct {
	WeightLb           float64 `json:"weightLb"`
	PositionsUsed      int     `json:"positionsUsed"`
	PositionsAvailable int     `json:"positionsAvailable"`
	Utilization        float64 `json:"utilization"`
}

// LoadPlan is everything loaded on one aircraft sortie. Once
// finalized, a plan is immutable.
type LoadPlan struct {
	ID        string `json:"id"`
	ProfileID string `json:"profileId"`
	Sequence  int    `json:"sequence"`
	Phase     Phase  `json:"phase"`

	Pallets    []PlacedPallet  `json:"pallets"`
	Vehicles   []PlacedVehicle `json:"vehicles"`
	Passengers []CargoItem     `json:"passengers,omitempty"`
	PaxCount   int             `json:"paxCount"`

	Totals PlanTotals `json:"totals"`
	CoB    CoBResult  `json:"cob"`
	Issues []Issue    `json:"issues,omitempty"`

	// paxWeightLb is carried separately: passengers load through seats,
	// not floor placements, so they count toward payload but not CoB.
	paxWeightLb float64

	state PlanState
}

// NewLoadPlan opens an empty plan for a profile, sequence, and phase.
func NewLoadPlan(profileID string, sequence int, phase Phase) *LoadPlan {
	return &LoadPlan{
		ID:        fmt.Sprintf("%s-%03d-%s", profileID, sequence, phase),
		ProfileID: profileID,
		Sequence:  sequence,
		Phase:     phase,
		state:     StateEmpty,
	}
}

// State returns the plan's lifecycle state.
func (lp *LoadPlan) State() PlanState {
	return lp.state
}

// transition advances the plan state. Going backward is only allowed
// through reopenPallets.
func (lp *LoadPlan) transition(to PlanState) error {
	if lp.state == StateFinalized {
		return fmt.Errorf("%w: %s", ErrPlanFinalized, lp.ID)
	}
	if to < lp.state {
		return fmt.Errorf("%w: %s -> %s", ErrPlanState, lp.state, to)
	}
	lp.state = to
	return nil
}

// reopenPallets steps a balanced plan back to PALLETS_PLACED so an
// overweight condition can pop the most recent pallet.
func (lp *LoadPlan) reopenPallets() error {
	if lp.state == StateFinalized {
		return fmt.Errorf("%w: %s", ErrPlanFinalized, lp.ID)
	}
	if lp.state != StateBalanced && lp.state != StatePalletsPlaced {
		return fmt.Errorf("%w: cannot reopen from %s", ErrPlanState, lp.state)
	}
	lp.state = StatePalletsPlaced
	return nil
}

// Placements collects every placed box in placement order: vehicles
// first, then pallets.
func (lp *LoadPlan) Placements() []PlacedBox {
	out := make([]PlacedBox, 0, len(lp.Vehicles)+len(lp.Pallets))
	for i := range lp.Vehicles {
		out = append(out, lp.Vehicles[i].Placement)
	}
	for i := range lp.Pallets {
		out = append(out, lp.Pallets[i].Placement)
	}
	return out
}

// TotalWeightLb is the current gross weight including passengers.
func (lp *LoadPlan) TotalWeightLb() float64 {
	w := lp.paxWeightLb
	for i := range lp.Vehicles {
		w += lp.Vehicles[i].Placement.WeightLb
	}
	for i := range lp.Pallets {
		w += lp.Pallets[i].Placement.WeightLb
	}
	return w
}

// Empty reports whether the plan carries no cargo and no passengers.
func (lp *LoadPlan) Empty() bool {
	return len(lp.Vehicles) == 0 && len(lp.Pallets) == 0 && lp.PaxCount == 0
}

// Items lists every cargo item the plan carries, in placement order.
func (lp *LoadPlan) Items() []CargoItem {
	var out []CargoItem
	for i := range lp.Vehicles {
		out = append(out, lp.Vehicles[i].Item)
	}
	for i := range lp.Pallets {
		out = append(out, lp.Pallets[i].Pallet.Items...)
	}
	out = append(out, lp.Passengers...)
	return out
}

// usedStations returns the station indices occupied by placed pallets.
func (lp *LoadPlan) usedStations() map[int]bool {
	used := make(map[int]bool, len(lp.Pallets))
	for i := range lp.Pallets {
		if idx := lp.Pallets[i].Placement.PositionIndex; idx >= 0 {
			used[idx] = true
		}
	}
	return used
}

// popLastPallet removes and returns the most recently placed pallet.
func (lp *LoadPlan) popLastPallet() (PlacedPallet, bool) {
	if len(lp.Pallets) == 0 {
		return PlacedPallet{}, false
	}
	last := lp.Pallets[len(lp.Pallets)-1]
	lp.Pallets = lp.Pallets[:len(lp.Pallets)-1]
	return last, true
}
