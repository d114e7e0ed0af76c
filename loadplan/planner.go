// loadplan/planner.go
package loadplan

import "fmt"

// Utilization below this fraction flags an underutilized sortie.
const underutilizedThreshold = 0.25

// Planner builds per-aircraft load plans. It owns no state beyond its
// injected collaborators and may be reused across runs.
type Planner struct {
	Registry ProfileRegistry
	IDGen    IDGen
}

// NewPlanner returns a Planner over the given registry. With a nil id
// generator every run gets a fresh sequential generator, which keeps
// pallet ids stable across re-runs of the same input.
func NewPlanner(registry ProfileRegistry, gen IDGen) (*Planner, error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}
	return &Planner{Registry: registry, IDGen: gen}, nil
}

// idGenOrFresh resolves the injected generator, falling back to a
// fresh run-scoped sequential generator.
func idGenOrFresh(gen IDGen) IDGen {
	if gen == nil {
		return NewSequentialIDGen()
	}
	return gen
}

// packResidual is what a single aircraft could not take.
type packResidual struct {
	Vehicles []CargoItem
	Pallets  []*Pallet
	PaxItems []CargoItem
}

// Items flattens the residual back into cargo items.
func (r *packResidual) Items() []CargoItem {
	var out []CargoItem
	out = append(out, r.Vehicles...)
	for _, p := range r.Pallets {
		out = append(out, p.Items...)
	}
	out = append(out, r.PaxItems...)
	return out
}

// PlanAircraft plans one aircraft sortie for a phase group: vehicles
// are placed first, loose palletizable items are built into pallets
// and merged with the prebuilt ones, pallets are placed into the
// remaining floor space, and the plan is balanced. Items the aircraft
// cannot take are returned for the residual set.
func (pl *Planner) PlanAircraft(profileID string, group *PhaseGroup, sequence int) (*LoadPlan, []CargoItem, error) {
	profile, err := pl.Registry.Get(profileID)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving profile %q: %w", profileID, err)
	}
	if group == nil {
		return nil, nil, fmt.Errorf("%w: phase group is nil", ErrInvalidInput)
	}
	if sequence < 0 {
		return nil, nil, fmt.Errorf("%w: negative sequence %d", ErrInvalidInput, sequence)
	}

	pallets, unpalletized, buildIssues := BuildPallets(group.Palletizable, idGenOrFresh(pl.IDGen))
	for _, item := range group.Prebuilt {
		pallets = append(pallets, PalletFromPrebuilt(item))
	}

	plan, residual := pl.pack(profile, sequence, group.Phase, group.RollingStock, pallets, group.Passengers)
	plan.Issues = append(plan.Issues, buildIssues...)

	leftover := residual.Items()
	leftover = append(leftover, unpalletized...)
	return plan, leftover, nil
}

// pack runs the placement pipeline for one aircraft over an already
// prepared pending set. The fleet allocator calls this directly so
// pallets built once per phase survive intact across aircraft.
func (pl *Planner) pack(profile *AircraftProfile, sequence int, phase Phase,
	vehicles []CargoItem, pallets []*Pallet, paxItems []CargoItem) (*LoadPlan, *packResidual) {

	plan := NewLoadPlan(profile.TypeID, sequence, phase)
	residual := &packResidual{}

	vplacer := NewVehiclePlacer(profile)
	leftVehicles, vIssues := vplacer.Place(plan, vehicles)
	residual.Vehicles = leftVehicles
	plan.Issues = append(plan.Issues, vIssues...)
	plan.transition(StateVehiclesPlaced)

	free := NewFreeSpace(profile, plan.Placements())
	pplacer := NewPalletPlacer(profile)
	leftPallets, pIssues := pplacer.Place(plan, pallets, free)
	residual.Pallets = leftPallets
	plan.Issues = append(plan.Issues, pIssues...)
	plan.transition(StatePalletsPlaced)

	// Passengers board whole entries at a time; weight counts against
	// payload, seating is outside the floor plan.
	for _, pax := range paxItems {
		if plan.TotalWeightLb()+pax.WeightLb > profile.MaxPayloadLb {
			residual.PaxItems = append(residual.PaxItems, pax)
			continue
		}
		plan.Passengers = append(plan.Passengers, pax)
		plan.PaxCount += pax.PaxCount
		plan.paxWeightLb += pax.WeightLb
	}

	plan.CoB = ComputeCoB(profile, plan.Placements())
	plan.transition(StateBalanced)

	pl.enforcePayload(profile, plan, residual)
	pl.positionChecks(profile, plan)

	if !plan.CoB.InEnvelope {
		plan.Issues = append(plan.Issues, cobIssue(profile, plan.CoB))
	}

	plan.Totals = PlanTotals{
		WeightLb:           plan.TotalWeightLb(),
		PositionsUsed:      len(plan.usedStations()),
		PositionsAvailable: len(profile.Stations),
	}
	if profile.MaxPayloadLb > 0 {
		plan.Totals.Utilization = plan.Totals.WeightLb / profile.MaxPayloadLb
	}
	if !plan.Empty() && plan.Totals.Utilization < underutilizedThreshold {
		plan.Issues = append(plan.Issues, Issue{
			Severity:   SeverityInfo,
			Code:       CodeUnderutilized,
			Message:    fmt.Sprintf("sortie utilization %.1f%%", plan.Totals.Utilization*100),
			Suggestion: "consider consolidating onto fewer aircraft",
		})
	}

	plan.transition(StateFinalized)
	return plan, residual
}

// enforcePayload pops the most recently placed cargo until the plan is
// back under the aircraft payload limit. Pallets come off first, then
// vehicles; the CoB is recomputed once the shedding is done.
func (pl *Planner) enforcePayload(profile *AircraftProfile, plan *LoadPlan, residual *packResidual) {
	if plan.TotalWeightLb() <= profile.MaxPayloadLb {
		return
	}

	plan.Issues = append(plan.Issues, Issue{
		Severity:   SeverityWarning,
		Code:       CodeOverweightAircraft,
		Message:    fmt.Sprintf("gross %.0f lb exceeds the %.0f lb payload; shedding load", plan.TotalWeightLb(), profile.MaxPayloadLb),
		Suggestion: "allocate another aircraft",
	})

	for plan.TotalWeightLb() > profile.MaxPayloadLb {
		if pp, ok := plan.popLastPallet(); ok {
			plan.reopenPallets()
			residual.Pallets = append(residual.Pallets, pp.Pallet)
			continue
		}
		if n := len(plan.Vehicles); n > 0 {
			residual.Vehicles = append(residual.Vehicles, plan.Vehicles[n-1].Item)
			plan.Vehicles = plan.Vehicles[:n-1]
			continue
		}
		break
	}

	plan.CoB = ComputeCoB(profile, plan.Placements())
	plan.transition(StateBalanced)
}

// positionChecks verifies per-position weight limits on the finished
// placement set.
func (pl *Planner) positionChecks(profile *AircraftProfile, plan *LoadPlan) {
	stations := make(map[int]PalletStation, len(profile.Stations))
	for _, s := range profile.Stations {
		stations[s.Index] = s
	}
	for i := range plan.Pallets {
		box := &plan.Pallets[i].Placement
		s, ok := stations[box.PositionIndex]
		if !ok {
			continue
		}
		if limit := profile.StationLimit(s); box.WeightLb > limit {
			code := CodeOverweightPosition
			if s.Ramp {
				code = CodeOverweightRamp
			}
			plan.Issues = append(plan.Issues, Issue{
				Severity:   SeverityWarning,
				Code:       code,
				ItemRef:    box.ItemRef,
				Message:    fmt.Sprintf("gross %.0f lb exceeds the %.0f lb limit of position %d", box.WeightLb, limit, s.Index),
				Suggestion: "move the pallet to a main-deck position",
			})
		}
	}
}
