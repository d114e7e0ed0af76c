// loadplan/fleet.go
package loadplan

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Mode selects the allocation policy. Each mode maps to a weight
// triple over (preference, cost, aircraft count) summing to 1.
type Mode int

const (
	ModePreferredFirst Mode = iota
	ModeOptimizeCost
	ModeMinAircraft
	ModeUserLocked
)

func (m Mode) String() string {
	switch m {
	case ModePreferredFirst:
		return "PREFERRED_FIRST"
	case ModeOptimizeCost:
		return "OPTIMIZE_COST"
	case ModeMinAircraft:
		return "MIN_AIRCRAFT"
	case ModeUserLocked:
		return "USER_LOCKED"
	default:
		return fmt.Sprintf("MODE(%d)", int(m))
	}
}

// MarshalText serializes the mode under its symbolic name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseMode maps a mode token to a Mode.
func ParseMode(token string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "PREFERRED_FIRST":
		return ModePreferredFirst, nil
	case "OPTIMIZE_COST":
		return ModeOptimizeCost, nil
	case "MIN_AIRCRAFT":
		return ModeMinAircraft, nil
	case "USER_LOCKED":
		return ModeUserLocked, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, token)
	}
}

// weights returns the (preference, cost, aircraft-count) triple.
func (m Mode) weights() (float64, float64, float64) {
	switch m {
	case ModeOptimizeCost:
		return 0.1, 0.6, 0.3
	case ModeMinAircraft:
		return 0.1, 0.4, 0.5
	case ModeUserLocked:
		return 1.0, 0, 0
	default: // ModePreferredFirst
		return 0.5, 0.3, 0.2
	}
}

// FleetType is the availability of one aircraft type.
type FleetType struct {
	TypeID    string  `json:"typeId"`
	Count     int     `json:"count"`
	Locked    bool    `json:"locked,omitempty"`
	PayloadLb float64 `json:"payloadLb,omitempty"` // 0 means use the profile payload
}

// FleetAvailability is the fleet the allocator may draw from.
type FleetAvailability struct {
	Types []FleetType `json:"types"`
}

// Policy steers the fleet allocator.
type Policy struct {
	Mode               Mode   `json:"mode"`
	PreferredTypeID    string `json:"preferredTypeId,omitempty"`
	PreferenceStrength int    `json:"preferenceStrength,omitempty"` // 0-100, reserved
	ApplyStrength      bool   `json:"applyStrength,omitempty"`
}

// AllocationStatus is the fleet-level outcome.
type AllocationStatus string

const (
	StatusFeasible   AllocationStatus = "FEASIBLE"
	StatusPartial    AllocationStatus = "PARTIAL"
	StatusInfeasible AllocationStatus = "INFEASIBLE"
)

// AllocationMetrics aggregates a finished allocation.
type AllocationMetrics struct {
	TotalCost     float64 `json:"totalCost"`
	TotalAircraft int     `json:"totalAircraft"`
	Utilization   float64 `json:"utilization"`
	CoBAverage    float64 `json:"cobAverage"`
}

// ComparisonData contrasts the chosen mix against the best mix built
// from the preferred type alone.
type ComparisonData struct {
	PreferredTypeID   string  `json:"preferredTypeId"`
	PreferredCost     float64 `json:"preferredCost"`
	PreferredAircraft int     `json:"preferredAircraft"`
	CostDelta         float64 `json:"costDelta"`
	AircraftDelta     int     `json:"aircraftDelta"`
}

// AllocationResult is the root result object. Nothing in it mutates
// after Allocate returns.
type AllocationResult struct {
	Status        AllocationStatus `json:"status"`
	AircraftUsed  map[string]int   `json:"aircraftUsed"`
	UnplacedItems []CargoItem      `json:"unplacedItems"`
	LoadPlans     []*LoadPlan      `json:"loadPlans"`
	Metrics       AllocationMetrics `json:"metrics"`
	Explanation   string           `json:"explanation"`
	Comparison    *ComparisonData  `json:"comparisonData,omitempty"`
	Issues        []Issue          `json:"issues,omitempty"`
}

// Candidate enumeration cap.
const maxFleetCandidates = 100

// fleetTypeInfo is a usable type with its resolved capacity.
type fleetTypeInfo struct {
	typeID    string
	count     int
	payloadLb float64
	profile   *AircraftProfile
}

// fleetCandidate is one enumerated aircraft mix.
type fleetCandidate struct {
	order         []string // type ids, descending capacity
	counts        map[string]int
	totalAircraft int
	capacityLb    float64
	totalCost     float64
	bestEffort    bool
}

func (c *fleetCandidate) countOf(typeID string) int {
	return c.counts[typeID]
}

func (c *fleetCandidate) describe() string {
	var parts []string
	for _, id := range c.order {
		if n := c.counts[id]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d× %s", n, id))
		}
	}
	if len(parts) == 0 {
		return "no aircraft"
	}
	return strings.Join(parts, ", ")
}

// Allocator distributes a manifest across a mixed fleet.
type Allocator struct {
	Registry ProfileRegistry
	IDGen    IDGen
}

// NewAllocator returns an Allocator over the given registry. With a
// nil id generator every run gets a fresh sequential generator, which
// keeps pallet ids stable across re-runs of the same input.
func NewAllocator(registry ProfileRegistry, gen IDGen) (*Allocator, error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}
	return &Allocator{Registry: registry, IDGen: gen}, nil
}

// Allocate chooses an aircraft mix for the manifest under the policy,
// packs it aircraft by aircraft, and reports the residual. Fleet-level
// infeasibility is reported in the result, never thrown.
func (a *Allocator) Allocate(manifest *NormalizedManifest, avail FleetAvailability, policy Policy) (*AllocationResult, error) {
	if manifest == nil {
		return nil, fmt.Errorf("%w: manifest is nil", ErrInvalidInput)
	}
	for _, t := range avail.Types {
		if t.Count < 0 {
			return nil, fmt.Errorf("%w: negative count for %s", ErrInvalidInput, t.TypeID)
		}
	}
	if policy.PreferenceStrength < 0 || policy.PreferenceStrength > 100 {
		return nil, fmt.Errorf("%w: preference strength %d outside 0-100", ErrInvalidInput, policy.PreferenceStrength)
	}

	result := &AllocationResult{
		AircraftUsed:  map[string]int{},
		UnplacedItems: []CargoItem{},
		LoadPlans:     []*LoadPlan{},
	}

	// Nothing to move is trivially feasible.
	if len(manifest.Items) == 0 {
		result.Status = StatusFeasible
		result.Explanation = "empty manifest; nothing to allocate"
		return result, nil
	}

	types, lockedOnly, err := a.usableTypes(avail)
	if err != nil {
		return nil, err
	}
	if len(types) == 0 {
		result.Status = StatusInfeasible
		result.UnplacedItems = append(result.UnplacedItems, manifest.Items...)
		if lockedOnly {
			result.Explanation = "no unlocked aircraft"
		} else {
			result.Explanation = "no aircraft available"
		}
		result.Issues = append(result.Issues, Issue{
			Severity:   SeverityError,
			Code:       CodeNoAircraftAvailable,
			Message:    result.Explanation,
			Suggestion: "unlock or add aircraft to the fleet",
		})
		return result, nil
	}

	totalWeight := manifest.Summary.TotalWeightLb

	candidates := a.enumerate(types, totalWeight)
	if len(candidates) == 0 {
		// Nothing covers the weight; commit everything we have.
		candidates = append(candidates, a.bestEffort(types))
	}

	counterfactual := a.preferredOnly(types, policy, totalWeight)

	winner := pickCandidate(candidates, policy, totalWeight)

	a.pack(manifest, winner, types, result)

	a.finish(result, winner, policy, counterfactual, totalWeight)
	return result, nil
}

// usableTypes resolves the availability into profile-backed type
// infos, descending capacity.
func (a *Allocator) usableTypes(avail FleetAvailability) ([]fleetTypeInfo, bool, error) {
	var (
		out        []fleetTypeInfo
		sawLocked  bool
	)
	for _, t := range avail.Types {
		if t.Count == 0 {
			continue
		}
		if t.Locked {
			sawLocked = true
			continue
		}
		profile, err := a.Registry.Get(t.TypeID)
		if err != nil {
			return nil, false, fmt.Errorf("resolving fleet type %q: %w", t.TypeID, err)
		}
		payload := t.PayloadLb
		if payload <= 0 {
			payload = profile.MaxPayloadLb
		}
		out = append(out, fleetTypeInfo{
			typeID:    t.TypeID,
			count:     t.Count,
			payloadLb: payload,
			profile:   profile,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].payloadLb != out[j].payloadLb {
			return out[i].payloadLb > out[j].payloadLb
		}
		return out[i].typeID < out[j].typeID
	})
	lockedOnly := len(out) == 0 && sawLocked
	return out, lockedOnly, nil
}

// enumerate walks the mix space: for each type in descending capacity,
// try every count from the most useful down to zero, accumulating
// complete mixes once the remaining weight is covered. Enumeration
// stops at the candidate cap.
func (a *Allocator) enumerate(types []fleetTypeInfo, totalWeight float64) []*fleetCandidate {
	var out []*fleetCandidate
	counts := make([]int, len(types))

	var rec func(i int, remaining float64)
	rec = func(i int, remaining float64) {
		if len(out) >= maxFleetCandidates {
			return
		}
		if remaining <= 0 {
			if c := a.newCandidate(types, counts, false); c.totalAircraft > 0 {
				out = append(out, c)
			}
			return
		}
		if i >= len(types) {
			return
		}
		maxN := types[i].count
		if need := int(math.Ceil(remaining / types[i].payloadLb)); need < maxN {
			maxN = need
		}
		for n := maxN; n >= 0; n-- {
			counts[i] = n
			rec(i+1, remaining-float64(n)*types[i].payloadLb)
			counts[i] = 0
		}
	}
	rec(0, totalWeight)
	return out
}

// bestEffort builds the use-everything candidate.
func (a *Allocator) bestEffort(types []fleetTypeInfo) *fleetCandidate {
	counts := make([]int, len(types))
	for i := range types {
		counts[i] = types[i].count
	}
	c := a.newCandidate(types, counts, true)
	return c
}

func (a *Allocator) newCandidate(types []fleetTypeInfo, counts []int, bestEffort bool) *fleetCandidate {
	c := &fleetCandidate{
		counts:     map[string]int{},
		bestEffort: bestEffort,
	}
	for i, t := range types {
		c.order = append(c.order, t.typeID)
		if counts[i] <= 0 {
			continue
		}
		c.counts[t.typeID] = counts[i]
		c.totalAircraft += counts[i]
		c.capacityLb += float64(counts[i]) * t.payloadLb
		c.totalCost += float64(counts[i]) * t.profile.Cost.SortieCost()
	}
	return c
}

// preferredOnly builds the cheapest mix restricted to the preferred
// type that still covers the weight, when one exists.
func (a *Allocator) preferredOnly(types []fleetTypeInfo, policy Policy, totalWeight float64) *fleetCandidate {
	if policy.PreferredTypeID == "" || policy.Mode == ModePreferredFirst {
		return nil
	}
	for i, t := range types {
		if t.typeID != policy.PreferredTypeID {
			continue
		}
		need := int(math.Ceil(totalWeight / t.payloadLb))
		if need < 1 || need > t.count {
			return nil
		}
		counts := make([]int, len(types))
		counts[i] = need
		return a.newCandidate(types, counts, false)
	}
	return nil
}

// pickCandidate scores every candidate and returns the best;
// insertion order breaks ties.
func pickCandidate(candidates []*fleetCandidate, policy Policy, totalWeight float64) *fleetCandidate {
	maxCost, maxAircraft := 0.0, 0
	for _, c := range candidates {
		if c.totalCost > maxCost {
			maxCost = c.totalCost
		}
		if c.totalAircraft > maxAircraft {
			maxAircraft = c.totalAircraft
		}
	}

	wPref, wCost, wCount := policy.Mode.weights()

	best, bestScore := candidates[0], math.Inf(-1)
	for _, c := range candidates {
		pref := 1.0
		if policy.PreferredTypeID != "" && c.totalAircraft > 0 {
			pref = float64(c.countOf(policy.PreferredTypeID)) / float64(c.totalAircraft)
		}
		if policy.ApplyStrength {
			pref *= float64(policy.PreferenceStrength) / 100
		}

		cost, count := 0.0, 0.0
		if maxCost > 0 {
			cost = 1 - c.totalCost/maxCost
		}
		if maxAircraft > 0 {
			count = 1 - float64(c.totalAircraft)/float64(maxAircraft)
		}

		bonus := 0.0
		if c.capacityLb > 0 {
			bonus = math.Min(1, totalWeight/c.capacityLb) * 0.1
		}

		score := wPref*pref + wCost*math.Max(0, cost) + wCount*math.Max(0, count) + bonus
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best
}

// phasePending is one deployment wave's outstanding work during
// packing.
type phasePending struct {
	phase    Phase
	vehicles []CargoItem
	pallets  []*Pallet
	pax      []CargoItem
	leftover []CargoItem // never placeable on any aircraft
}

func (p *phasePending) empty() bool {
	return len(p.vehicles) == 0 && len(p.pallets) == 0 && len(p.pax) == 0
}

// pack runs the load planner airframe by airframe, serving the
// advance wave before the main wave. The winning mix supplies the
// airframes first; remaining availability backs it up when separate
// phases need more tails than the weight-driven mix predicted.
func (a *Allocator) pack(manifest *NormalizedManifest, winner *fleetCandidate,
	types []fleetTypeInfo, result *AllocationResult) {

	gen := idGenOrFresh(a.IDGen)
	planner := &Planner{Registry: a.Registry, IDGen: gen}
	classified := Classify(manifest)

	pendings := make([]*phasePending, 0, 2)
	for _, g := range []*PhaseGroup{&classified.Advance, &classified.Main} {
		if g.Empty() {
			continue
		}
		pallets, unpalletized, buildIssues := BuildPallets(g.Palletizable, gen)
		for _, item := range g.Prebuilt {
			pallets = append(pallets, PalletFromPrebuilt(item))
		}
		result.Issues = append(result.Issues, buildIssues...)
		pendings = append(pendings, &phasePending{
			phase:    g.Phase,
			vehicles: g.RollingStock,
			pallets:  pallets,
			pax:      g.Passengers,
			leftover: unpalletized,
		})
	}

	aircraft := winner.aircraftSequence()
	for _, t := range types {
		for n := winner.countOf(t.typeID); n < t.count; n++ {
			aircraft = append(aircraft, t.typeID)
		}
	}

	sequence := 0
	for _, typeID := range aircraft {
		profile, err := a.Registry.Get(typeID)
		if err != nil {
			continue
		}

		// Phases ride separate aircraft; an airframe that takes nothing
		// for one wave is still fresh for the next.
		for _, pending := range pendings {
			if pending.empty() {
				continue
			}
			plan, residual := planner.pack(profile, sequence+1, pending.phase,
				pending.vehicles, pending.pallets, pending.pax)
			if plan.Empty() {
				continue
			}
			sequence++
			result.LoadPlans = append(result.LoadPlans, plan)
			result.AircraftUsed[typeID]++
			pending.vehicles = residual.Vehicles
			pending.pallets = residual.Pallets
			pending.pax = residual.PaxItems
			break
		}
	}

	for _, pending := range pendings {
		residual := &packResidual{
			Vehicles: pending.vehicles,
			Pallets:  pending.pallets,
			PaxItems: pending.pax,
		}
		result.UnplacedItems = append(result.UnplacedItems, residual.Items()...)
		result.UnplacedItems = append(result.UnplacedItems, pending.leftover...)
	}
}

// aircraftSequence expands the mix into a per-airframe type list in
// descending capacity order.
func (c *fleetCandidate) aircraftSequence() []string {
	var out []string
	for _, id := range c.order {
		for n := 0; n < c.counts[id]; n++ {
			out = append(out, id)
		}
	}
	return out
}

// finish computes status, metrics, and the explanation.
func (a *Allocator) finish(result *AllocationResult, winner *fleetCandidate, policy Policy,
	counterfactual *fleetCandidate, totalWeight float64) {

	var (
		usedCost     float64
		usedCapacity float64
		placedWeight float64
		cobSum       float64
		cobPlans     int
	)
	for _, plan := range result.LoadPlans {
		profile, err := a.Registry.Get(plan.ProfileID)
		if err != nil {
			continue
		}
		usedCost += profile.Cost.SortieCost()
		usedCapacity += profile.MaxPayloadLb
		placedWeight += plan.Totals.WeightLb
		if plan.CoB.TotalWeightLb > 0 {
			cobSum += plan.CoB.PercentMAC
			cobPlans++
		}
	}

	result.Metrics = AllocationMetrics{
		TotalCost:     usedCost,
		TotalAircraft: len(result.LoadPlans),
	}
	if usedCapacity > 0 {
		result.Metrics.Utilization = placedWeight / usedCapacity
	}
	if cobPlans > 0 {
		result.Metrics.CoBAverage = cobSum / float64(cobPlans)
	}

	switch {
	case len(result.UnplacedItems) == 0:
		result.Status = StatusFeasible
	case len(result.LoadPlans) > 0:
		result.Status = StatusPartial
		result.Issues = append(result.Issues, Issue{
			Severity:   SeverityWarning,
			Code:       CodePartialAllocation,
			Message:    fmt.Sprintf("%d items could not be placed", len(result.UnplacedItems)),
			Suggestion: "add aircraft or split the movement",
		})
	default:
		result.Status = StatusInfeasible
		result.Issues = append(result.Issues, Issue{
			Severity:   SeverityError,
			Code:       CodeInfeasibleFleet,
			Message:    "no manifest item could be placed on the available fleet",
			Suggestion: "review fleet availability against the manifest",
		})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Allocated %s under %s for $%.0f total", winner.describe(), policy.Mode, result.Metrics.TotalCost)
	if winner.bestEffort {
		b.WriteString(" (best effort; fleet capacity below total weight)")
	}
	if counterfactual != nil {
		result.Comparison = &ComparisonData{
			PreferredTypeID:   policy.PreferredTypeID,
			PreferredCost:     counterfactual.totalCost,
			PreferredAircraft: counterfactual.totalAircraft,
			CostDelta:         counterfactual.totalCost - result.Metrics.TotalCost,
			AircraftDelta:     counterfactual.totalAircraft - result.Metrics.TotalAircraft,
		}
		fmt.Fprintf(&b, "; vs %d× %s only: cost delta $%.0f, aircraft delta %+d",
			counterfactual.totalAircraft, policy.PreferredTypeID,
			result.Comparison.CostDelta, result.Comparison.AircraftDelta)
	}
	b.WriteString(".")
	result.Explanation = b.String()
}
