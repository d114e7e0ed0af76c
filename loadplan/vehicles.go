// loadplan/vehicles.go
package loadplan

import (
	"fmt"
	"math"
	"sort"
)

// Vehicle placement tuning.
const (
	vehicleSlideStepIn    = 6.0  // aft slide between candidate positions
	axleContactLengthIn   = 12.0 // assumed tread contact length per axle
)

// VehiclePlacer places rolling stock along the cargo bay in lanes,
// heaviest first so the CoB anchor forms early. Lanes are longitudinal
// strips; a vehicle picks the lane that keeps the running lateral CoB
// closest to centerline, then the position within the lane that keeps
// the longitudinal CoB nearest the envelope midpoint.
type VehiclePlacer struct {
	Profile   *AircraftProfile
	Validator *Validator
}

// NewVehiclePlacer returns a placer for the profile.
func NewVehiclePlacer(profile *AircraftProfile) *VehiclePlacer {
	return &VehiclePlacer{Profile: profile, Validator: NewValidator(profile)}
}

// laneCandidate is one feasible placement in one lane.
type laneCandidate struct {
	yCenter    float64
	xStart     float64
	lateralCoB float64 // |lateral CoB| after placing here
	issues     []Issue // non-fatal findings from validation
}

// Place positions the vehicles into the plan. Vehicles that cannot be
// placed under all constraints are returned for the residual set, each
// with an explanatory issue appended to the returned slice.
func (vp *VehiclePlacer) Place(plan *LoadPlan, vehicles []CargoItem) ([]CargoItem, []Issue) {
	prof := vp.Profile

	sorted := make([]CargoItem, len(vehicles))
	copy(sorted, vehicles)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].WeightLb != sorted[j].WeightLb {
			return sorted[i].WeightLb > sorted[j].WeightLb
		}
		return sorted[i].ID < sorted[j].ID
	})

	var (
		unplaced []CargoItem
		issues   []Issue
	)

	for _, v := range sorted {
		if v.WidthIn > prof.RampClearanceWidthIn {
			unplaced = append(unplaced, v)
			issues = append(issues, Issue{
				Severity:   SeverityWarning,
				Code:       CodeRollingStockTooWide,
				ItemRef:    v.ID,
				Field:      "width_in",
				Message:    fmt.Sprintf("width %.1f\" exceeds the %.0f\" ramp clearance of %s", v.WidthIn, prof.RampClearanceWidthIn, prof.TypeID),
				Suggestion: "plan this vehicle on a wider aircraft",
			})
			continue
		}
		if v.HeightIn > prof.CargoHeightIn {
			unplaced = append(unplaced, v)
			issues = append(issues, Issue{
				Severity:   SeverityWarning,
				Code:       CodeRollingStockTooTall,
				ItemRef:    v.ID,
				Field:      "height_in",
				Message:    fmt.Sprintf("height %.1f\" exceeds the clearances of %s", v.HeightIn, prof.TypeID),
				Suggestion: "plan this vehicle on a taller aircraft",
			})
			continue
		}
		if plan.TotalWeightLb()+v.WeightLb > prof.MaxPayloadLb {
			unplaced = append(unplaced, v)
			issues = append(issues, Issue{
				Severity:   SeverityWarning,
				Code:       CodeRollingStockUnplaced,
				ItemRef:    v.ID,
				Message:    fmt.Sprintf("weight %.0f lb exceeds the remaining payload of %s", v.WeightLb, prof.TypeID),
				Suggestion: "allocate another aircraft",
			})
			continue
		}

		best, ok := vp.bestPlacement(plan, &v)
		if !ok {
			unplaced = append(unplaced, v)
			issues = append(issues, Issue{
				Severity:   SeverityWarning,
				Code:       CodeRollingStockUnplaced,
				ItemRef:    v.ID,
				Message:    fmt.Sprintf("no feasible position in the %s cargo bay", prof.TypeID),
				Suggestion: "allocate another aircraft or reorder the load",
			})
			continue
		}

		placement := PlacedBox{
			ItemRef:       v.ID,
			PlanID:        plan.ID,
			Kind:          PlacementVehicle,
			Deck:          prof.DeckAt(best.xStart),
			XStartIn:      best.xStart,
			YCenterIn:     best.yCenter,
			LengthIn:      v.LengthIn,
			WidthIn:       v.WidthIn,
			HeightIn:      v.HeightIn,
			WeightLb:      v.WeightLb,
			PositionIndex: -1,
		}
		plan.Vehicles = append(plan.Vehicles, PlacedVehicle{Item: v, Placement: placement})
		issues = append(issues, best.issues...)
		issues = append(issues, vp.floorLoadingCheck(&v)...)
	}

	return unplaced, issues
}

// bestPlacement evaluates every lane for the vehicle and returns the
// winning candidate.
func (vp *VehiclePlacer) bestPlacement(plan *LoadPlan, v *CargoItem) (laneCandidate, bool) {
	existing := plan.Placements()

	var (
		best    laneCandidate
		haveAny bool
		bestRem float64
	)
	for _, yc := range vp.lanes(v.WidthIn) {
		cand, ok := vp.bestInLane(plan, existing, v, yc)
		if !ok {
			continue
		}
		rem := vp.Profile.TotalLengthIn() - (cand.xStart + v.LengthIn)
		if !haveAny ||
			cand.lateralCoB < best.lateralCoB-geomEps ||
			(math.Abs(cand.lateralCoB-best.lateralCoB) <= geomEps && rem > bestRem+geomEps) {
			best = cand
			bestRem = rem
			haveAny = true
		}
	}
	return best, haveAny
}

// lanes returns the candidate lane Y-centers for a vehicle of the
// given width, in deterministic order: centerline, then starboard and
// port wall lanes when the bay can take two abreast.
func (vp *VehiclePlacer) lanes(widthIn float64) []float64 {
	prof := vp.Profile
	lanes := []float64{0}
	if 2*widthIn+LateralClearanceIn <= prof.CargoWidthIn {
		offset := prof.CargoWidthIn/2 - widthIn/2 - LateralClearanceIn
		if offset > 0 {
			lanes = append(lanes, offset, -offset)
		}
	}
	return lanes
}

// bestInLane slides the vehicle aft in 6" steps and keeps the feasible
// position whose cumulative longitudinal CoB lands nearest the
// envelope midpoint. Earlier positions win ties.
func (vp *VehiclePlacer) bestInLane(plan *LoadPlan, existing []PlacedBox, v *CargoItem, yCenter float64) (laneCandidate, bool) {
	prof := vp.Profile
	mid := prof.Envelope.Midpoint()

	var (
		best     laneCandidate
		bestDist float64
		haveAny  bool
	)

	for x := 0.0; x+v.LengthIn <= prof.TotalLengthIn()+geomEps; x += vehicleSlideStepIn {
		candidate := PlacedBox{
			ItemRef:   v.ID,
			PlanID:    plan.ID,
			Kind:      PlacementVehicle,
			Deck:      prof.DeckAt(x),
			XStartIn:  x,
			YCenterIn: yCenter,
			LengthIn:  v.LengthIn,
			WidthIn:   v.WidthIn,
			HeightIn:  v.HeightIn,
			WeightLb:  v.WeightLb,
			PositionIndex: -1,
		}
		found := vp.Validator.Validate(&candidate, existing)
		if hasErrors(found) {
			continue
		}

		after := append(append([]PlacedBox{}, existing...), candidate)
		dist := math.Abs(ComputeCoB(prof, after).PercentMAC - mid)
		if !haveAny || dist < bestDist-geomEps {
			best = laneCandidate{
				yCenter:    yCenter,
				xStart:     x,
				lateralCoB: math.Abs(lateralCoB(after)),
				issues:     found,
			}
			bestDist = dist
			haveAny = true
		}
	}

	return best, haveAny
}

// lateralCoB is the weighted mean Y of the placements.
func lateralCoB(placements []PlacedBox) float64 {
	var moment, total float64
	for i := range placements {
		moment += placements[i].YCenterIn * placements[i].WeightLb
		total += placements[i].WeightLb
	}
	if total == 0 {
		return 0
	}
	return moment / total
}

// floorLoadingCheck compares the vehicle's ground pressure against the
// profile floor limit. Axle-loaded vehicles are checked per axle using
// the assumed contact patch; the check is advisory.
func (vp *VehiclePlacer) floorLoadingCheck(v *CargoItem) []Issue {
	limit := vp.Profile.FloorLoadingLbSqIn
	if limit <= 0 {
		return nil
	}

	pressure := 0.0
	if len(v.AxleWeightsLb) > 0 {
		maxAxle := 0.0
		for _, a := range v.AxleWeightsLb {
			if a > maxAxle {
				maxAxle = a
			}
		}
		pressure = maxAxle / (v.WidthIn * axleContactLengthIn)
	} else if area := v.FootprintAreaSqIn(); area > 0 {
		pressure = v.WeightLb / area
	}

	if pressure > limit {
		return []Issue{{
			Severity:   SeverityWarning,
			Code:       CodeExceedsFloorLoading,
			ItemRef:    v.ID,
			Message:    fmt.Sprintf("ground pressure %.2f lb/in² exceeds the %.2f lb/in² floor limit", pressure, limit),
			Suggestion: "use shoring under the heavy axles",
		}}
	}
	return nil
}
