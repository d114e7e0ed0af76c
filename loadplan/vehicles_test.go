// loadplan/vehicles_test.go
package loadplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vehicle(id string, l, w, h, weight float64) CargoItem {
	return CargoItem{
		ID: id, Description: id, Category: RollingStock, Quantity: 1,
		LengthIn: l, WidthIn: w, HeightIn: h, WeightLb: weight,
	}
}

func TestVehiclePlacerRejectsOversize(t *testing.T) {
	prof := testC17()
	placer := NewVehiclePlacer(prof)
	plan := NewLoadPlan(prof.TypeID, 1, PhaseMain)

	unplaced, issues := placer.Place(plan, []CargoItem{
		vehicle("WIDE", 300, 150, 100, 30000),
		vehicle("TALL", 300, 100, 150, 30000),
	})

	require.Len(t, unplaced, 2)
	assert.Empty(t, plan.Vehicles)
	assert.True(t, hasCode(issues, CodeRollingStockTooWide))
	assert.True(t, hasCode(issues, CodeRollingStockTooTall))
}

func TestVehiclePlacerRampWidthBoundary(t *testing.T) {
	prof := testC17()

	// Exactly at the clearance: admitted.
	plan := NewLoadPlan(prof.TypeID, 1, PhaseMain)
	unplaced, _ := NewVehiclePlacer(prof).Place(plan, []CargoItem{
		vehicle("EXACT", 200, 144, 100, 20000),
	})
	assert.Empty(t, unplaced)
	assert.Len(t, plan.Vehicles, 1)

	// One inch over: rejected.
	plan = NewLoadPlan(prof.TypeID, 2, PhaseMain)
	unplaced, issues := NewVehiclePlacer(prof).Place(plan, []CargoItem{
		vehicle("OVER", 200, 145, 100, 20000),
	})
	require.Len(t, unplaced, 1)
	assert.True(t, hasCode(issues, CodeRollingStockTooWide))
}

func TestVehiclePlacerSmallerProfileRejects(t *testing.T) {
	// 120" clears the C-17 ramp but not the C-130's.
	v := vehicle("MID", 200, 120, 90, 15000)

	planSmall := NewLoadPlan("C-130H", 1, PhaseMain)
	unplaced, issues := NewVehiclePlacer(testC130H()).Place(planSmall, []CargoItem{v})
	require.Len(t, unplaced, 1)
	assert.True(t, hasCode(issues, CodeRollingStockTooWide))

	planBig := NewLoadPlan("C-17", 1, PhaseMain)
	unplaced, _ = NewVehiclePlacer(testC17()).Place(planBig, []CargoItem{v})
	assert.Empty(t, unplaced)
}

func TestVehiclePlacerCentersSingleVehicle(t *testing.T) {
	prof := testC17()
	plan := NewLoadPlan(prof.TypeID, 1, PhaseMain)

	unplaced, _ := NewVehiclePlacer(prof).Place(plan, []CargoItem{
		vehicle("TRK", 190, 85, 74, 7700),
	})
	require.Empty(t, unplaced)
	require.Len(t, plan.Vehicles, 1)

	p := plan.Vehicles[0].Placement
	assert.Equal(t, 0.0, p.YCenterIn, "first vehicle takes the centerline")

	// The chosen slide position keeps the CoB nearest the envelope
	// midpoint: center ≈ 28% of 1056" minus half the length.
	assert.InDelta(t, 198, p.XStartIn, 3)
	assert.Equal(t, DeckMain, p.Deck)
}

func TestVehiclePlacerHeavyFirstAndNoOverlap(t *testing.T) {
	prof := testC17()
	plan := NewLoadPlan(prof.TypeID, 1, PhaseMain)

	unplaced, _ := NewVehiclePlacer(prof).Place(plan, []CargoItem{
		vehicle("LIGHT", 160, 80, 74, 5000),
		vehicle("HEAVY", 190, 85, 74, 12000),
	})
	require.Empty(t, unplaced)
	require.Len(t, plan.Vehicles, 2)

	assert.Equal(t, "HEAVY", plan.Vehicles[0].Item.ID, "heavier vehicle anchors first")

	a := plan.Vehicles[0].Placement.Box()
	b := plan.Vehicles[1].Placement.Box()
	assert.False(t, a.Overlaps(b), "placed vehicles overlap")
}

func TestVehiclePlacerPayloadGate(t *testing.T) {
	prof := testC130H()
	plan := NewLoadPlan(prof.TypeID, 1, PhaseMain)

	unplaced, issues := NewVehiclePlacer(prof).Place(plan, []CargoItem{
		vehicle("V1", 200, 90, 90, 30000),
		vehicle("V2", 200, 90, 90, 30000),
	})

	// Only one fits the 42,000 lb payload.
	assert.Len(t, plan.Vehicles, 1)
	require.Len(t, unplaced, 1)
	assert.True(t, hasCode(issues, CodeRollingStockUnplaced))
}

func TestVehiclePlacerFloorLoadingWarning(t *testing.T) {
	prof := testC130H() // 3 lb/in² floor limit

	// 60x40 footprint at 12,000 lb is 5 lb/in².
	plan := NewLoadPlan(prof.TypeID, 1, PhaseMain)
	unplaced, issues := NewVehiclePlacer(prof).Place(plan, []CargoItem{
		vehicle("DENSE", 60, 40, 60, 12000),
	})

	assert.Empty(t, unplaced, "floor loading is advisory")
	assert.Len(t, plan.Vehicles, 1)
	assert.True(t, hasCode(issues, CodeExceedsFloorLoading))
}

func TestVehiclePlacerAxleFloorLoading(t *testing.T) {
	prof := testC130H()
	v := vehicle("AXLE", 200, 80, 80, 20000)
	v.AxleWeightsLb = []float64{12000, 8000}

	plan := NewLoadPlan(prof.TypeID, 1, PhaseMain)
	_, issues := NewVehiclePlacer(prof).Place(plan, []CargoItem{v})

	// 12,000 lb over an 80" x 12" contact patch is 12.5 lb/in².
	assert.True(t, hasCode(issues, CodeExceedsFloorLoading))
}
