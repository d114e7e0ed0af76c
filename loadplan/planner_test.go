// loadplan/planner_test.go
package loadplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlannerNilRegistry(t *testing.T) {
	_, err := NewPlanner(nil, nil)
	require.ErrorIs(t, err, ErrNilRegistry)
}

func TestPlanAircraftUnknownProfile(t *testing.T) {
	planner, err := NewPlanner(newMockRegistry(testC17()), nil)
	require.NoError(t, err)

	_, _, err = planner.PlanAircraft("AN-124", &PhaseGroup{Phase: PhaseMain}, 1)
	require.ErrorIs(t, err, ErrUnknownProfile)
}

func TestPlanAircraftInvalidInputs(t *testing.T) {
	planner, err := NewPlanner(newMockRegistry(testC17()), nil)
	require.NoError(t, err)

	_, _, err = planner.PlanAircraft("C-17", nil, 1)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = planner.PlanAircraft("C-17", &PhaseGroup{Phase: PhaseMain}, -1)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestPlanAircraftMixedLoad(t *testing.T) {
	planner, err := NewPlanner(newMockRegistry(testC17()), nil)
	require.NoError(t, err)

	group := &PhaseGroup{
		Phase: PhaseMain,
		RollingStock: []CargoItem{
			vehicle("TRK", 190, 85, 74, 7700),
		},
		Palletizable: []CargoItem{
			item("A", 60, 50, 40, 2000),
			item("B", 50, 40, 30, 800),
		},
		Prebuilt: []CargoItem{
			{ID: "PLT", Category: PrebuiltPallet, Quantity: 1, LengthIn: 88, WidthIn: 108, HeightIn: 70, WeightLb: 5200},
		},
		Passengers: []CargoItem{
			{ID: "CHALK", Category: Passenger, Quantity: 1, PaxCount: 12, WeightLb: 12 * PaxWeightLb},
		},
	}

	plan, leftover, err := planner.PlanAircraft("C-17", group, 1)
	require.NoError(t, err)
	assert.Empty(t, leftover)

	assert.Equal(t, StateFinalized, plan.State())
	assert.Len(t, plan.Vehicles, 1)
	assert.Len(t, plan.Pallets, 2, "one built pallet plus the prebuilt")
	assert.Equal(t, 12, plan.PaxCount)

	wantWeight := 7700 + (2000 + 800 + PalletTareLb) + 5200 + 12*PaxWeightLb
	assert.InDelta(t, wantWeight, plan.Totals.WeightLb, 0.001)
	assert.InDelta(t, wantWeight/170900, plan.Totals.Utilization, 0.0001)
	assert.Equal(t, 2, plan.Totals.PositionsUsed)
	assert.Equal(t, 18, plan.Totals.PositionsAvailable)

	// A light mixed load flags the underutilized sortie.
	assert.True(t, hasCode(plan.Issues, CodeUnderutilized))
}

func TestPlanAircraftPaxOverflow(t *testing.T) {
	planner, err := NewPlanner(newMockRegistry(testC130H()), nil)
	require.NoError(t, err)

	group := &PhaseGroup{
		Phase: PhaseMain,
		Passengers: []CargoItem{
			{ID: "BIG", Category: Passenger, Quantity: 1, PaxCount: 200, WeightLb: 200 * PaxWeightLb},
		},
	}

	plan, leftover, err := planner.PlanAircraft("C-130H", group, 1)
	require.NoError(t, err)

	// 45,000 lb of passengers exceeds the 42,000 lb payload; the entry
	// stays whole and is left behind.
	assert.True(t, plan.Empty())
	require.Len(t, leftover, 1)
	assert.Equal(t, "BIG", leftover[0].ID)
}

func TestPlanStateMachine(t *testing.T) {
	plan := NewLoadPlan("C-17", 1, PhaseMain)
	assert.Equal(t, StateEmpty, plan.State())

	require.NoError(t, plan.transition(StateVehiclesPlaced))
	require.NoError(t, plan.transition(StatePalletsPlaced))
	require.NoError(t, plan.transition(StateBalanced))

	// Backward jumps are rejected; reopening pallets is the one
	// sanctioned regression.
	require.Error(t, plan.transition(StateVehiclesPlaced))
	require.NoError(t, plan.reopenPallets())
	assert.Equal(t, StatePalletsPlaced, plan.State())

	require.NoError(t, plan.transition(StateBalanced))
	require.NoError(t, plan.transition(StateFinalized))

	require.ErrorIs(t, plan.transition(StateBalanced), ErrPlanFinalized)
	require.ErrorIs(t, plan.reopenPallets(), ErrPlanFinalized)
}

func TestEnforcePayloadPopsPallets(t *testing.T) {
	prof := testC17()
	planner, err := NewPlanner(newMockRegistry(prof), nil)
	require.NoError(t, err)

	plan := NewLoadPlan(prof.TypeID, 1, PhaseMain)
	require.NoError(t, plan.transition(StateVehiclesPlaced))

	// Force an overweight plan that bypassed the placement gates.
	for i, x := range []float64{100, 300, 500} {
		p := builtPallet(NewSequentialIDGen().NextPalletID(), 60, 60000)
		p.ID = p.ID + string(rune('A'+i))
		plan.Pallets = append(plan.Pallets, PlacedPallet{
			Pallet: p,
			Placement: PlacedBox{
				ItemRef: p.ID, Kind: PlacementPallet,
				XStartIn: x, LengthIn: 88, WidthIn: 108, HeightIn: 60,
				WeightLb: p.GrossWeightLb(), PositionIndex: -1,
			},
		})
	}
	require.NoError(t, plan.transition(StatePalletsPlaced))
	require.NoError(t, plan.transition(StateBalanced))

	residual := &packResidual{}
	planner.enforcePayload(prof, plan, residual)

	assert.LessOrEqual(t, plan.TotalWeightLb(), prof.MaxPayloadLb)
	assert.Len(t, plan.Pallets, 2, "one pallet popped")
	assert.Len(t, residual.Pallets, 1)
	assert.True(t, hasCode(plan.Issues, CodeOverweightAircraft))
}
