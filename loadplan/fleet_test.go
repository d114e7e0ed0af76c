// loadplan/fleet_test.go
package loadplan

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFleetRegistry() *mockRegistry {
	c130j := testC130H()
	c130j.TypeID = "C-130J"
	c130j.Name = "C-130J Super Hercules"
	c130j.MaxPayloadLb = 44000
	c130j.Cost = CostParams{CostPerSortie: 32000, CostPerHour: 6000, HoursPerLeg: 2.5}
	return newMockRegistry(testC17(), testC130H(), c130j)
}

func palletizableLoad(n int, eachLb float64) []CargoItem {
	var items []CargoItem
	gen := 0
	for i := 0; i < n; i++ {
		gen++
		items = append(items, CargoItem{
			ID: jsonID(gen), Description: "Crated stores", Category: Palletizable, Quantity: 1,
			LengthIn: 80, WidthIn: 60, HeightIn: 40, WeightLb: eachLb,
		})
	}
	return items
}

func jsonID(n int) string {
	return "BOX_" + string(rune('A'+(n-1)/26)) + string(rune('A'+(n-1)%26))
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		token   string
		want    Mode
		wantErr bool
	}{
		{"PREFERRED_FIRST", ModePreferredFirst, false},
		{"optimize_cost", ModeOptimizeCost, false},
		{" MIN_AIRCRAFT ", ModeMinAircraft, false},
		{"USER_LOCKED", ModeUserLocked, false},
		{"CHEAPEST", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.token)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidMode, tt.token)
			continue
		}
		require.NoError(t, err, tt.token)
		assert.Equal(t, tt.want, got, tt.token)
	}
}

func TestModeWeightsSumToOne(t *testing.T) {
	for _, m := range []Mode{ModePreferredFirst, ModeOptimizeCost, ModeMinAircraft, ModeUserLocked} {
		p, c, n := m.weights()
		assert.InDelta(t, 1.0, p+c+n, 1e-9, m.String())
	}
}

func TestAllocateNilManifest(t *testing.T) {
	alloc, err := NewAllocator(testFleetRegistry(), nil)
	require.NoError(t, err)

	_, err = alloc.Allocate(nil, FleetAvailability{}, Policy{})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAllocateInvalidAvailability(t *testing.T) {
	alloc, err := NewAllocator(testFleetRegistry(), nil)
	require.NoError(t, err)

	_, err = alloc.Allocate(manifestOf(), FleetAvailability{
		Types: []FleetType{{TypeID: "C-17", Count: -1}},
	}, Policy{})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = alloc.Allocate(manifestOf(), FleetAvailability{}, Policy{PreferenceStrength: 150})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAllocateEmptyManifest(t *testing.T) {
	alloc, err := NewAllocator(testFleetRegistry(), nil)
	require.NoError(t, err)

	result, err := alloc.Allocate(manifestOf(), FleetAvailability{
		Types: []FleetType{{TypeID: "C-17", Count: 1}},
	}, Policy{})
	require.NoError(t, err)

	assert.Equal(t, StatusFeasible, result.Status)
	assert.Empty(t, result.LoadPlans)
	assert.Empty(t, result.UnplacedItems)
	assert.Zero(t, result.Metrics.TotalCost)
}

func TestAllocateEmptyFleet(t *testing.T) {
	alloc, err := NewAllocator(testFleetRegistry(), nil)
	require.NoError(t, err)

	result, err := alloc.Allocate(manifestOf(palletizableLoad(1, 1000)...), FleetAvailability{}, Policy{})
	require.NoError(t, err)

	assert.Equal(t, StatusInfeasible, result.Status)
	assert.Equal(t, "no aircraft available", result.Explanation)
	assert.Len(t, result.UnplacedItems, 1)
	assert.True(t, hasCode(result.Issues, CodeNoAircraftAvailable))
}

func TestAllocateAllLocked(t *testing.T) {
	alloc, err := NewAllocator(testFleetRegistry(), nil)
	require.NoError(t, err)

	result, err := alloc.Allocate(manifestOf(palletizableLoad(1, 1000)...), FleetAvailability{
		Types: []FleetType{{TypeID: "C-17", Count: 2, Locked: true}},
	}, Policy{})
	require.NoError(t, err)

	assert.Equal(t, StatusInfeasible, result.Status)
	assert.Equal(t, "no unlocked aircraft", result.Explanation)
}

func TestAllocateSingleAircraft(t *testing.T) {
	alloc, err := NewAllocator(testFleetRegistry(), nil)
	require.NoError(t, err)

	result, err := alloc.Allocate(manifestOf(palletizableLoad(3, 1500)...), FleetAvailability{
		Types: []FleetType{{TypeID: "C-17", Count: 1}},
	}, Policy{Mode: ModePreferredFirst})
	require.NoError(t, err)

	assert.Equal(t, StatusFeasible, result.Status)
	assert.Empty(t, result.UnplacedItems)
	require.Len(t, result.LoadPlans, 1)
	assert.Equal(t, map[string]int{"C-17": 1}, result.AircraftUsed)
	assert.Equal(t, 1, result.Metrics.TotalAircraft)
	assert.Equal(t, 85000.0+15000*4, result.Metrics.TotalCost)
}

func TestAllocateOptimizeCostWithCounterfactual(t *testing.T) {
	alloc, err := NewAllocator(testFleetRegistry(), nil)
	require.NoError(t, err)

	// 100,000 lb across thirteen single-item pallets.
	items := append(palletizableLoad(12, 8000), palletizableLoad(1, 4000)[0])
	items[len(items)-1].ID = "BOX_LAST"

	result, err := alloc.Allocate(manifestOf(items...), FleetAvailability{
		Types: []FleetType{
			{TypeID: "C-17", Count: 2},
			{TypeID: "C-130J", Count: 4},
		},
	}, Policy{Mode: ModeOptimizeCost, PreferredTypeID: "C-130J"})
	require.NoError(t, err)

	assert.Equal(t, StatusFeasible, result.Status)
	assert.Empty(t, result.UnplacedItems)

	// The normalized scoring keeps the single C-17 ahead of three
	// C-130Js; the preferred-only counterfactual is reported.
	require.NotNil(t, result.Comparison)
	assert.Equal(t, "C-130J", result.Comparison.PreferredTypeID)
	assert.Equal(t, 3, result.Comparison.PreferredAircraft)
	assert.InDelta(t, 3*(32000+6000*2.5), result.Comparison.PreferredCost, 0.001)
	assert.Contains(t, result.Explanation, "OPTIMIZE_COST")
	assert.Contains(t, result.Explanation, "C-130J")
}

func TestAllocateUserLockedPrefersPreferred(t *testing.T) {
	alloc, err := NewAllocator(testFleetRegistry(), nil)
	require.NoError(t, err)

	result, err := alloc.Allocate(manifestOf(palletizableLoad(4, 8000)...), FleetAvailability{
		Types: []FleetType{
			{TypeID: "C-17", Count: 1},
			{TypeID: "C-130J", Count: 2},
		},
	}, Policy{Mode: ModeUserLocked, PreferredTypeID: "C-130J"})
	require.NoError(t, err)

	// 32,000 lb fits a single C-130J; USER_LOCKED weighs preference
	// alone, so the all-preferred mix wins.
	assert.Equal(t, map[string]int{"C-130J": 1}, result.AircraftUsed)
}

func TestAllocateDeterministic(t *testing.T) {
	avail := FleetAvailability{Types: []FleetType{
		{TypeID: "C-17", Count: 2},
		{TypeID: "C-130J", Count: 3},
	}}
	items := palletizableLoad(9, 6500)
	policy := Policy{Mode: ModeMinAircraft}

	run := func() []byte {
		alloc, err := NewAllocator(testFleetRegistry(), nil)
		require.NoError(t, err)
		result, err := alloc.Allocate(manifestOf(items...), avail, policy)
		require.NoError(t, err)
		b, err := json.Marshal(result)
		require.NoError(t, err)
		return b
	}

	assert.Equal(t, string(run()), string(run()), "allocation must be byte-identical across runs")
}

func TestAllocateResidualConservation(t *testing.T) {
	alloc, err := NewAllocator(testFleetRegistry(), nil)
	require.NoError(t, err)

	wide := vehicle("WIDE", 300, 150, 100, 30000)
	items := append(palletizableLoad(4, 2000), wide)
	manifest := manifestOf(items...)

	result, err := alloc.Allocate(manifest, FleetAvailability{
		Types: []FleetType{{TypeID: "C-17", Count: 1}},
	}, Policy{})
	require.NoError(t, err)

	placed := map[string]int{}
	for _, plan := range result.LoadPlans {
		for id, n := range idMultiset(plan.Items()) {
			placed[id] += n
		}
	}
	for id, n := range idMultiset(result.UnplacedItems) {
		placed[id] += n
	}
	assert.Equal(t, idMultiset(manifest.Items), placed,
		"placed plus unplaced must equal the manifest")
}

func TestAllocateProgressOnResidual(t *testing.T) {
	alloc, err := NewAllocator(testFleetRegistry(), nil)
	require.NoError(t, err)

	wide := vehicle("WIDE", 300, 150, 100, 30000)
	items := append(palletizableLoad(2, 2000), wide)

	first, err := alloc.Allocate(manifestOf(items...), FleetAvailability{
		Types: []FleetType{{TypeID: "C-17", Count: 1}},
	}, Policy{})
	require.NoError(t, err)
	assert.Equal(t, StatusPartial, first.Status)
	require.NotEmpty(t, first.UnplacedItems)

	// The sortie consumed the airframe; rerunning the residual against
	// the remaining availability is infeasible.
	second, err := alloc.Allocate(manifestOf(first.UnplacedItems...), FleetAvailability{}, Policy{})
	require.NoError(t, err)
	assert.Equal(t, StatusInfeasible, second.Status)
}

func TestAllocateAdvancePhaseFirst(t *testing.T) {
	alloc, err := NewAllocator(testFleetRegistry(), nil)
	require.NoError(t, err)

	advance := item("ADV", 60, 50, 40, 1500)
	advance.AdvanceParty = true
	main := item("MAIN", 60, 50, 40, 1500)

	result, err := alloc.Allocate(manifestOf(advance, main), FleetAvailability{
		Types: []FleetType{{TypeID: "C-130J", Count: 2}},
	}, Policy{})
	require.NoError(t, err)

	require.Len(t, result.LoadPlans, 2, "phases ride separate aircraft")
	assert.Equal(t, PhaseAdvance, result.LoadPlans[0].Phase)
	assert.Equal(t, 1, result.LoadPlans[0].Sequence)
	assert.Equal(t, PhaseMain, result.LoadPlans[1].Phase)
	assert.Equal(t, 2, result.LoadPlans[1].Sequence)
}

func TestAllocateBestEffortWhenUndersized(t *testing.T) {
	alloc, err := NewAllocator(testFleetRegistry(), nil)
	require.NoError(t, err)

	// 120,000 lb against a single C-130J: no covering mix exists.
	result, err := alloc.Allocate(manifestOf(palletizableLoad(15, 8000)...), FleetAvailability{
		Types: []FleetType{{TypeID: "C-130J", Count: 1}},
	}, Policy{})
	require.NoError(t, err)

	assert.Equal(t, StatusPartial, result.Status)
	assert.NotEmpty(t, result.UnplacedItems)
	assert.NotEmpty(t, result.LoadPlans)
	assert.Contains(t, result.Explanation, "best effort")
	assert.True(t, hasCode(result.Issues, CodePartialAllocation))
}
