// loadplan/helpers_test.go
package loadplan

import "fmt"

// Test profiles mirroring the reference C-17A and C-130H definitions,
// kept local so the core package tests need no registry import.

func testC17() *AircraftProfile {
	p := &AircraftProfile{
		TypeID: "C-17",
		Name:   "C-17A Globemaster III",

		CargoLengthIn: 816,
		CargoWidthIn:  216,
		CargoHeightIn: 148,

		RampLengthIn:          240,
		RampClearanceWidthIn:  144,
		RampClearanceHeightIn: 130,

		MaxPayloadLb:         170900,
		MainPositionWeightLb: 10355,
		RampPositionWeightLb: 7500,
		FloorLoadingLbSqIn:   5,

		HeightZones: []HeightZone{{XStartIn: 816, XEndIn: 1056, MaxHeightIn: 130}},
		Envelope:    CoBEnvelope{MinPercentMAC: 16, MaxPercentMAC: 40},

		MACLengthIn:         1056,
		LEMACStationIn:      245,
		BayForwardStationIn: 245,

		Cost: CostParams{CostPerSortie: 85000, CostPerHour: 15000, HoursPerLeg: 4},
	}
	idx := 0
	for _, y := range []float64{-54, 54} {
		for k := 0; k < 8; k++ {
			p.Stations = append(p.Stations, PalletStation{Index: idx, XCenterIn: 48 + float64(k)*96, YCenterIn: y})
			idx++
		}
	}
	for _, x := range []float64{872, 980} {
		p.Stations = append(p.Stations, PalletStation{Index: idx, XCenterIn: x, Ramp: true})
		idx++
	}
	return p
}

func testC130H() *AircraftProfile {
	p := &AircraftProfile{
		TypeID: "C-130H",
		Name:   "C-130H Hercules",

		CargoLengthIn: 492,
		CargoWidthIn:  123,
		CargoHeightIn: 108,

		RampLengthIn:          123,
		RampClearanceWidthIn:  119,
		RampClearanceHeightIn: 103,

		MaxPayloadLb:         42000,
		MainPositionWeightLb: 10355,
		RampPositionWeightLb: 4664,
		FloorLoadingLbSqIn:   3,

		HeightZones: []HeightZone{{XStartIn: 492, XEndIn: 615, MaxHeightIn: 103}},
		Envelope:    CoBEnvelope{MinPercentMAC: 18, MaxPercentMAC: 38},

		MACLengthIn:         615,
		LEMACStationIn:      487,
		BayForwardStationIn: 487,

		Cost: CostParams{CostPerSortie: 28000, CostPerHour: 5500, HoursPerLeg: 3},
	}
	for k := 0; k < 5; k++ {
		p.Stations = append(p.Stations, PalletStation{Index: k, XCenterIn: 46 + float64(k)*92})
	}
	p.Stations = append(p.Stations, PalletStation{Index: 5, XCenterIn: 540, Ramp: true})
	return p
}

// mockRegistry is an in-memory ProfileRegistry for tests.
type mockRegistry struct {
	profiles map[string]*AircraftProfile
	order    []string
}

func newMockRegistry(profs ...*AircraftProfile) *mockRegistry {
	m := &mockRegistry{profiles: make(map[string]*AircraftProfile, len(profs))}
	for _, p := range profs {
		m.profiles[p.TypeID] = p
		m.order = append(m.order, p.TypeID)
	}
	return m
}

func (m *mockRegistry) Get(typeID string) (*AircraftProfile, error) {
	p, ok := m.profiles[typeID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, typeID)
	}
	return p, nil
}

func (m *mockRegistry) Types() []string {
	return m.order
}

// manifestOf wraps items into a NormalizedManifest with a consistent
// summary, for tests that bypass Normalize.
func manifestOf(items ...CargoItem) *NormalizedManifest {
	m := &NormalizedManifest{
		Items:   items,
		Summary: ManifestSummary{ByCategory: map[string]int{}},
	}
	for i := range items {
		m.Summary.TotalItems++
		m.Summary.TotalWeightLb += items[i].WeightLb
		m.Summary.TotalPax += items[i].PaxCount
		m.Summary.ByCategory[items[i].Category.String()]++
	}
	return m
}

// idMultiset counts items by id.
func idMultiset(items []CargoItem) map[string]int {
	out := make(map[string]int, len(items))
	for i := range items {
		out[items[i].ID]++
	}
	return out
}
