// profiles/c130/c130.go
package c130

import "github.com/davidkohl/stratus/loadplan"

// Registry keys for the two Hercules variants.
const (
	TypeIDH = "C-130H"
	TypeIDJ = "C-130J"
)

// Cargo floor geometry, inches. The H and J share the floor; the J
// carries more and flies cheaper legs.
const (
	cargoLengthIn = 492
	cargoWidthIn  = 123
	cargoHeightIn = 108

	rampLengthIn          = 123
	rampClearanceWidthIn  = 119
	rampClearanceHeightIn = 103
)

// NewH returns the C-130H profile: 6 pallet stations in a single row
// (five on the main deck, one on the ramp).
func NewH() *loadplan.AircraftProfile {
	p := base()
	p.TypeID = TypeIDH
	p.Name = "C-130H Hercules"
	p.MaxPayloadLb = 42000
	p.Cost = loadplan.CostParams{CostPerSortie: 28000, CostPerHour: 5500, HoursPerLeg: 3}
	return p
}

// NewJ returns the C-130J profile.
func NewJ() *loadplan.AircraftProfile {
	p := base()
	p.TypeID = TypeIDJ
	p.Name = "C-130J Super Hercules"
	p.MaxPayloadLb = 44000
	p.Cost = loadplan.CostParams{CostPerSortie: 32000, CostPerHour: 6000, HoursPerLeg: 2.5}
	return p
}

func base() *loadplan.AircraftProfile {
	p := &loadplan.AircraftProfile{
		CargoLengthIn: cargoLengthIn,
		CargoWidthIn:  cargoWidthIn,
		CargoHeightIn: cargoHeightIn,

		RampLengthIn:          rampLengthIn,
		RampClearanceWidthIn:  rampClearanceWidthIn,
		RampClearanceHeightIn: rampClearanceHeightIn,

		MainPositionWeightLb: 10355,
		RampPositionWeightLb: 4664,
		FloorLoadingLbSqIn:   3,

		HeightZones: []loadplan.HeightZone{
			{XStartIn: cargoLengthIn, XEndIn: cargoLengthIn + rampLengthIn, MaxHeightIn: rampClearanceHeightIn},
		},

		Envelope: loadplan.CoBEnvelope{MinPercentMAC: 18, MaxPercentMAC: 38},

		MACLengthIn:         615,
		LEMACStationIn:      487,
		BayForwardStationIn: 487,
		RefDatumIn:          0,
	}

	// Single row of five main-deck stations at a 92" pitch, then the
	// ramp station.
	for k := 0; k < 5; k++ {
		p.Stations = append(p.Stations, loadplan.PalletStation{
			Index:     k,
			XCenterIn: 46 + float64(k)*92,
		})
	}
	p.Stations = append(p.Stations, loadplan.PalletStation{
		Index:     5,
		XCenterIn: 540,
		Ramp:      true,
	})

	return p
}
