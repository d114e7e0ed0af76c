// profiles/c17/c17.go
package c17

import "github.com/davidkohl/stratus/loadplan"

// TypeID is the registry key for the C-17A Globemaster III.
const TypeID = "C-17"

// Cargo floor geometry, inches.
const (
	cargoLengthIn = 816
	cargoWidthIn  = 216
	cargoHeightIn = 148

	rampLengthIn          = 240
	rampClearanceWidthIn  = 144
	rampClearanceHeightIn = 130
)

// New returns the C-17A profile: 18 pallet stations (two rows of eight
// on the main deck plus two in tandem on the ramp), 170,900 lb
// payload, and the published CoB envelope.
func New() *loadplan.AircraftProfile {
	p := &loadplan.AircraftProfile{
		TypeID: TypeID,
		Name:   "C-17A Globemaster III",

		CargoLengthIn: cargoLengthIn,
		CargoWidthIn:  cargoWidthIn,
		CargoHeightIn: cargoHeightIn,

		RampLengthIn:          rampLengthIn,
		RampClearanceWidthIn:  rampClearanceWidthIn,
		RampClearanceHeightIn: rampClearanceHeightIn,

		MaxPayloadLb:         170900,
		MainPositionWeightLb: 10355,
		RampPositionWeightLb: 7500,
		FloorLoadingLbSqIn:   5,

		HeightZones: []loadplan.HeightZone{
			{XStartIn: cargoLengthIn, XEndIn: cargoLengthIn + rampLengthIn, MaxHeightIn: rampClearanceHeightIn},
		},

		Envelope: loadplan.CoBEnvelope{MinPercentMAC: 16, MaxPercentMAC: 40},

		MACLengthIn:         1056,
		LEMACStationIn:      245,
		BayForwardStationIn: 245,
		RefDatumIn:          0,

		Cost: loadplan.CostParams{CostPerSortie: 85000, CostPerHour: 15000, HoursPerLeg: 4},
	}

	// Main deck: two rows of eight at a 96" pitch.
	idx := 0
	for _, y := range []float64{-54, 54} {
		for k := 0; k < 8; k++ {
			p.Stations = append(p.Stations, loadplan.PalletStation{
				Index:     idx,
				XCenterIn: 48 + float64(k)*96,
				YCenterIn: y,
			})
			idx++
		}
	}
	// Ramp: two stations in tandem on the centerline.
	for _, x := range []float64{872, 980} {
		p.Stations = append(p.Stations, loadplan.PalletStation{
			Index:     idx,
			XCenterIn: x,
			YCenterIn: 0,
			Ramp:      true,
		})
		idx++
	}

	return p
}
