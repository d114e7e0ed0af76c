// loadplan/geometry.go
package loadplan

import "fmt"

// Deck distinguishes the main cargo floor from the loading ramp.
type Deck int

const (
	DeckMain Deck = iota
	DeckRamp
)

func (d Deck) String() string {
	switch d {
	case DeckMain:
		return "MAIN"
	case DeckRamp:
		return "RAMP"
	default:
		return fmt.Sprintf("DECK(%d)", int(d))
	}
}

// MarshalText serializes the deck under its symbolic name.
func (d Deck) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// PlacementKind tags what a PlacedBox carries.
type PlacementKind int

const (
	PlacementVehicle PlacementKind = iota
	PlacementPallet
)

func (k PlacementKind) String() string {
	switch k {
	case PlacementVehicle:
		return "VEHICLE"
	case PlacementPallet:
		return "PALLET"
	default:
		return fmt.Sprintf("KIND(%d)", int(k))
	}
}

// MarshalText serializes the kind under its symbolic name.
func (k PlacementKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Box is an axis-aligned volume in the aircraft-local frame.
type Box struct {
	XStartIn, XEndIn   float64
	YLeftIn, YRightIn  float64
	ZBottomIn, ZTopIn  float64
}

// intervalsOverlap reports strict overlap of [a0,a1] and [b0,b1].
// Touching intervals do not overlap.
func intervalsOverlap(a0, a1, b0, b1 float64) bool {
	return a0 < b1 && b0 < a1
}

// Overlaps reports whether the boxes strictly overlap on all three
// axes.
func (b Box) Overlaps(o Box) bool {
	return intervalsOverlap(b.XStartIn, b.XEndIn, o.XStartIn, o.XEndIn) &&
		intervalsOverlap(b.YLeftIn, b.YRightIn, o.YLeftIn, o.YRightIn) &&
		intervalsOverlap(b.ZBottomIn, b.ZTopIn, o.ZBottomIn, o.ZTopIn)
}

// PlacedBox is one cargo placement inside an aircraft. The stored
// fields are the placement decision; the derived accessors expose the
// axis-aligned bounding box.
type PlacedBox struct {
	ItemRef string        `json:"itemRef"`
	PlanID  string        `json:"planId"`
	Kind    PlacementKind `json:"kind"`
	Deck    Deck          `json:"deck"`

	XStartIn  float64 `json:"xStartIn"`
	YCenterIn float64 `json:"yCenterIn"`
	ZBottomIn float64 `json:"zBottomIn"`

	LengthIn float64 `json:"lengthIn"`
	WidthIn  float64 `json:"widthIn"`
	HeightIn float64 `json:"heightIn"`
	WeightLb float64 `json:"weightLb"`

	// PositionIndex is the pallet station the placement snapped to, or
	// -1 when it sits between stations. RampPosition mirrors the
	// station's ramp flag.
	PositionIndex int  `json:"positionIndex"`
	RampPosition  bool `json:"rampPosition"`
}

func (p *PlacedBox) XEndIn() float64    { return p.XStartIn + p.LengthIn }
func (p *PlacedBox) XCenterIn() float64 { return p.XStartIn + p.LengthIn/2 }
func (p *PlacedBox) YLeftIn() float64   { return p.YCenterIn - p.WidthIn/2 }
func (p *PlacedBox) YRightIn() float64  { return p.YCenterIn + p.WidthIn/2 }
func (p *PlacedBox) ZTopIn() float64    { return p.ZBottomIn + p.HeightIn }

// Box returns the placement's axis-aligned bounding box.
func (p *PlacedBox) Box() Box {
	return Box{
		XStartIn:  p.XStartIn,
		XEndIn:    p.XEndIn(),
		YLeftIn:   p.YLeftIn(),
		YRightIn:  p.YRightIn(),
		ZBottomIn: p.ZBottomIn,
		ZTopIn:    p.ZTopIn(),
	}
}

// gap returns the separation between two intervals, negative when they
// overlap.
func gap(a0, a1, b0, b1 float64) float64 {
	if a1 <= b0 {
		return b0 - a1
	}
	if b1 <= a0 {
		return a0 - b1
	}
	return -1
}
