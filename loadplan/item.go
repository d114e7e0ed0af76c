// loadplan/item.go
package loadplan

import (
	"fmt"
	"strings"
)

// Category classifies a manifest entry
type Category int

const (
	RollingStock Category = iota
	Palletizable
	PrebuiltPallet
	Passenger
)

func (c Category) String() string {
	switch c {
	case RollingStock:
		return "ROLLING_STOCK"
	case Palletizable:
		return "PALLETIZABLE"
	case PrebuiltPallet:
		return "PREBUILT_PALLET"
	case Passenger:
		return "PASSENGER"
	default:
		return fmt.Sprintf("CATEGORY(%d)", int(c))
	}
}

func (c Category) IsValid() bool {
	switch c {
	case RollingStock, Palletizable, PrebuiltPallet, Passenger:
		return true
	default:
		return false
	}
}

// MarshalText serializes the category under its symbolic name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses a symbolic category name.
func (c *Category) UnmarshalText(b []byte) error {
	cat, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = cat
	return nil
}

// ParseCategory maps a type token to a Category. Tokens follow the
// wire spelling; a few common aliases are accepted.
func ParseCategory(token string) (Category, error) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "ROLLING_STOCK", "ROLLING STOCK", "VEHICLE":
		return RollingStock, nil
	case "PALLETIZABLE", "LOOSE", "BULK":
		return Palletizable, nil
	case "PREBUILT_PALLET", "PALLET", "463L":
		return PrebuiltPallet, nil
	case "PASSENGER", "PAX":
		return Passenger, nil
	default:
		return 0, fmt.Errorf("%w: unknown category token %q", ErrInvalidInput, token)
	}
}

// Phase is the deployment wave an item moves in.
type Phase int

const (
	PhaseMain Phase = iota
	PhaseAdvance
)

func (p Phase) String() string {
	switch p {
	case PhaseAdvance:
		return "ADVANCE"
	case PhaseMain:
		return "MAIN"
	default:
		return fmt.Sprintf("PHASE(%d)", int(p))
	}
}

// MarshalText serializes the phase under its symbolic name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// PaxWeightLb is the planning weight of one passenger with gear.
const PaxWeightLb = 225.0

// CargoItem is a normalized manifest entry. After normalization every
// non-passenger item has strictly positive dimensions and weight and
// quantity 1; passenger entries carry their head count and a derived
// weight.
type CargoItem struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Quantity    int      `json:"quantity"`

	LengthIn float64 `json:"lengthIn"`
	WidthIn  float64 `json:"widthIn"`
	HeightIn float64 `json:"heightIn"`
	WeightLb float64 `json:"weightLb"`

	AxleWeightsLb []float64 `json:"axleWeightsLb,omitempty"`

	AdvanceParty bool   `json:"advanceParty,omitempty"`
	Hazmat       bool   `json:"hazmat,omitempty"`
	LeadTCN      string `json:"leadTcn,omitempty"`

	PaxCount int `json:"paxCount,omitempty"`
}

// FootprintAreaSqIn is the planform area of one unit.
func (c *CargoItem) FootprintAreaSqIn() float64 {
	return c.LengthIn * c.WidthIn
}

// Phase returns the deployment wave the item belongs to.
func (c *CargoItem) Phase() Phase {
	if c.AdvanceParty {
		return PhaseAdvance
	}
	return PhaseMain
}

// FitsFootprint reports whether the item's planform fits inside a
// length × width rectangle in either orientation.
func (c *CargoItem) FitsFootprint(lengthIn, widthIn float64) bool {
	return (c.LengthIn <= lengthIn && c.WidthIn <= widthIn) ||
		(c.WidthIn <= lengthIn && c.LengthIn <= widthIn)
}
