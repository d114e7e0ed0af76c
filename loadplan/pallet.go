// loadplan/pallet.go
package loadplan

import (
	"fmt"
	"sort"
)

// 463L pallet constants. The outer envelope is 88" × 108"; cargo is
// restrained inside the 84" × 104" usable surface.
const (
	PalletLengthIn       = 108.0
	PalletWidthIn        = 88.0
	PalletUsableLengthIn = 104.0
	PalletUsableWidthIn  = 84.0
	PalletTareLb         = 355.0 // pallet plus nets

	PalletHeightTierIn    = 96.0
	PalletMaxHeightIn     = 100.0
	PalletPayloadLowLb    = 10000.0 // stack height <= 96"
	PalletPayloadHighLb   = 8000.0  // 96" < stack height <= 100"
)

// palletPayloadLimitLb returns the payload limit for a stack height.
func palletPayloadLimitLb(heightIn float64) float64 {
	if heightIn > PalletHeightTierIn {
		return PalletPayloadHighLb
	}
	return PalletPayloadLowLb
}

// IDGen synthesizes pallet ids. Implementations must be stable across
// re-runs for a given input so plans stay byte-identical.
type IDGen interface {
	NextPalletID() string
}

// SequentialIDGen is the reference IDGen: an incrementing counter
// seeded at 1.
type SequentialIDGen struct {
	n int
}

// NewSequentialIDGen returns a SequentialIDGen starting at PAL-0001.
func NewSequentialIDGen() *SequentialIDGen {
	return &SequentialIDGen{}
}

func (g *SequentialIDGen) NextPalletID() string {
	g.n++
	return fmt.Sprintf("PAL-%04d", g.n)
}

// Pallet is one built (or prebuilt) 463L pallet. A pallet exclusively
// owns its items by id reference.
type Pallet struct {
	ID       string      `json:"id"`
	Items    []CargoItem `json:"items"`
	Prebuilt bool        `json:"prebuilt,omitempty"`

	// Planform of the load. Built pallets use the 463L envelope;
	// prebuilt pallets carry the dimensions of their manifest entry.
	LengthIn float64 `json:"lengthIn"`
	WidthIn  float64 `json:"widthIn"`
	HeightIn float64 `json:"heightIn"`

	Hazmat bool `json:"hazmat,omitempty"`

	// remainingAreaSqIn tracks the usable surface still open during
	// building. Not meaningful for prebuilt pallets.
	remainingAreaSqIn float64
}

// PayloadLb is the summed item weight, excluding tare.
func (p *Pallet) PayloadLb() float64 {
	w := 0.0
	for i := range p.Items {
		w += p.Items[i].WeightLb
	}
	return w
}

// GrossWeightLb is the weight the aircraft carries for this pallet.
// Prebuilt pallets are weighed as manifested; built pallets add the
// tare and nets.
func (p *Pallet) GrossWeightLb() float64 {
	if p.Prebuilt {
		return p.PayloadLb()
	}
	return p.PayloadLb() + PalletTareLb
}

// FootprintAreaSqIn is the planform area of the pallet.
func (p *Pallet) FootprintAreaSqIn() float64 {
	return p.LengthIn * p.WidthIn
}

// admits reports whether the item can join this pallet under the
// footprint, weight-tier, and hazmat rules.
func (p *Pallet) admits(item *CargoItem) bool {
	if p.Prebuilt {
		return false
	}
	if item.Hazmat != p.Hazmat {
		return false
	}
	if !item.FitsFootprint(PalletUsableLengthIn, PalletUsableWidthIn) {
		return false
	}
	if item.FootprintAreaSqIn() > p.remainingAreaSqIn {
		return false
	}
	height := p.HeightIn
	if item.HeightIn > height {
		height = item.HeightIn
	}
	return p.PayloadLb()+item.WeightLb <= palletPayloadLimitLb(height)
}

// add places the item on the pallet. Callers must check admits first.
func (p *Pallet) add(item CargoItem) {
	p.Items = append(p.Items, item)
	p.remainingAreaSqIn -= item.FootprintAreaSqIn()
	if item.HeightIn > p.HeightIn {
		p.HeightIn = item.HeightIn
	}
}

// PalletFromPrebuilt wraps an already-built pallet manifest entry.
func PalletFromPrebuilt(item CargoItem) *Pallet {
	return &Pallet{
		ID:       item.ID,
		Items:    []CargoItem{item},
		Prebuilt: true,
		LengthIn: item.LengthIn,
		WidthIn:  item.WidthIn,
		HeightIn: item.HeightIn,
		Hazmat:   item.Hazmat,
	}
}

// BuildPallets groups loose palletizable items onto 463L pallets:
// greedy first-fit-decreasing by footprint area, ties broken by weight
// descending then id. Hazmat and non-hazmat items never share a
// pallet. Items that can never ride a pallet are returned unpalletized
// with an explanatory issue.
func BuildPallets(items []CargoItem, gen IDGen) ([]*Pallet, []CargoItem, []Issue) {
	if gen == nil {
		gen = NewSequentialIDGen()
	}

	sorted := make([]CargoItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		ai, aj := sorted[i].FootprintAreaSqIn(), sorted[j].FootprintAreaSqIn()
		if ai != aj {
			return ai > aj
		}
		if sorted[i].WeightLb != sorted[j].WeightLb {
			return sorted[i].WeightLb > sorted[j].WeightLb
		}
		return sorted[i].ID < sorted[j].ID
	})

	var (
		pallets      []*Pallet
		unpalletized []CargoItem
		issues       []Issue
	)

	for _, item := range sorted {
		if item.HeightIn > PalletMaxHeightIn {
			unpalletized = append(unpalletized, item)
			issues = append(issues, Issue{
				Severity:   SeverityWarning,
				Code:       CodeOverheightPallet,
				ItemRef:    item.ID,
				Field:      "height_in",
				Message:    fmt.Sprintf("height %.1f\" cannot ride a 463L pallet", item.HeightIn),
				Suggestion: "move as rolling stock or reduce height",
			})
			continue
		}
		if !item.FitsFootprint(PalletUsableLengthIn, PalletUsableWidthIn) {
			unpalletized = append(unpalletized, item)
			issues = append(issues, Issue{
				Severity:   SeverityWarning,
				Code:       CodePalletUnplaced,
				ItemRef:    item.ID,
				Field:      "length_in",
				Message:    fmt.Sprintf("footprint %.0f×%.0f\" exceeds the usable pallet surface", item.LengthIn, item.WidthIn),
				Suggestion: "move as rolling stock",
			})
			continue
		}
		if item.WeightLb > palletPayloadLimitLb(item.HeightIn) {
			unpalletized = append(unpalletized, item)
			issues = append(issues, Issue{
				Severity:   SeverityWarning,
				Code:       CodeOverweightPallet,
				ItemRef:    item.ID,
				Field:      "weight_lb",
				Message:    fmt.Sprintf("weight %.0f lb exceeds the pallet payload limit", item.WeightLb),
				Suggestion: "split the load across multiple records",
			})
			continue
		}

		placed := false
		for _, p := range pallets {
			if p.admits(&item) {
				p.add(item)
				placed = true
				break
			}
		}
		if !placed {
			// A 463L rides with its 108" side across the aircraft, so
			// the pallet's along-bay length is the 88" side.
			p := &Pallet{
				ID:                gen.NextPalletID(),
				LengthIn:          PalletWidthIn,
				WidthIn:           PalletLengthIn,
				Hazmat:            item.Hazmat,
				remainingAreaSqIn: PalletUsableLengthIn * PalletUsableWidthIn,
			}
			p.add(item)
			pallets = append(pallets, p)
		}
	}

	return pallets, unpalletized, issues
}
