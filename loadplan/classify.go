// loadplan/classify.go
package loadplan

// PhaseGroup is the slice of a manifest moving in one deployment wave,
// split by category.
type PhaseGroup struct {
	Phase        Phase       `json:"phase"`
	RollingStock []CargoItem `json:"rollingStock,omitempty"`
	Palletizable []CargoItem `json:"palletizable,omitempty"`
	Prebuilt     []CargoItem `json:"prebuilt,omitempty"`
	Passengers   []CargoItem `json:"passengers,omitempty"`
}

// PaxCount is the total head count across the group's passenger
// entries.
func (g *PhaseGroup) PaxCount() int {
	n := 0
	for i := range g.Passengers {
		n += g.Passengers[i].PaxCount
	}
	return n
}

// Items flattens the group back into a single item slice, preserving
// the normalized manifest order.
func (g *PhaseGroup) Items() []CargoItem {
	out := make([]CargoItem, 0,
		len(g.RollingStock)+len(g.Palletizable)+len(g.Prebuilt)+len(g.Passengers))
	out = append(out, g.RollingStock...)
	out = append(out, g.Palletizable...)
	out = append(out, g.Prebuilt...)
	out = append(out, g.Passengers...)
	return out
}

// Empty reports whether the group carries nothing.
func (g *PhaseGroup) Empty() bool {
	return len(g.RollingStock) == 0 && len(g.Palletizable) == 0 &&
		len(g.Prebuilt) == 0 && len(g.Passengers) == 0
}

// TotalWeightLb sums the group's item weights.
func (g *PhaseGroup) TotalWeightLb() float64 {
	w := 0.0
	for _, it := range g.Items() {
		w += it.WeightLb
	}
	return w
}

// ClassifiedManifest splits a normalized manifest by phase and
// category. Classification is a pure, idempotent regrouping; it never
// invents or drops items.
type ClassifiedManifest struct {
	Advance PhaseGroup `json:"advance"`
	Main    PhaseGroup `json:"main"`
}

// Items flattens both phases, advance first.
func (c *ClassifiedManifest) Items() []CargoItem {
	return append(c.Advance.Items(), c.Main.Items()...)
}

// Group returns the group for the given phase.
func (c *ClassifiedManifest) Group(p Phase) *PhaseGroup {
	if p == PhaseAdvance {
		return &c.Advance
	}
	return &c.Main
}

// Classify splits normalized items into phase groups by category.
func Classify(m *NormalizedManifest) *ClassifiedManifest {
	if m == nil {
		return &ClassifiedManifest{
			Advance: PhaseGroup{Phase: PhaseAdvance},
			Main:    PhaseGroup{Phase: PhaseMain},
		}
	}
	return ClassifyItems(m.Items)
}

// ClassifyItems groups an item slice by phase and category.
func ClassifyItems(items []CargoItem) *ClassifiedManifest {
	c := &ClassifiedManifest{
		Advance: PhaseGroup{Phase: PhaseAdvance},
		Main:    PhaseGroup{Phase: PhaseMain},
	}
	for _, it := range items {
		g := c.Group(it.Phase())
		switch it.Category {
		case RollingStock:
			g.RollingStock = append(g.RollingStock, it)
		case Palletizable:
			g.Palletizable = append(g.Palletizable, it)
		case PrebuiltPallet:
			g.Prebuilt = append(g.Prebuilt, it)
		case Passenger:
			g.Passengers = append(g.Passengers, it)
		}
	}
	return c
}
