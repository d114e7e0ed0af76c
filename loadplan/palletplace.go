// loadplan/palletplace.go
package loadplan

import (
	"fmt"
	"math"
	"sort"
)

// Pallet placement tuning.
const (
	gridStepIn = 0.5

	scoreAreaWeight = 0.4
	scoreCoBWeight  = 0.5
	scoreMainDeck   = 0.1
)

// PalletPlacer places pallets into the free floor space left after
// vehicle placement. Candidates are the profile pallet stations that
// fit inside a maximal free rectangle, scored by area fit, CoB shift,
// and deck; free-rectangle corners and a fine grid along the main deck
// serve as fallbacks.
type PalletPlacer struct {
	Profile   *AircraftProfile
	Validator *Validator
}

// NewPalletPlacer returns a placer for the profile.
func NewPalletPlacer(profile *AircraftProfile) *PalletPlacer {
	return &PalletPlacer{Profile: profile, Validator: NewValidator(profile)}
}

// palletCandidate is one scored placement option.
type palletCandidate struct {
	rect          Rect // floor rectangle the pallet would occupy
	positionIndex int
	ramp          bool
	lengthIn      float64 // along X
	widthIn       float64 // along Y
	score         float64
}

// Place positions the pallets, largest footprint first. Pallets that
// cannot be placed are returned for the residual set.
func (pp *PalletPlacer) Place(plan *LoadPlan, pallets []*Pallet, free *FreeSpace) ([]*Pallet, []Issue) {
	prof := pp.Profile

	sorted := make([]*Pallet, len(pallets))
	copy(sorted, pallets)
	sort.SliceStable(sorted, func(i, j int) bool {
		ai, aj := sorted[i].FootprintAreaSqIn(), sorted[j].FootprintAreaSqIn()
		if ai != aj {
			return ai > aj
		}
		if gi, gj := sorted[i].GrossWeightLb(), sorted[j].GrossWeightLb(); gi != gj {
			return gi > gj
		}
		return sorted[i].ID < sorted[j].ID
	})

	var (
		unplaced []*Pallet
		issues   []Issue
	)

	for _, p := range sorted {
		if plan.TotalWeightLb()+p.GrossWeightLb() > prof.MaxPayloadLb {
			unplaced = append(unplaced, p)
			issues = append(issues, Issue{
				Severity:   SeverityWarning,
				Code:       CodePalletUnplaced,
				ItemRef:    p.ID,
				Message:    fmt.Sprintf("gross %.0f lb exceeds the remaining payload of %s", p.GrossWeightLb(), prof.TypeID),
				Suggestion: "allocate another aircraft",
			})
			continue
		}

		placed := pp.tryCandidates(plan, p, free, pp.stationCandidates(plan, p, free))
		if !placed {
			placed = pp.tryCandidates(plan, p, free, pp.cornerCandidates(plan, p, free))
		}
		if !placed {
			placed = pp.gridSearch(plan, p, free)
		}
		if !placed {
			unplaced = append(unplaced, p)
			issues = append(issues, Issue{
				Severity:   SeverityWarning,
				Code:       CodePalletUnplaced,
				ItemRef:    p.ID,
				Message:    fmt.Sprintf("no feasible position on %s", prof.TypeID),
				Suggestion: "allocate another aircraft",
			})
		}
	}

	return unplaced, issues
}

// orientations returns the pallet's distinct planform orientations as
// (alongX, alongY) pairs, 0° first.
func (p *Pallet) orientations() [][2]float64 {
	out := [][2]float64{{p.LengthIn, p.WidthIn}}
	if p.LengthIn != p.WidthIn {
		out = append(out, [2]float64{p.WidthIn, p.LengthIn})
	}
	return out
}

// stationCandidates scores the unoccupied pallet stations the pallet
// fits on.
func (pp *PalletPlacer) stationCandidates(plan *LoadPlan, p *Pallet, free *FreeSpace) []palletCandidate {
	prof := pp.Profile
	used := plan.usedStations()
	gross := p.GrossWeightLb()

	var out []palletCandidate
	for _, s := range prof.Stations {
		if used[s.Index] || gross > prof.StationLimit(s) {
			continue
		}
		for _, o := range p.orientations() {
			rect := Rect{
				X0: s.XCenterIn - o[0]/2, X1: s.XCenterIn + o[0]/2,
				Y0: s.YCenterIn - o[1]/2, Y1: s.YCenterIn + o[1]/2,
				Ramp: s.Ramp,
			}
			host, ok := containingRect(free, rect)
			if !ok {
				continue
			}
			out = append(out, palletCandidate{
				rect:          rect,
				positionIndex: s.Index,
				ramp:          s.Ramp,
				lengthIn:      o[0],
				widthIn:       o[1],
				score:         pp.score(plan, p, rect, host, s.Ramp),
			})
		}
	}
	return out
}

// cornerCandidates scores the forward-port corner of every free
// rectangle the pallet fits in, snapping to a station index when the
// resulting center lands on one.
func (pp *PalletPlacer) cornerCandidates(plan *LoadPlan, p *Pallet, free *FreeSpace) []palletCandidate {
	prof := pp.Profile
	gross := p.GrossWeightLb()

	var out []palletCandidate
	for _, r := range free.Rects() {
		if r.Ramp && gross > prof.RampPositionWeightLb {
			continue
		}
		for _, o := range p.orientations() {
			if !r.FitsFootprint(o[0], o[1]) {
				continue
			}
			rect := Rect{X0: r.X0, Y0: r.Y0, X1: r.X0 + o[0], Y1: r.Y0 + o[1], Ramp: r.Ramp}
			idx := pp.snapStation(plan, rect, gross)
			out = append(out, palletCandidate{
				rect:          rect,
				positionIndex: idx,
				ramp:          r.Ramp,
				lengthIn:      o[0],
				widthIn:       o[1],
				score:         pp.score(plan, p, rect, r, r.Ramp),
			})
		}
	}
	return out
}

// score implements the placement preference: best-area-fit, small CoB
// shift, and main-deck positions.
func (pp *PalletPlacer) score(plan *LoadPlan, p *Pallet, rect, host Rect, ramp bool) float64 {
	prof := pp.Profile

	areaScore := 0.0
	if host.Area() > 0 {
		areaScore = rect.Area() / host.Area()
	}

	candidate := PlacedBox{
		XStartIn: rect.X0,
		LengthIn: rect.WidthX(),
		WeightLb: p.GrossWeightLb(),
	}
	after := append(plan.Placements(), candidate)
	shift := math.Abs(ComputeCoB(prof, after).PercentMAC - prof.Envelope.Midpoint())
	cobScore := 1 / (1 + shift)

	score := scoreAreaWeight*areaScore + scoreCoBWeight*cobScore
	if !ramp {
		score += scoreMainDeck
	}
	return score
}

// tryCandidates validates candidates best-score-first and commits the
// first that passes the pipeline.
func (pp *PalletPlacer) tryCandidates(plan *LoadPlan, p *Pallet, free *FreeSpace, cands []palletCandidate) bool {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		return cands[i].positionIndex < cands[j].positionIndex
	})

	existing := plan.Placements()
	for i := range cands {
		if pp.commit(plan, p, free, &cands[i], existing) {
			return true
		}
	}
	return false
}

// commit validates one candidate and, if clean, records the placement
// and carves the floor space.
func (pp *PalletPlacer) commit(plan *LoadPlan, p *Pallet, free *FreeSpace, c *palletCandidate, existing []PlacedBox) bool {
	placement := PlacedBox{
		ItemRef:       p.ID,
		PlanID:        plan.ID,
		Kind:          PlacementPallet,
		Deck:          pp.Profile.DeckAt(c.rect.X0),
		XStartIn:      c.rect.X0,
		YCenterIn:     (c.rect.Y0 + c.rect.Y1) / 2,
		LengthIn:      c.lengthIn,
		WidthIn:       c.widthIn,
		HeightIn:      p.HeightIn,
		WeightLb:      p.GrossWeightLb(),
		PositionIndex: c.positionIndex,
		RampPosition:  c.ramp,
	}
	if hasErrors(pp.Validator.Validate(&placement, existing)) {
		return false
	}

	plan.Pallets = append(plan.Pallets, PlacedPallet{Pallet: p, Placement: placement})
	free.Occupy(c.rect)
	return true
}

// gridSearch is the last-resort sweep: 0.5" steps along the main deck,
// checking the port wall, centerline, and starboard wall tracks.
func (pp *PalletPlacer) gridSearch(plan *LoadPlan, p *Pallet, free *FreeSpace) bool {
	prof := pp.Profile
	gross := p.GrossWeightLb()
	existing := plan.Placements()

	for _, o := range p.orientations() {
		if o[1] > prof.CargoWidthIn {
			continue
		}
		yTracks := []float64{
			-(prof.CargoWidthIn - o[1]) / 2,
			0,
			(prof.CargoWidthIn - o[1]) / 2,
		}
		for x := 0.0; x+o[0] <= prof.CargoLengthIn+geomEps; x += gridStepIn {
			for _, y := range yTracks {
				rect := Rect{X0: x, Y0: y - o[1]/2, X1: x + o[0], Y1: y + o[1]/2}
				c := palletCandidate{
					rect:          rect,
					positionIndex: pp.snapStation(plan, rect, gross),
					lengthIn:      o[0],
					widthIn:       o[1],
				}
				if pp.commit(plan, p, free, &c, existing) {
					return true
				}
			}
		}
	}
	return false
}

// snapStation assigns a station index when the rect center falls
// within a quarter pitch of an unoccupied station on the matching row,
// and the station can take the weight. Returns -1 otherwise.
func (pp *PalletPlacer) snapStation(plan *LoadPlan, rect Rect, grossLb float64) int {
	prof := pp.Profile
	used := plan.usedStations()
	tol := prof.StationPitchIn() / 4
	xc := (rect.X0 + rect.X1) / 2
	yc := (rect.Y0 + rect.Y1) / 2

	bestIdx := -1
	bestDist := math.MaxFloat64
	for _, s := range prof.Stations {
		if used[s.Index] || grossLb > prof.StationLimit(s) {
			continue
		}
		dx := math.Abs(xc - s.XCenterIn)
		if dx > tol || math.Abs(yc-s.YCenterIn) > PalletWidthIn/2 {
			continue
		}
		if dx < bestDist {
			bestDist = dx
			bestIdx = s.Index
		}
	}
	return bestIdx
}

// containingRect finds a free rectangle fully containing rect.
func containingRect(free *FreeSpace, rect Rect) (Rect, bool) {
	for _, r := range free.Rects() {
		if r.Ramp == rect.Ramp && r.Contains(rect) {
			return r, true
		}
	}
	return Rect{}, false
}
