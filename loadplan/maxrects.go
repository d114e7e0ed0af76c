// loadplan/maxrects.go
package loadplan

// Free-space tracking for the pallet placer: a maximal-rectangles
// store over the X–Y projection of the cargo floor. Scoped to a single
// Load Planner invocation.

const geomEps = 1e-6

// Rect is an axis-aligned floor rectangle. Ramp marks rectangles on
// the loading ramp, which carry stricter weight limits.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
	Ramp   bool
}

func (r Rect) WidthX() float64 { return r.X1 - r.X0 }
func (r Rect) WidthY() float64 { return r.Y1 - r.Y0 }
func (r Rect) Area() float64   { return r.WidthX() * r.WidthY() }

// Contains reports whether o lies entirely inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X0 >= r.X0-geomEps && o.X1 <= r.X1+geomEps &&
		o.Y0 >= r.Y0-geomEps && o.Y1 <= r.Y1+geomEps
}

// Intersects reports strict overlap with o.
func (r Rect) Intersects(o Rect) bool {
	return r.X0 < o.X1-geomEps && o.X0 < r.X1-geomEps &&
		r.Y0 < o.Y1-geomEps && o.Y0 < r.Y1-geomEps
}

// FitsFootprint reports whether a length × width footprint fits in r
// without rotation.
func (r Rect) FitsFootprint(lengthIn, widthIn float64) bool {
	return lengthIn <= r.WidthX()+geomEps && widthIn <= r.WidthY()+geomEps
}

// FreeSpace is the set of maximal free rectangles remaining on the
// floor.
type FreeSpace struct {
	rects []Rect
}

// NewFreeSpace initializes the free set from the profile floorplan
// minus the X–Y shadows of existing placements. The main deck and the
// ramp are tracked as separate rectangles so ramp placements stay
// identifiable.
func NewFreeSpace(profile *AircraftProfile, placements []PlacedBox) *FreeSpace {
	f := &FreeSpace{}

	half := profile.CargoWidthIn / 2
	f.rects = append(f.rects, Rect{
		X0: 0, Y0: -half,
		X1: profile.CargoLengthIn, Y1: half,
	})
	if profile.RampLengthIn > 0 {
		rampHalf := profile.RampClearanceWidthIn / 2
		f.rects = append(f.rects, Rect{
			X0: profile.CargoLengthIn, Y0: -rampHalf,
			X1: profile.TotalLengthIn(), Y1: rampHalf,
			Ramp: true,
		})
	}

	for i := range placements {
		p := &placements[i]
		f.Occupy(Rect{
			X0: p.XStartIn, Y0: p.YLeftIn(),
			X1: p.XEndIn(), Y1: p.YRightIn(),
		})
	}

	return f
}

// Rects returns the current free rectangles. The returned slice is the
// internal slice. Do not modify it.
func (f *FreeSpace) Rects() []Rect {
	return f.rects
}

// Occupy carves the used rectangle out of the free set, splitting
// every intersecting free rectangle and pruning contained results.
func (f *FreeSpace) Occupy(used Rect) {
	var next []Rect
	for _, r := range f.rects {
		if !r.Intersects(used) {
			next = append(next, r)
			continue
		}
		next = append(next, splitRect(r, used)...)
	}
	f.rects = pruneRects(next)
}

// splitRect returns the up-to-four maximal pieces of r not covered by
// used.
func splitRect(r, used Rect) []Rect {
	var out []Rect

	if used.X0 > r.X0+geomEps { // piece forward of used
		p := r
		p.X1 = used.X0
		out = append(out, p)
	}
	if used.X1 < r.X1-geomEps { // piece aft of used
		p := r
		p.X0 = used.X1
		out = append(out, p)
	}
	if used.Y0 > r.Y0+geomEps { // piece port of used
		p := r
		p.Y1 = used.Y0
		out = append(out, p)
	}
	if used.Y1 < r.Y1-geomEps { // piece starboard of used
		p := r
		p.Y0 = used.Y1
		out = append(out, p)
	}

	// Drop degenerate slivers.
	var kept []Rect
	for _, p := range out {
		if p.WidthX() > geomEps && p.WidthY() > geomEps {
			kept = append(kept, p)
		}
	}
	return kept
}

// pruneRects removes rectangles contained in another rectangle of the
// set, keeping the first of exact duplicates.
func pruneRects(rects []Rect) []Rect {
	var out []Rect
	for i, r := range rects {
		contained := false
		for j, o := range rects {
			if i == j || r.Ramp != o.Ramp {
				continue
			}
			if o.Contains(r) && !(r.Contains(o) && i < j) {
				contained = true
				break
			}
		}
		if !contained {
			out = append(out, r)
		}
	}
	return out
}
