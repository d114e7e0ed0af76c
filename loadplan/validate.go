// loadplan/validate.go
package loadplan

import "fmt"

// Minimum separations between rolling-stock placements.
const (
	LateralClearanceIn      = 2.0
	LongitudinalClearanceIn = 4.0
)

// Validator runs the geometric checks for one aircraft profile. All
// methods are pure functions over PlacedBoxes.
type Validator struct {
	Profile *AircraftProfile
}

// NewValidator returns a Validator for the profile.
func NewValidator(profile *AircraftProfile) *Validator {
	return &Validator{Profile: profile}
}

// CheckBounds verifies the placement sits inside the bay, including
// the height zones.
func (v *Validator) CheckBounds(p *PlacedBox) []Issue {
	var issues []Issue
	prof := v.Profile

	if p.XStartIn < 0 {
		issues = append(issues, boundsIssue(CodeBoundsForwardExceeded, p,
			fmt.Sprintf("extends %.1f\" forward of the bay", -p.XStartIn)))
	}
	if p.XEndIn() > prof.TotalLengthIn() {
		issues = append(issues, boundsIssue(CodeBoundsAftExceeded, p,
			fmt.Sprintf("extends %.1f\" past the ramp end", p.XEndIn()-prof.TotalLengthIn())))
	}

	// The ramp is narrower than the bay; anything overlapping it is
	// held to the ramp clearance width.
	halfWidth := prof.CargoWidthIn / 2
	if p.XEndIn() > prof.CargoLengthIn && prof.RampClearanceWidthIn > 0 {
		halfWidth = prof.RampClearanceWidthIn / 2
	}
	if p.YLeftIn() < -halfWidth {
		issues = append(issues, boundsIssue(CodeBoundsLeftExceeded, p,
			fmt.Sprintf("extends %.1f\" past the port wall", -halfWidth-p.YLeftIn())))
	}
	if p.YRightIn() > halfWidth {
		issues = append(issues, boundsIssue(CodeBoundsRightExceeded, p,
			fmt.Sprintf("extends %.1f\" past the starboard wall", p.YRightIn()-halfWidth)))
	}

	if maxH := prof.MaxHeightOver(p.XStartIn, p.XEndIn()); p.ZTopIn() > maxH {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Code:     CodeOverheightForZone,
			ItemRef:  p.ItemRef,
			Message: fmt.Sprintf("top at %.1f\" exceeds the %.1f\" height limit over X %.0f–%.0f",
				p.ZTopIn(), maxH, p.XStartIn, p.XEndIn()),
			Suggestion: "move the placement out of the restricted zone",
		})
	}

	return issues
}

// CheckCollision verifies the placement against every existing
// placement in the same plan.
func (v *Validator) CheckCollision(p *PlacedBox, existing []PlacedBox) []Issue {
	var issues []Issue
	box := p.Box()
	for i := range existing {
		if existing[i].ItemRef == p.ItemRef {
			continue
		}
		if box.Overlaps(existing[i].Box()) {
			issues = append(issues, Issue{
				Severity:   SeverityError,
				Code:       CodeCollision3D,
				ItemRef:    p.ItemRef,
				Message:    fmt.Sprintf("overlaps placement %s", existing[i].ItemRef),
				Suggestion: "choose a different position",
				Details:    map[string]any{"other": existing[i].ItemRef},
			})
		}
	}
	return issues
}

// CheckClearances applies the rolling-stock separation rules: 2"
// laterally between vehicles sharing an X range on the same deck
// (error), 4" longitudinally between vehicles sharing a Y range
// (warning).
func (v *Validator) CheckClearances(p *PlacedBox, existing []PlacedBox) []Issue {
	if p.Kind != PlacementVehicle {
		return nil
	}
	var issues []Issue
	for i := range existing {
		o := &existing[i]
		if o.Kind != PlacementVehicle || o.ItemRef == p.ItemRef {
			continue
		}
		if o.Deck == p.Deck && intervalsOverlap(p.XStartIn, p.XEndIn(), o.XStartIn, o.XEndIn()) {
			if g := gap(p.YLeftIn(), p.YRightIn(), o.YLeftIn(), o.YRightIn()); g >= 0 && g < LateralClearanceIn {
				issues = append(issues, Issue{
					Severity:   SeverityError,
					Code:       CodeLateralClearance,
					ItemRef:    p.ItemRef,
					Message:    fmt.Sprintf("only %.1f\" laterally from %s, need %.0f\"", g, o.ItemRef, LateralClearanceIn),
					Suggestion: "shift the vehicle laterally",
				})
			}
		}
		if intervalsOverlap(p.YLeftIn(), p.YRightIn(), o.YLeftIn(), o.YRightIn()) {
			if g := gap(p.XStartIn, p.XEndIn(), o.XStartIn, o.XEndIn()); g >= 0 && g < LongitudinalClearanceIn {
				issues = append(issues, Issue{
					Severity:   SeverityWarning,
					Code:       CodeLongitudinalClearance,
					ItemRef:    p.ItemRef,
					Message:    fmt.Sprintf("only %.1f\" longitudinally from %s, want %.0f\"", g, o.ItemRef, LongitudinalClearanceIn),
					Suggestion: "open the longitudinal gap for tie-down access",
				})
			}
		}
	}
	return issues
}

// Validate runs the full pipeline for a candidate placement.
func (v *Validator) Validate(p *PlacedBox, existing []PlacedBox) []Issue {
	issues := v.CheckBounds(p)
	issues = append(issues, v.CheckCollision(p, existing)...)
	issues = append(issues, v.CheckClearances(p, existing)...)
	return issues
}

func boundsIssue(code IssueCode, p *PlacedBox, msg string) Issue {
	return Issue{
		Severity:   SeverityError,
		Code:       code,
		ItemRef:    p.ItemRef,
		Message:    msg,
		Suggestion: "reposition inside the cargo bay",
	}
}
