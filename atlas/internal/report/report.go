// internal/report/report.go
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/davidkohl/stratus/loadplan"
)

// Package report renders engine results for the terminal. The wire
// JSON form is stable; the text form is for humans.

// WriteJSON writes the indented wire representation.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Plan renders one load plan as aligned text.
func Plan(plan *loadplan.LoadPlan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Load plan %s  (%s, sortie %d, %s phase)\n",
		plan.ID, plan.ProfileID, plan.Sequence, plan.Phase)
	fmt.Fprintf(&b, "  gross %.0f lb  utilization %.1f%%  positions %d/%d  CoB %.1f%% MAC (%s)\n",
		plan.Totals.WeightLb, plan.Totals.Utilization*100,
		plan.Totals.PositionsUsed, plan.Totals.PositionsAvailable,
		plan.CoB.PercentMAC, plan.CoB.Status)
	if plan.PaxCount > 0 {
		fmt.Fprintf(&b, "  passengers: %d\n", plan.PaxCount)
	}

	tw := tabwriter.NewWriter(&b, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  KIND\tREF\tDECK\tPOS\tX\tY\tWEIGHT")
	for i := range plan.Vehicles {
		p := &plan.Vehicles[i].Placement
		fmt.Fprintf(tw, "  vehicle\t%s\t%s\t-\t%.0f–%.0f\t%+.0f\t%.0f lb\n",
			p.ItemRef, p.Deck, p.XStartIn, p.XEndIn(), p.YCenterIn, p.WeightLb)
	}
	for i := range plan.Pallets {
		p := &plan.Pallets[i].Placement
		pos := "-"
		if p.PositionIndex >= 0 {
			pos = fmt.Sprintf("%d", p.PositionIndex)
		}
		fmt.Fprintf(tw, "  pallet\t%s\t%s\t%s\t%.0f–%.0f\t%+.0f\t%.0f lb\n",
			p.ItemRef, p.Deck, pos, p.XStartIn, p.XEndIn(), p.YCenterIn, p.WeightLb)
	}
	tw.Flush()

	for _, issue := range plan.Issues {
		fmt.Fprintf(&b, "  %s\n", issue)
	}

	return b.String()
}

// Allocation renders a fleet allocation as aligned text.
func Allocation(res *loadplan.AllocationResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Status: %s\n", res.Status)
	fmt.Fprintf(&b, "%s\n", res.Explanation)
	fmt.Fprintf(&b, "Aircraft: %d  cost $%.0f  utilization %.1f%%  avg CoB %.1f%% MAC\n",
		res.Metrics.TotalAircraft, res.Metrics.TotalCost,
		res.Metrics.Utilization*100, res.Metrics.CoBAverage)

	for _, plan := range res.LoadPlans {
		b.WriteString("\n")
		b.WriteString(Plan(plan))
	}

	if len(res.UnplacedItems) > 0 {
		fmt.Fprintf(&b, "\nUnplaced items (%d):\n", len(res.UnplacedItems))
		tw := tabwriter.NewWriter(&b, 2, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  ID\tDESCRIPTION\tCATEGORY\tWEIGHT")
		for _, it := range res.UnplacedItems {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%.0f lb\n",
				it.ID, it.Description, it.Category, it.WeightLb)
		}
		tw.Flush()
	}

	for _, issue := range res.Issues {
		fmt.Fprintf(&b, "%s\n", issue)
	}

	return b.String()
}
