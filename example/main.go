// example/main.go
package main

import (
	"fmt"

	"github.com/davidkohl/stratus/loadplan"
	"github.com/davidkohl/stratus/profiles"
)

func main() {
	// A small mixed movement: a truck, loose cargo, and passengers.
	records := []loadplan.RawRecord{
		{ItemID: "HMMWV-1", Description: "Utility truck", LengthIn: 190, WidthIn: 85, HeightIn: 74, WeightLb: 7700},
		{ItemID: "GEN-SET", Description: "Generator set", LengthIn: 60, WidthIn: 48, HeightIn: 52, WeightLb: 2400, Quantity: 3},
		{ItemID: "MED-PLT", Description: "Medical pallet", LengthIn: 108, WidthIn: 88, HeightIn: 72, WeightLb: 4100},
		{ItemID: "CHALK-1", Description: "Maintenance team", Pax: 18},
	}

	manifest, err := loadplan.Normalize(records)
	if err != nil {
		fmt.Printf("Failed to normalize manifest: %v\n", err)
		return
	}
	for _, w := range manifest.Warnings {
		fmt.Println(w)
	}

	allocator, err := loadplan.NewAllocator(profiles.Default(), nil)
	if err != nil {
		fmt.Printf("Failed to create allocator: %v\n", err)
		return
	}

	result, err := allocator.Allocate(manifest,
		loadplan.FleetAvailability{Types: []loadplan.FleetType{
			{TypeID: "C-17", Count: 1},
			{TypeID: "C-130J", Count: 2},
		}},
		loadplan.Policy{Mode: loadplan.ModeOptimizeCost},
	)
	if err != nil {
		fmt.Printf("Allocation failed: %v\n", err)
		return
	}

	fmt.Println(result.Explanation)
	for _, plan := range result.LoadPlans {
		fmt.Printf("%s: %d pallets, %d vehicles, %d pax, %.0f lb, CoB %.1f%% MAC (%s)\n",
			plan.ID, len(plan.Pallets), len(plan.Vehicles), plan.PaxCount,
			plan.Totals.WeightLb, plan.CoB.PercentMAC, plan.CoB.Status)
	}
	if len(result.UnplacedItems) > 0 {
		fmt.Printf("Unplaced: %d items\n", len(result.UnplacedItems))
	}
}
