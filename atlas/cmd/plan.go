// cmd/plan.go
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/davidkohl/stratus/atlas/internal/manifestio"
	"github.com/davidkohl/stratus/atlas/internal/report"
	"github.com/davidkohl/stratus/loadplan"
	"github.com/davidkohl/stratus/profiles"
	"github.com/spf13/cobra"
)

var (
	planManifest string
	planAircraft string
	planPhase    string
	planJSON     bool
)

func init() {
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a single aircraft load",
		Long: `Normalize a movement manifest and plan one aircraft sortie for it.
Example: atlas plan -m manifest.json -a C-17

The manifest is a JSON array of movement-list records; fields may be
strings or numbers. The command prints the placed load, the
center-of-balance result, and anything that could not be placed.`,
		Example: `  # Plan a C-17 load from manifest.json
  atlas plan -m manifest.json -a C-17

  # Plan the advance-party wave on a C-130J, wire JSON output
  atlas plan -m manifest.json -a C-130J --phase ADVANCE --json`,
		RunE: runPlan,
	}

	planCmd.Flags().StringVarP(&planManifest, "manifest", "m", "", "Manifest JSON file")
	planCmd.MarkFlagRequired("manifest")
	planCmd.Flags().StringVarP(&planAircraft, "aircraft", "a", "C-17", "Aircraft type id")
	planCmd.Flags().StringVar(&planPhase, "phase", "MAIN", "Deployment phase (MAIN or ADVANCE)")
	planCmd.Flags().BoolVar(&planJSON, "json", false, "Emit the wire JSON form")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	logger := ConfigureLogger(Verbose, JsonLogs, LogFile)

	records, err := manifestio.ReadFile(planManifest)
	if err != nil {
		return err
	}

	manifest, err := loadplan.Normalize(records)
	if err != nil {
		return err
	}
	logger.Debug("manifest normalized",
		"items", manifest.Summary.TotalItems,
		"weight_lb", manifest.Summary.TotalWeightLb,
		"warnings", len(manifest.Warnings))

	classified := loadplan.Classify(manifest)
	group := classified.Group(parsePhase(planPhase))

	planner, err := loadplan.NewPlanner(profiles.Default(), nil)
	if err != nil {
		return err
	}

	plan, leftover, err := planner.PlanAircraft(planAircraft, group, 1)
	if err != nil {
		return err
	}

	if planJSON {
		return report.WriteJSON(os.Stdout, plan)
	}
	fmt.Print(report.Plan(plan))
	if len(leftover) > 0 {
		fmt.Printf("Unplaced: %d items\n", len(leftover))
	}
	return nil
}

func parsePhase(s string) loadplan.Phase {
	if strings.EqualFold(strings.TrimSpace(s), "ADVANCE") {
		return loadplan.PhaseAdvance
	}
	return loadplan.PhaseMain
}
