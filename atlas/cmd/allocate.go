// cmd/allocate.go
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/davidkohl/stratus/atlas/internal/manifestio"
	"github.com/davidkohl/stratus/atlas/internal/report"
	"github.com/davidkohl/stratus/loadplan"
	"github.com/davidkohl/stratus/profiles"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	allocManifest string
	allocConfig   string
	allocFleet    string
	allocMode     string
	allocPrefer   string
	allocStrength int
	allocJSON     bool
)

func init() {
	allocateCmd := &cobra.Command{
		Use:   "allocate",
		Short: "Allocate a manifest across a fleet",
		Long: `Distribute a movement manifest across the available fleet under an
allocation policy, planning each aircraft in turn.

Fleet availability comes from --fleet or from a config file; flags
override file values. The process exit code reflects the result:
0 feasible, 1 partial, 2 infeasible, 3 invalid input.`,
		Example: `  # Two C-17s and four C-130Js, cheapest mix
  atlas allocate -m manifest.json --fleet C-17=2,C-130J=4 --mode OPTIMIZE_COST

  # Fleet and policy from a config file
  atlas allocate -m manifest.json --config fleet.yaml`,
		RunE: runAllocate,
	}

	allocateCmd.Flags().StringVarP(&allocManifest, "manifest", "m", "", "Manifest JSON file")
	allocateCmd.MarkFlagRequired("manifest")
	allocateCmd.Flags().StringVarP(&allocConfig, "config", "c", "", "Fleet/policy config file (YAML or JSON)")
	allocateCmd.Flags().StringVar(&allocFleet, "fleet", "", "Fleet availability, e.g. C-17=2,C-130J=4")
	allocateCmd.Flags().StringVar(&allocMode, "mode", "PREFERRED_FIRST", "Allocation mode")
	allocateCmd.Flags().StringVar(&allocPrefer, "preferred", "", "Preferred aircraft type id")
	allocateCmd.Flags().IntVar(&allocStrength, "strength", 100, "Preference strength 0-100 (reserved)")
	allocateCmd.Flags().BoolVar(&allocJSON, "json", false, "Emit the wire JSON form")

	rootCmd.AddCommand(allocateCmd)
}

func runAllocate(cmd *cobra.Command, args []string) error {
	logger := ConfigureLogger(Verbose, JsonLogs, LogFile)

	result, err := allocateFromFlags(cmd)
	if err != nil {
		if errors.Is(err, loadplan.ErrInvalidInput) ||
			errors.Is(err, loadplan.ErrInvalidMode) ||
			errors.Is(err, loadplan.ErrUnknownProfile) {
			ExitCode = 3
		}
		return err
	}

	logger.Info("allocation finished",
		"status", string(result.Status),
		"aircraft", result.Metrics.TotalAircraft,
		"unplaced", len(result.UnplacedItems))

	switch result.Status {
	case loadplan.StatusFeasible:
		ExitCode = 0
	case loadplan.StatusPartial:
		ExitCode = 1
	case loadplan.StatusInfeasible:
		ExitCode = 2
	}

	if allocJSON {
		return report.WriteJSON(os.Stdout, result)
	}
	fmt.Print(report.Allocation(result))
	return nil
}

// allocateFromFlags assembles inputs from the flags and config file
// and runs the allocator.
func allocateFromFlags(cmd *cobra.Command) (*loadplan.AllocationResult, error) {
	records, err := manifestio.ReadFile(allocManifest)
	if err != nil {
		return nil, err
	}

	manifest, err := loadplan.Normalize(records)
	if err != nil {
		return nil, err
	}

	avail, policy, err := resolveFleetConfig(cmd)
	if err != nil {
		return nil, err
	}

	allocator, err := loadplan.NewAllocator(profiles.Default(), nil)
	if err != nil {
		return nil, err
	}
	return allocator.Allocate(manifest, avail, policy)
}

// resolveFleetConfig merges the config file and flags; flags win.
func resolveFleetConfig(cmd *cobra.Command) (loadplan.FleetAvailability, loadplan.Policy, error) {
	var avail loadplan.FleetAvailability
	var policy loadplan.Policy

	v := viper.New()
	if allocConfig != "" {
		v.SetConfigFile(allocConfig)
		if err := v.ReadInConfig(); err != nil {
			return avail, policy, fmt.Errorf("%w: reading config: %v", loadplan.ErrInvalidInput, err)
		}

		var fileFleet []loadplan.FleetType
		if err := v.UnmarshalKey("fleet", &fileFleet); err != nil {
			return avail, policy, fmt.Errorf("%w: fleet config: %v", loadplan.ErrInvalidInput, err)
		}
		avail.Types = fileFleet

		if !cmd.Flags().Changed("mode") && v.IsSet("mode") {
			allocMode = v.GetString("mode")
		}
		if !cmd.Flags().Changed("preferred") && v.IsSet("preferred") {
			allocPrefer = v.GetString("preferred")
		}
		if !cmd.Flags().Changed("strength") && v.IsSet("strength") {
			allocStrength = v.GetInt("strength")
		}
	}

	if allocFleet != "" {
		types, err := parseFleetSpec(allocFleet)
		if err != nil {
			return avail, policy, err
		}
		avail.Types = types
	}

	mode, err := loadplan.ParseMode(allocMode)
	if err != nil {
		return avail, policy, err
	}

	policy = loadplan.Policy{
		Mode:               mode,
		PreferredTypeID:    allocPrefer,
		PreferenceStrength: allocStrength,
	}
	return avail, policy, nil
}

// parseFleetSpec parses "C-17=2,C-130J=4" into availability entries.
// A trailing "!" locks a type, e.g. "C-17=2!".
func parseFleetSpec(spec string) ([]loadplan.FleetType, error) {
	var out []loadplan.FleetType
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("%w: fleet entry %q, want TYPE=COUNT", loadplan.ErrInvalidInput, part)
		}
		locked := strings.HasSuffix(kv[1], "!")
		countStr := strings.TrimSuffix(kv[1], "!")
		count, err := strconv.Atoi(strings.TrimSpace(countStr))
		if err != nil {
			return nil, fmt.Errorf("%w: fleet count %q", loadplan.ErrInvalidInput, kv[1])
		}
		typeID := strings.TrimSpace(kv[0])
		if typeID == "" {
			return nil, fmt.Errorf("%w: fleet entry %q has no type id", loadplan.ErrInvalidInput, part)
		}
		out = append(out, loadplan.FleetType{
			TypeID: typeID,
			Count:  count,
			Locked: locked,
		})
	}
	return out, nil
}
