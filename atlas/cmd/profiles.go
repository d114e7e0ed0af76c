// cmd/profiles.go
package cmd

import (
	"github.com/davidkohl/stratus/profiles"
	"github.com/spf13/cobra"
)

func init() {
	profilesCmd := &cobra.Command{
		Use:   "profiles",
		Short: "List available aircraft profiles",
		Long: `Display the aircraft profiles compiled into the planner.
This command lists every profile the default registry carries, with its
cargo geometry, payload, and pallet position count.`,
		Run: runProfiles,
	}

	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, args []string) {
	// Configure logging
	logger := ConfigureLogger(Verbose, JsonLogs, LogFile)

	logger.Info("Available aircraft profiles")

	registry := profiles.Default()
	for _, typeID := range registry.Types() {
		p, err := registry.Get(typeID)
		if err != nil {
			continue
		}
		logger.Info("Profile",
			"type", p.TypeID,
			"name", p.Name,
			"bay_in", p.CargoLengthIn,
			"payload_lb", p.MaxPayloadLb,
			"positions", len(p.Stations),
			"envelope", p.Envelope,
		)
	}
}
