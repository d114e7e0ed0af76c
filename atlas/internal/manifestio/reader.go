// internal/manifestio/reader.go
package manifestio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/davidkohl/stratus/loadplan"
)

// Package manifestio implements the RawSource collaborator for the
// CLI: it reads already-parsed movement-list records from JSON. Field
// values stay loosely typed; the engine's normalizer does the
// interpretation.

// Read decodes a JSON array of movement-list records.
func Read(r io.Reader) ([]loadplan.RawRecord, error) {
	var rows []map[string]any
	dec := json.NewDecoder(r)
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}

	records := make([]loadplan.RawRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, loadplan.RawRecord{
			ItemID:      row["item_id"],
			Description: row["description"],
			LengthIn:    row["length_in"],
			WidthIn:     row["width_in"],
			HeightIn:    row["height_in"],
			WeightLb:    row["weight_lb"],
			LeadTCN:     row["lead_tcn"],
			Pax:         row["pax"],
			Quantity:    row["quantity"],
			Type:        row["type"],
			AdvonFlag:   row["advon_flag"],
			HazmatFlag:  row["hazmat_flag"],
			AxleWeights: row["axle_weights"],
		})
	}
	return records, nil
}

// ReadFile reads a manifest from a JSON file.
func ReadFile(path string) ([]loadplan.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer f.Close()
	return Read(f)
}
