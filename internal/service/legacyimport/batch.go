package legacyimport

import (
	"encoding/json"
	"fmt"
	"io"
)

// DecodeBatch reads a JSON array of historical timesheets.
func DecodeBatch(r io.Reader) ([]HistoricalTimesheet, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var batch []HistoricalTimesheet
	if err := dec.Decode(&batch); err != nil {
		return nil, fmt.Errorf("decode batch: %w", err)
	}
	return batch, nil
}
