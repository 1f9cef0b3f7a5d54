package export

import (
	"encoding/json"
	"fmt"

	"karaoke/internal/alignment"
)

// FormatJSON renders lines as an indented JSON array in input order.
func FormatJSON(lines []alignment.LineTiming) ([]byte, error) {
	if lines == nil {
		lines = []alignment.LineTiming{}
	}
	data, err := json.MarshalIndent(lines, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode timings: %w", err)
	}
	return append(data, '\n'), nil
}

// ParseJSON decodes the output of FormatJSON. Entries whose end precedes
// their start are rejected.
func ParseJSON(data []byte) ([]alignment.LineTiming, error) {
	var lines []alignment.LineTiming
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("decode timings: %w", err)
	}
	for i, line := range lines {
		if line.End < line.Start {
			return nil, fmt.Errorf("decode timings: line %d ends (%.3f) before it starts (%.3f)", i, line.End, line.Start)
		}
	}
	return lines, nil
}
