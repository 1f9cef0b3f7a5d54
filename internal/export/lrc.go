package export

import (
	"fmt"
	"strings"

	"karaoke/internal/alignment"
)

// FormatLRC renders "[MM:SS.CC]text" rows joined by newlines. Only start
// times are encoded.
func FormatLRC(lines []alignment.LineTiming) string {
	rows := make([]string, len(lines))
	for i, line := range lines {
		rows[i] = "[" + FormatLRCTimestamp(line.Start) + "]" + line.Text
	}
	return strings.Join(rows, "\n")
}

// FormatLRCTimestamp formats seconds as MM:SS.CC. Centiseconds are truncated,
// so 65.256 becomes "01:05.25".
func FormatLRCTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	whole := int64(seconds)
	minutes := whole / 60
	secs := whole % 60
	centis := int64((seconds - float64(whole)) * 100)
	return fmt.Sprintf("%02d:%02d.%02d", minutes, secs, centis)
}
