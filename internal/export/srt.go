package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"karaoke/internal/alignment"
)

// FormatSRT renders one caption block per line with 1-based indices.
func FormatSRT(lines []alignment.LineTiming) string {
	var b strings.Builder
	for i, line := range lines {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteByte('\n')
		b.WriteString(formatSRTTimestamp(line.Start))
		b.WriteString(" --> ")
		b.WriteString(formatSRTTimestamp(line.End))
		b.WriteByte('\n')
		b.WriteString(line.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}

func formatSRTTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalMillis := int64(math.Round(seconds * 1000))
	hours := totalMillis / 3_600_000
	minutes := (totalMillis / 60_000) % 60
	secs := (totalMillis / 1000) % 60
	millis := totalMillis % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// parseSRTTimestamp accepts "HH:MM:SS,mmm" and the period variant.
func parseSRTTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}

// ParseSRT reads caption blocks back into line timings. Multi-line captions
// are joined with a space.
func ParseSRT(content string) ([]alignment.LineTiming, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	var lines []alignment.LineTiming
	for _, block := range strings.Split(strings.TrimSpace(content), "\n\n") {
		rows := strings.Split(strings.TrimSpace(block), "\n")
		if len(rows) < 2 {
			continue
		}
		timing := rows[1]
		if !strings.Contains(timing, "-->") {
			return nil, fmt.Errorf("parse srt: block %q has no timing row", rows[0])
		}
		parts := strings.SplitN(timing, "-->", 2)
		start, err := parseSRTTimestamp(parts[0])
		if err != nil {
			return nil, fmt.Errorf("parse srt: %w", err)
		}
		end, err := parseSRTTimestamp(parts[1])
		if err != nil {
			return nil, fmt.Errorf("parse srt: %w", err)
		}
		lines = append(lines, alignment.LineTiming{
			Text:  strings.Join(rows[2:], " "),
			Start: start,
			End:   end,
		})
	}
	return lines, nil
}
