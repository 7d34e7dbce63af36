package subtitle

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const srtTimeLayout = "15:04:05,000"

var midnight = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// FormatTimestamp renders seconds as an SRT timestamp (HH:MM:SS,mmm) on a
// 24-hour clock starting at midnight. Offsets of a day or more wrap around.
func FormatTimestamp(seconds float64) string {
	ms := time.Duration(math.Round(seconds*1000)) * time.Millisecond
	return midnight.Add(ms).Format(srtTimeLayout)
}

func FormatSRT(cues []Cue) string {
	blocks := make([]string, 0, len(cues))
	for i, c := range cues {
		blocks = append(blocks, formatBlock(i+1, c))
	}
	return strings.Join(blocks, "\n")
}

func formatBlock(index int, c Cue) string {
	return fmt.Sprintf("%d\n%s --> %s\n%s\n", index, FormatTimestamp(c.StartTime), FormatTimestamp(c.EndTime), c.Transcript)
}
