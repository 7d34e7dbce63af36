package subtitle

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const DefaultWindowSeconds = 5.0

var (
	ErrWordOrder     = errors.New("word start times are not in order")
	ErrMalformedWord = errors.New("malformed word")
	ErrInvalidWindow = errors.New("invalid window duration")
)

type Word struct {
	Text      string
	StartTime float64
	EndTime   float64
}

type Cue struct {
	Transcript string
	StartTime  float64
	EndTime    float64
}

type GapPolicy string

const (
	// GapPolicySingleStep advances the grid by one window per boundary word,
	// so windows far behind a word are skipped without emitting cues.
	GapPolicySingleStep GapPolicy = "single-step"
	// GapPolicyFill walks the grid forward until the window contains the word
	// and emits an empty cue for every window passed over.
	GapPolicyFill GapPolicy = "fill"
)

func ParseGapPolicy(s string) (GapPolicy, error) {
	switch GapPolicy(strings.TrimSpace(s)) {
	case "", GapPolicySingleStep:
		return GapPolicySingleStep, nil
	case GapPolicyFill:
		return GapPolicyFill, nil
	}
	return "", fmt.Errorf("unknown gap policy %q", s)
}

type SegmentOptions struct {
	WindowSeconds float64
	GapPolicy     GapPolicy
}

func DefaultSegmentOptions() SegmentOptions {
	return SegmentOptions{WindowSeconds: DefaultWindowSeconds, GapPolicy: GapPolicySingleStep}
}

// Segment groups words into cues on a fixed grid of WindowSeconds. Cue start
// times are grid aligned; an interior cue ends at its last word's end time.
// On error no cues are returned.
func Segment(words []Word, opts SegmentOptions) ([]Cue, error) {
	window := opts.WindowSeconds
	if math.IsNaN(window) || math.IsInf(window, 0) || window <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWindow, window)
	}
	if err := validateWords(words); err != nil {
		return nil, err
	}

	var cues []Cue
	currentStart := 0.0
	open := newCue("", currentStart, window)
	var text strings.Builder

	for _, w := range words {
		if w.StartTime >= currentStart+window {
			open.Transcript = text.String()
			cues = append(cues, open)
			currentStart += window
			if opts.GapPolicy == GapPolicyFill {
				for w.StartTime >= currentStart+window {
					cues = append(cues, newCue("", currentStart, window))
					currentStart += window
				}
			}
			open = newCue(w.Text, currentStart, window)
			text.Reset()
			text.WriteString(w.Text)
			continue
		}
		if text.Len() > 0 {
			text.WriteByte(' ')
		}
		text.WriteString(w.Text)
		open.EndTime = roundTenth(w.EndTime)
	}

	open.Transcript = text.String()
	cues = append(cues, open)
	return cues, nil
}

func newCue(text string, start, window float64) Cue {
	return Cue{
		Transcript: text,
		StartTime:  roundTenth(start),
		EndTime:    roundTenth(start + window),
	}
}

func validateWords(words []Word) error {
	for i, w := range words {
		if !isFinite(w.StartTime) || !isFinite(w.EndTime) {
			return fmt.Errorf("%w: word %d (%q) has non-finite time [%v, %v]", ErrMalformedWord, i, w.Text, w.StartTime, w.EndTime)
		}
		if i > 0 && w.StartTime < words[i-1].StartTime {
			return fmt.Errorf("%w: word %d (%q) starts at %v before previous start %v", ErrWordOrder, i, w.Text, w.StartTime, words[i-1].StartTime)
		}
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// roundTenth rounds half away from zero to one decimal place.
func roundTenth(f float64) float64 {
	return math.Round(f*10) / 10
}
