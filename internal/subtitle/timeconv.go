package subtitle

import (
	"fmt"
	"strconv"
	"strings"
)

// Offset is a time offset as reported by the transcription service.
type Offset struct {
	Seconds int64
	Nanos   int32
}

type TimedWord struct {
	Text  string
	Start Offset
	End   Offset
}

// TimeConversion turns an Offset into floating-point seconds.
type TimeConversion func(Offset) (float64, error)

const (
	ConversionConcat = "concat"
	ConversionScaled = "scaled"
)

// ConvertConcat reads the nanosecond field as the literal digits after the
// decimal point, so {1, 50000000} becomes 1.5 rather than 1.05. Cue boundaries
// produced by earlier runs depend on this reading.
func ConvertConcat(o Offset) (float64, error) {
	if o.Nanos < 0 {
		return 0, fmt.Errorf("%w: negative nanos %d", ErrMalformedWord, o.Nanos)
	}
	f, err := strconv.ParseFloat(fmt.Sprintf("%d.%d", o.Seconds, o.Nanos), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedWord, err)
	}
	return f, nil
}

// ConvertScaled is the arithmetic conversion, seconds + nanos/1e9.
func ConvertScaled(o Offset) (float64, error) {
	if o.Nanos < 0 {
		return 0, fmt.Errorf("%w: negative nanos %d", ErrMalformedWord, o.Nanos)
	}
	return float64(o.Seconds) + float64(o.Nanos)/1e9, nil
}

func ParseTimeConversion(name string) (TimeConversion, error) {
	switch strings.TrimSpace(name) {
	case "", ConversionConcat:
		return ConvertConcat, nil
	case ConversionScaled:
		return ConvertScaled, nil
	}
	return nil, fmt.Errorf("unknown word time conversion %q", name)
}

// WordsFromTimed converts service offsets into Words. A nil conv means ConvertConcat.
func WordsFromTimed(timed []TimedWord, conv TimeConversion) ([]Word, error) {
	if conv == nil {
		conv = ConvertConcat
	}
	words := make([]Word, 0, len(timed))
	for i, tw := range timed {
		start, err := conv(tw.Start)
		if err != nil {
			return nil, fmt.Errorf("word %d (%q) start: %w", i, tw.Text, err)
		}
		end, err := conv(tw.End)
		if err != nil {
			return nil, fmt.Errorf("word %d (%q) end: %w", i, tw.Text, err)
		}
		words = append(words, Word{Text: tw.Text, StartTime: start, EndTime: end})
	}
	return words, nil
}
