package subtitle

import (
	"errors"
	"math"
	"testing"
)

func TestConvertConcat_TreatsNanosAsDigits(t *testing.T) {
	cases := []struct {
		in   Offset
		want float64
	}{
		{Offset{Seconds: 0, Nanos: 0}, 0},
		{Offset{Seconds: 65, Nanos: 250000000}, 65.25},
		{Offset{Seconds: 1, Nanos: 50000000}, 1.5},
		{Offset{Seconds: 2, Nanos: 5}, 2.5},
		{Offset{Seconds: 7, Nanos: 100000000}, 7.1},
	}
	for _, c := range cases {
		got, err := ConvertConcat(c.in)
		if err != nil {
			t.Fatalf("ConvertConcat(%+v): unexpected error %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ConvertConcat(%+v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestConvertScaled(t *testing.T) {
	got, err := ConvertScaled(Offset{Seconds: 1, Nanos: 50000000})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if math.Abs(got-1.05) > 1e-12 {
		t.Fatalf("ConvertScaled = %v, want 1.05", got)
	}
}

func TestConversions_RejectNegativeNanos(t *testing.T) {
	for name, conv := range map[string]TimeConversion{"concat": ConvertConcat, "scaled": ConvertScaled} {
		if _, err := conv(Offset{Seconds: 1, Nanos: -1}); !errors.Is(err, ErrMalformedWord) {
			t.Fatalf("%s: expected ErrMalformedWord, got %v", name, err)
		}
	}
}

func TestParseTimeConversion(t *testing.T) {
	conv, err := ParseTimeConversion("")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got, _ := conv(Offset{Seconds: 1, Nanos: 50000000}); got != 1.5 {
		t.Fatalf("expected concat default, got %v", got)
	}
	conv, err = ParseTimeConversion("scaled")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got, _ := conv(Offset{Seconds: 1, Nanos: 500000000}); got != 1.5 {
		t.Fatalf("expected scaled conversion, got %v", got)
	}
	if _, err := ParseTimeConversion("divide"); err == nil {
		t.Fatal("expected error for unknown conversion")
	}
}

func TestWordsFromTimed(t *testing.T) {
	timed := []TimedWord{
		{Text: "hello", Start: Offset{Seconds: 0, Nanos: 300000000}, End: Offset{Seconds: 0, Nanos: 800000000}},
		{Text: "world", Start: Offset{Seconds: 1}, End: Offset{Seconds: 1, Nanos: 400000000}},
	}
	words, err := WordsFromTimed(timed, nil)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	want := []Word{
		{Text: "hello", StartTime: 0.3, EndTime: 0.8},
		{Text: "world", StartTime: 1.0, EndTime: 1.4},
	}
	if len(words) != len(want) {
		t.Fatalf("unexpected word count %d", len(words))
	}
	for i := range want {
		if words[i] != want[i] {
			t.Fatalf("word %d: got %+v, want %+v", i, words[i], want[i])
		}
	}
}

func TestWordsFromTimed_PropagatesMalformed(t *testing.T) {
	timed := []TimedWord{{Text: "bad", Start: Offset{Nanos: -5}}}
	if _, err := WordsFromTimed(timed, ConvertConcat); !errors.Is(err, ErrMalformedWord) {
		t.Fatalf("expected ErrMalformedWord, got %v", err)
	}
}
