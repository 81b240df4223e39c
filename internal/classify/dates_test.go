package classify

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMineEffectiveDates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "singular bokmål",
			text: "Loven trer i kraft. I kraft fra 2020-01-01.",
			want: []string{"2020-01-01"},
		},
		{
			name: "singular nynorsk",
			text: "I kraft frå 2021-07-01",
			want: []string{"2021-07-01"},
		},
		{
			name: "case insensitive and missing whitespace",
			text: "i KRAFT fra2020-01-01",
			want: []string{"2020-01-01"},
		},
		{
			name: "comma separated list expands every token",
			text: "I kraft fra 2020-01-01, 2021-07-01, 2022-12-24",
			// The singular rule also fires on the first token; the caller
			// deduplicates.
			want: []string{"2020-01-01", "2020-01-01", "2021-07-01", "2022-12-24"},
		},
		{
			name: "spelled out month name",
			text: "Fra 1. juli 2024 gjelder loven.",
			want: []string{"2024-07-01"},
		},
		{
			name: "spelled out month is case insensitive",
			text: "Fra 24. DESEMBER 2022",
			want: []string{"2022-12-24"},
		},
		{
			name: "unknown month name dropped silently",
			text: "Fra 1. brumaire 2024",
			want: nil,
		},
		{
			name: "no dates",
			text: "Denne loven handler om noe helt annet.",
			want: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, MineEffectiveDates(tt.text))
		})
	}
}

func TestMineEffectiveDatesIdempotent(t *testing.T) {
	t.Parallel()

	text := "I kraft fra 2020-01-01, 2021-07-01. Fra 3. mars 2023."
	first := MineEffectiveDates(text)
	second := MineEffectiveDates(text)
	require.Equal(t, first, second)
}

func TestEffectiveDateNotFixed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want bool
	}{
		{"Loven gjelder fra den tid Kongen bestemmer.", true},
		{"I kraft frå Kongen fastset.", true},
		{"KONGEN FASTSETTER tidspunktet.", true},
		{"I kraft fra 2020-01-01.", false},
		{"", false},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, EffectiveDateNotFixed(tt.text), "text: %q", tt.text)
	}
}

func TestParseISODate(t *testing.T) {
	t.Parallel()

	if _, ok := ParseISODate("2020-01-01"); !ok {
		t.Fatal("expected valid ISO date")
	}
	if _, ok := ParseISODate(" 2020-01-01 "); !ok {
		t.Fatal("expected surrounding whitespace to be tolerated")
	}
	if _, ok := ParseISODate("01.01.2020"); ok {
		t.Fatal("expected non-ISO format to be rejected")
	}
	if _, ok := ParseISODate(""); ok {
		t.Fatal("expected empty string to be rejected")
	}
}
