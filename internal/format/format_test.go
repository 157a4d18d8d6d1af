package format

import (
	"testing"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Decimal string", input: "10.00", want: "$10.00"},
		{name: "Integer string", input: "5", want: "$5.00"},
		{name: "Cents only", input: "0.49", want: "$0.49"},
		{name: "Zero is free", input: "0", want: PriceFree},
		{name: "Zero decimal is free", input: "0.00", want: PriceFree},
		{name: "Empty string", input: "", want: PriceUnavailable},
		{name: "Garbage", input: "not a price", want: PriceUnavailable},
		{name: "NaN literal", input: "NaN", want: PriceUnavailable},
		{name: "Whitespace around value", input: " 3.50 ", want: "$3.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Price(tt.input); got != tt.want {
				t.Errorf("Price(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClassifyRating(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Tier
	}{
		{name: "Very Positive", input: "Very Positive", want: TierPositive},
		{name: "Overwhelmingly Positive", input: "Overwhelmingly Positive", want: TierPositive},
		{name: "Case insensitive", input: "MOSTLY POSITIVE", want: TierPositive},
		{name: "Mixed", input: "Mixed", want: TierMixed},
		{name: "Mostly Negative", input: "Mostly Negative", want: TierMixed},
		{name: "Negative", input: "Negative", want: TierNegative},
		{name: "Placeholder", input: "NA", want: TierNegative},
		{name: "Empty", input: "", want: TierNegative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyRating(tt.input); got != tt.want {
				t.Errorf("ClassifyRating(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClassifyMetascore(t *testing.T) {
	tests := []struct {
		name  string
		input int
		want  Tier
	}{
		{name: "Zero is unknown", input: 0, want: TierUnknown},
		{name: "Negative is unknown", input: -5, want: TierUnknown},
		{name: "Boundary 75", input: 75, want: TierPositive},
		{name: "High score", input: 98, want: TierPositive},
		{name: "Boundary 50", input: 50, want: TierMixed},
		{name: "Mid score", input: 60, want: TierMixed},
		{name: "Low score", input: 49, want: TierNegative},
		{name: "Bottom", input: 1, want: TierNegative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyMetascore(tt.input); got != tt.want {
				t.Errorf("ClassifyMetascore(%d) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
