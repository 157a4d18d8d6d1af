package format

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Sentinels for price fields the upstream leaves blank or malformed.
const (
	PriceUnavailable = "N/A"
	PriceFree        = "Free"
)

// Tier is the qualitative bucket a critic or player score falls into.
type Tier string

const (
	TierPositive Tier = "positive"
	TierMixed    Tier = "mixed"
	TierNegative Tier = "negative"
	TierUnknown  Tier = "unknown"
)

var usd = message.NewPrinter(language.AmericanEnglish)

// Price renders a raw price field as a US-dollar string.
// Unparseable input yields PriceUnavailable and exactly zero yields
// PriceFree rather than a formatted zero.
func Price(raw string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return PriceUnavailable
	}
	if v == 0 {
		return PriceFree
	}
	return usd.Sprintf("%v", currency.Symbol(currency.USD.Amount(v)))
}

// ClassifyRating buckets a Steam rating phrase. Positive keywords are
// checked before mixed ones; anything unrecognized counts as negative.
func ClassifyRating(text string) Tier {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "positive"), strings.Contains(t, "overwhelmingly"):
		return TierPositive
	case strings.Contains(t, "mixed"), strings.Contains(t, "mostly"):
		return TierMixed
	default:
		return TierNegative
	}
}

// ClassifyMetascore buckets a 0-100 critic score. Zero means the score
// is unknown upstream, not that the title scored zero.
func ClassifyMetascore(score int) Tier {
	switch {
	case score <= 0:
		return TierUnknown
	case score >= 75:
		return TierPositive
	case score >= 50:
		return TierMixed
	default:
		return TierNegative
	}
}
