// Package normalize derives the display-ready form of raw deal records.
// Every function here is pure and total: missing, malformed or zero
// fields always resolve through a fallback, never through an error.
package normalize

import (
	"math"
	"strconv"
	"strings"

	"flashdeals/internal/format"
	"flashdeals/internal/models"
)

// originalPriceFactor inflates the sale price into a reference price
// when the retail price is absent or not strictly above the sale price.
// A retail price at or below the sale price counts as "unknown" here,
// not as a zero or negative discount.
const originalPriceFactor = 1.5

// maxAlternativeOffers caps the offers listed in a detail view.
const maxAlternativeOffers = 5

// metascoreUnknown is shown when the upstream score is zero or missing.
const metascoreUnknown = "N/A"

// Lookup resolves a store identifier to a display name. It must be
// total; the store directory satisfies it.
type Lookup interface {
	Lookup(storeID string) string
}

// Card is the display-ready form of one listed deal.
type Card struct {
	DealID        string      `json:"dealID"`
	Title         string      `json:"title"`
	Thumb         string      `json:"thumb,omitempty"`
	SalePrice     string      `json:"salePrice"`
	RetailPrice   string      `json:"retailPrice"`
	ShowRetail    bool        `json:"showRetail"`
	OriginalPrice float64     `json:"originalPrice"`
	Discount      int         `json:"discount"`
	Metascore     string      `json:"metascore"`
	MetascoreTier format.Tier `json:"metascoreTier"`
	StoreName     string      `json:"storeName"`
}

// Offer is one alternative store offer inside a detail view.
type Offer struct {
	DealID      string `json:"dealID"`
	StoreName   string `json:"storeName"`
	SalePrice   string `json:"salePrice"`
	RedirectURL string `json:"redirectURL"`
}

// Detail is the display-ready form of a deal's detail record.
type Detail struct {
	DealID          string      `json:"dealID"`
	Title           string      `json:"title"`
	Thumb           string      `json:"thumb,omitempty"`
	StoreName       string      `json:"storeName"`
	SalePrice       string      `json:"salePrice"`
	RetailPrice     string      `json:"retailPrice"`
	ShowRetail      bool        `json:"showRetail"`
	OriginalPrice   float64     `json:"originalPrice"`
	Discount        int         `json:"discount"`
	Metascore       string      `json:"metascore"`
	MetascoreTier   format.Tier `json:"metascoreTier"`
	SteamRatingText string      `json:"steamRatingText"`
	SteamRatingTier format.Tier `json:"steamRatingTier"`
	RedirectURL     string      `json:"redirectURL"`
	ShowOffers      bool        `json:"showOffers"`
	Offers          []Offer     `json:"offers,omitempty"`
}

// Normalizer turns raw records into view models using the store
// directory for names and the redirect base for outbound deal links.
type Normalizer struct {
	stores          Lookup
	redirectBaseURL string
}

func New(stores Lookup, redirectBaseURL string) *Normalizer {
	return &Normalizer{
		stores:          stores,
		redirectBaseURL: strings.TrimRight(redirectBaseURL, "/"),
	}
}

// Card normalizes one list-form deal.
func (n *Normalizer) Card(d models.Deal) Card {
	sale := parsePrice(d.SalePrice)
	retail := parsePrice(d.NormalPrice)
	original, discount := derivePricing(sale, retail)
	score := parseScore(d.MetacriticScore)

	return Card{
		DealID:        d.DealID,
		Title:         d.Title,
		Thumb:         d.Thumb,
		SalePrice:     format.Price(d.SalePrice),
		RetailPrice:   format.Price(d.NormalPrice),
		ShowRetail:    retail > sale,
		OriginalPrice: original,
		Discount:      discount,
		Metascore:     metascoreDisplay(score),
		MetascoreTier: format.ClassifyMetascore(score),
		StoreName:     n.stores.Lookup(d.StoreID),
	}
}

// Detail normalizes a detail record. The primary listing goes through
// the same pricing rules as a card; alternative offers are listed in
// source order, capped, and the primary store's own offer is dropped.
func (n *Normalizer) Detail(dealID string, d models.DealDetail) Detail {
	info := d.Info
	sale := parsePrice(info.SalePrice)
	retail := parsePrice(info.RetailPrice)
	original, discount := derivePricing(sale, retail)
	score := parseScore(info.MetacriticScore)

	rating := info.SteamRatingText
	if rating == "" {
		rating = "NA"
	}

	var offers []Offer
	for _, cs := range d.CheaperStores {
		if cs.StoreID == info.StoreID {
			continue
		}
		offers = append(offers, Offer{
			DealID:      cs.DealID,
			StoreName:   n.stores.Lookup(cs.StoreID),
			SalePrice:   format.Price(cs.SalePrice),
			RedirectURL: n.RedirectURL(cs.DealID),
		})
		if len(offers) == maxAlternativeOffers {
			break
		}
	}

	return Detail{
		DealID:          dealID,
		Title:           info.Title,
		Thumb:           info.Thumb,
		StoreName:       n.stores.Lookup(info.StoreID),
		SalePrice:       format.Price(info.SalePrice),
		RetailPrice:     format.Price(info.RetailPrice),
		ShowRetail:      retail > sale,
		OriginalPrice:   original,
		Discount:        discount,
		Metascore:       metascoreDisplay(score),
		MetascoreTier:   format.ClassifyMetascore(score),
		SteamRatingText: rating,
		SteamRatingTier: format.ClassifyRating(rating),
		RedirectURL:     n.RedirectURL(dealID),
		ShowOffers:      len(d.CheaperStores) > 1,
		Offers:          offers,
	}
}

// RedirectURL builds the upstream redirect link for a deal.
func (n *Normalizer) RedirectURL(dealID string) string {
	return n.redirectBaseURL + "?dealID=" + dealID
}

// derivePricing applies the reference-price fallback and the discount
// rule. NaN inputs flow through the comparisons safely: every branch
// involving NaN evaluates false, which leaves the zero fallbacks. The
// reference price itself is clamped to zero when it is not a finite
// number, since NaN and Inf cannot be encoded as JSON.
func derivePricing(sale, retail float64) (original float64, discount int) {
	original = sale * originalPriceFactor
	if retail > sale {
		original = retail
	}
	if original > sale {
		pct := math.Round((original - sale) / original * 100)
		if !math.IsNaN(pct) && !math.IsInf(pct, 0) {
			discount = int(pct)
		}
	}
	if math.IsNaN(original) || math.IsInf(original, 0) {
		original = 0
	}
	return original, discount
}

func parsePrice(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func parseScore(raw string) int {
	score, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || score < 0 {
		return 0
	}
	return score
}

func metascoreDisplay(score int) string {
	if score <= 0 {
		return metascoreUnknown
	}
	return strconv.Itoa(score)
}
