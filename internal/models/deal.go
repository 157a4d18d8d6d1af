package models

// Store is one retailer from the upstream /stores listing.
type Store struct {
	StoreID   string `json:"storeID"`
	StoreName string `json:"storeName"`
	IsActive  int    `json:"isActive"`
}

// Deal is the list form of a deal as returned by a /deals page query.
// Numeric fields arrive as strings and may be empty or malformed; parsing
// and fallback handling belong to the normalizer, never to the decoder.
type Deal struct {
	DealID          string `json:"dealID"`
	Title           string `json:"title"`
	Thumb           string `json:"thumb,omitempty"`
	SalePrice       string `json:"salePrice"`
	NormalPrice     string `json:"normalPrice"`
	StoreID         string `json:"storeID"`
	MetacriticScore string `json:"metacriticScore,omitempty"`
}

// DealDetail is the detail form fetched for a single deal identifier.
type DealDetail struct {
	Info          DealInfo       `json:"info"`
	CheaperStores []CheaperStore `json:"cheaperStores"`
}

// DealInfo carries the primary listing of a detail record.
type DealInfo struct {
	Title           string `json:"title"`
	Thumb           string `json:"thumb,omitempty"`
	SalePrice       string `json:"salePrice"`
	RetailPrice     string `json:"retailPrice"`
	StoreID         string `json:"storeID"`
	MetacriticScore string `json:"metacriticScore,omitempty"`
	SteamRatingText string `json:"steamRatingText,omitempty"`
}

// CheaperStore is one alternative offer for the same title.
type CheaperStore struct {
	DealID    string `json:"dealID"`
	StoreID   string `json:"storeID"`
	SalePrice string `json:"salePrice"`
}
