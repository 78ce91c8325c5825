package recommended

import "github.com/shopspring/decimal"

// RecommendedItem is the card shown in the home page "most loved" strip.
type RecommendedItem struct {
	ID            string           `json:"id"`
	Slug          string           `json:"slug"`
	Name          string           `json:"name"`
	Category      string           `json:"category"`
	Image         string           `json:"image"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Rating        float64          `json:"rating"`
	Reviews       int              `json:"reviews"`
	IsNew         bool             `json:"isNew"`
	OnSale        bool             `json:"onSale"`
}

// Page is a window over the featured items.
type Page struct {
	Items  []RecommendedItem `json:"items"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}
