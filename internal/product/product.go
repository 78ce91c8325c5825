package product

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wichananm65/skincare-storefront/internal/validation"
)

// Product is an immutable catalog record. Optional fields are pointers or
// nil slices; use the accessor methods for their display defaults.
type Product struct {
	ID             string           `json:"id" validate:"required"`
	Slug           string           `json:"slug" validate:"required"`
	Name           string           `json:"name" validate:"required"`
	Category       string           `json:"category" validate:"required,oneof=Cleanser Serum Moisturizer Sunscreen Treatment Mask"`
	Price          decimal.Decimal  `json:"price" validate:"gte=0"`
	OriginalPrice  *decimal.Decimal `json:"originalPrice,omitempty"`
	Description    string           `json:"description"`
	Image          string           `json:"image"`
	Images         []string         `json:"images,omitempty"`
	Rating         float64          `json:"rating" validate:"gte=0,lte=5"`
	Reviews        int              `json:"reviews" validate:"gte=0"`
	SkinTypes      []string         `json:"skinTypes" validate:"required,min=1,dive,oneof=Oily Dry Combination Sensitive Normal All"`
	Concerns       []string         `json:"concerns" validate:"required,min=1,dive,required"`
	KeyIngredients []KeyIngredient  `json:"keyIngredients,omitempty" validate:"dive"`
	Usage          *string          `json:"usage,omitempty"`
	BestUsed       *string          `json:"bestUsed,omitempty"`
	IsNew          bool             `json:"isNew"`
	OnSale         bool             `json:"onSale"`
	CreatedAt      time.Time        `json:"createdAt"`
}

type KeyIngredient struct {
	Name    string `json:"name" validate:"required"`
	Benefit string `json:"benefit"`
}

// Categories is the fixed category enumeration, in catalog filter order.
var Categories = []string{"Cleanser", "Serum", "Moisturizer", "Sunscreen", "Treatment", "Mask"}

// SkinTypes lists every skin type a product may declare. "All" is only ever
// declared by products, never offered as a filter.
var SkinTypes = []string{"Oily", "Dry", "Combination", "Sensitive", "Normal", "All"}

// Concerns is the concern vocabulary offered by the catalog filters.
var Concerns = []string{"Acne", "Aging", "Hydration", "Brightening", "Sensitivity", "Pores"}

// Gallery returns the product images, falling back to the main image
// repeated three times.
func (p Product) Gallery() []string {
	if len(p.Images) > 0 {
		return slices.Clone(p.Images)
	}
	return []string{p.Image, p.Image, p.Image}
}

// Savings is originalPrice - price, zero when the product is not discounted.
func (p Product) Savings() decimal.Decimal {
	if p.OriginalPrice == nil {
		return decimal.Zero
	}
	return p.OriginalPrice.Sub(p.Price)
}

func (p Product) UsageOrDefault() string {
	if p.Usage == nil {
		return "Apply as directed."
	}
	return *p.Usage
}

func (p Product) BestUsedOrDefault() string {
	if p.BestUsed == nil {
		return "Morning and evening"
	}
	return *p.BestUsed
}

// Validate checks the record against the catalog schema. The keys of the
// returned map are json field names; an empty map means the record is ok.
func (p Product) Validate() map[string]string {
	errs := validation.Fields(p)
	if p.OriginalPrice != nil && p.OriginalPrice.LessThan(p.Price) {
		errs["originalPrice"] = "originalPrice must be >= price"
	}
	return errs
}
