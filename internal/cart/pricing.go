package cart

import "github.com/shopspring/decimal"

var (
	// FreeShippingThreshold is the subtotal from which shipping is free.
	FreeShippingThreshold = decimal.NewFromInt(50)
	// ShippingFee applies below the threshold.
	ShippingFee = decimal.RequireFromString("5.99")
	// TaxRate is applied to the subtotal.
	TaxRate = decimal.RequireFromString("0.08")
)

// Summary is the order summary block derived from a cart. It is never
// stored; compute it from the current items every time.
type Summary struct {
	ItemCount             int             `json:"itemCount"`
	Subtotal              decimal.Decimal `json:"subtotal"`
	Shipping              decimal.Decimal `json:"shipping"`
	FreeShipping          bool            `json:"freeShipping"`
	FreeShippingRemaining decimal.Decimal `json:"freeShippingRemaining"`
	Tax                   decimal.Decimal `json:"tax"`
	Total                 decimal.Decimal `json:"total"`
}

// Summarize prices a subtotal. Tax and total are computed exactly and
// rounded to cents only for display.
func Summarize(subtotal decimal.Decimal, itemCount int) Summary {
	free := subtotal.GreaterThanOrEqual(FreeShippingThreshold)
	shipping := ShippingFee
	remaining := FreeShippingThreshold.Sub(subtotal)
	if free {
		shipping = decimal.Zero
		remaining = decimal.Zero
	}
	tax := subtotal.Mul(TaxRate)
	total := subtotal.Add(shipping).Add(tax)

	return Summary{
		ItemCount:             itemCount,
		Subtotal:              subtotal.Round(2),
		Shipping:              shipping,
		FreeShipping:          free,
		FreeShippingRemaining: remaining.Round(2),
		Tax:                   tax.Round(2),
		Total:                 total.Round(2),
	}
}

// SummarizeItems prices a list of cart lines.
func SummarizeItems(items []CartItem) Summary {
	subtotal := decimal.Zero
	count := 0
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
		count += it.Quantity
	}
	return Summarize(subtotal, count)
}
