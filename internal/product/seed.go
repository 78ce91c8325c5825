package product

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed data/products.yaml
var seedYAML []byte

// seedRecord mirrors the YAML layout. Money and dates stay strings until
// they are converted so no float rounding sneaks into prices.
type seedRecord struct {
	ID             string          `yaml:"id"`
	Name           string          `yaml:"name"`
	Slug           string          `yaml:"slug"`
	Category       string          `yaml:"category"`
	Price          string          `yaml:"price"`
	OriginalPrice  string          `yaml:"originalPrice"`
	Description    string          `yaml:"description"`
	Image          string          `yaml:"image"`
	Images         []string        `yaml:"images"`
	Rating         float64         `yaml:"rating"`
	Reviews        int             `yaml:"reviews"`
	SkinTypes      []string        `yaml:"skinTypes"`
	Concerns       []string        `yaml:"concerns"`
	KeyIngredients []KeyIngredient `yaml:"keyIngredients"`
	Usage          string          `yaml:"usage"`
	BestUsed       string          `yaml:"bestUsed"`
	IsNew          bool            `yaml:"isNew"`
	OnSale         bool            `yaml:"onSale"`
	CreatedAt      string          `yaml:"createdAt"`
}

// Seed returns the catalog bundled with the binary.
func Seed() ([]Product, error) {
	return ParseSeed(seedYAML)
}

// ParseSeed decodes and validates a YAML product list. Ids and slugs must
// be unique.
func ParseSeed(data []byte) ([]Product, error) {
	var records []seedRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode product seed: %w", err)
	}

	out := make([]Product, 0, len(records))
	ids := make(map[string]bool, len(records))
	slugs := make(map[string]bool, len(records))
	for i, r := range records {
		p, err := r.toProduct()
		if err != nil {
			return nil, fmt.Errorf("product #%d: %w", i, err)
		}
		if errs := p.Validate(); len(errs) > 0 {
			return nil, fmt.Errorf("product %q: %v", p.Slug, errs)
		}
		if ids[p.ID] {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		if slugs[p.Slug] {
			return nil, fmt.Errorf("duplicate product slug %q", p.Slug)
		}
		ids[p.ID] = true
		slugs[p.Slug] = true
		out = append(out, p)
	}
	return out, nil
}

func (r seedRecord) toProduct() (Product, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return Product{}, fmt.Errorf("price: %w", err)
	}
	created, err := time.Parse(time.DateOnly, r.CreatedAt)
	if err != nil {
		return Product{}, fmt.Errorf("createdAt: %w", err)
	}

	p := Product{
		ID:             r.ID,
		Slug:           r.Slug,
		Name:           r.Name,
		Category:       r.Category,
		Price:          price,
		Description:    r.Description,
		Image:          r.Image,
		Images:         r.Images,
		Rating:         r.Rating,
		Reviews:        r.Reviews,
		SkinTypes:      r.SkinTypes,
		Concerns:       r.Concerns,
		KeyIngredients: r.KeyIngredients,
		IsNew:          r.IsNew,
		OnSale:         r.OnSale,
		CreatedAt:      created,
	}
	if r.OriginalPrice != "" {
		op, err := decimal.NewFromString(r.OriginalPrice)
		if err != nil {
			return Product{}, fmt.Errorf("originalPrice: %w", err)
		}
		p.OriginalPrice = &op
	}
	if r.Usage != "" {
		p.Usage = &r.Usage
	}
	if r.BestUsed != "" {
		p.BestUsed = &r.BestUsed
	}
	return p, nil
}
