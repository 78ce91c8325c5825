package banner

import "slices"

// Repository provides access to home page content.
type Repository interface {
	List(limit int) []BannerItem
	Testimonials() []Testimonial
}

// InMemoryRepository serves the content shipped with the binary.
type InMemoryRepository struct {
	banners      []BannerItem
	testimonials []Testimonial
}

func NewInMemoryRepository(banners []BannerItem, testimonials []Testimonial) *InMemoryRepository {
	return &InMemoryRepository{banners: slices.Clone(banners), testimonials: slices.Clone(testimonials)}
}

// NewDefaultRepository returns the stock storefront slides and quotes.
func NewDefaultRepository() *InMemoryRepository {
	return NewInMemoryRepository(defaultBanners, defaultTestimonials)
}

func (r *InMemoryRepository) List(limit int) []BannerItem {
	if limit > len(r.banners) {
		limit = len(r.banners)
	}
	return slices.Clone(r.banners[:limit])
}

func (r *InMemoryRepository) Testimonials() []Testimonial {
	return slices.Clone(r.testimonials)
}

var defaultBanners = []BannerItem{
	{
		BannerID:  1,
		Title:     "Beauty that",
		Highlight: "heals.",
		Subtitle:  "Discover your perfect skincare routine with our curated collection of clean, effective products.",
		Image:     "/images/hero-1.jpg",
		CTA:       "Shop Now",
		Link:      "/products",
	},
	{
		BannerID:  2,
		Title:     "Effortless Glow",
		Highlight: "unleashed.",
		Subtitle:  "Reveal radiant skin through our nature-powered, clinically-tested solutions.",
		Image:     "/images/hero-2.jpg",
		CTA:       "Explore Products",
		Link:      "/products",
	},
	{
		BannerID:  3,
		Title:     "Radiate your",
		Highlight: "light.",
		Subtitle:  "We don't believe in a 10 step routine!",
		Image:     "/images/hero-3.jpg",
		CTA:       "Start Journey",
		Link:      "/quiz",
	},
}

var defaultTestimonials = []Testimonial{
	{
		Name:     "Sarah M.",
		Text:     "My skin has never looked better! The gentle cleanser and vitamin C serum transformed my routine completely.",
		Rating:   5,
		Image:    "/placeholder.svg?height=60&width=60",
		Location: "New York, NY",
	},
	{
		Name:     "Emily R.",
		Text:     "Finally found products that work for my sensitive skin. No more irritation, just healthy glow every day!",
		Rating:   5,
		Image:    "/placeholder.svg?height=60&width=60",
		Location: "Los Angeles, CA",
	},
	{
		Name:     "Jessica L.",
		Text:     "The personalized routine quiz helped me discover exactly what my skin needed. Amazing results in just weeks!",
		Rating:   5,
		Image:    "/placeholder.svg?height=60&width=60",
		Location: "Chicago, IL",
	},
	{
		Name:     "Maria G.",
		Text:     "Love how natural and effective these products are. My friends keep asking what I'm using!",
		Rating:   5,
		Image:    "/placeholder.svg?height=60&width=60",
		Location: "Miami, FL",
	},
}
