package banner

// BannerItem is a home page hero slide.
type BannerItem struct {
	BannerID  int    `json:"bannerID"`
	Title     string `json:"title"`
	Highlight string `json:"highlight"`
	Subtitle  string `json:"subtitle"`
	Image     string `json:"image"`
	CTA       string `json:"cta"`
	Link      string `json:"link"`
}

// Testimonial is a customer quote shown under the hero.
type Testimonial struct {
	Name     string `json:"name"`
	Text     string `json:"text"`
	Rating   int    `json:"rating"`
	Image    string `json:"image"`
	Location string `json:"location"`
}
