package banner

// Service provides business logic for banners.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// List returns up to `limit` banner items.
func (s *Service) List(limit int) []BannerItem {
	if limit <= 0 {
		return []BannerItem{}
	}
	return s.repo.List(limit)
}

func (s *Service) Testimonials() []Testimonial {
	return s.repo.Testimonials()
}
