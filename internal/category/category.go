package category

// CategoryItem is the public DTO returned by the category API.
type CategoryItem struct {
	CategoryName string `json:"categoryName"`
	CategoryImg  string `json:"categoryImg,omitempty"`
	ProductCount int    `json:"productCount"`
}
