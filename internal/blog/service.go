package blog

import (
	"slices"
	"strings"
)

// AllCategories is the category value that disables category filtering.
const AllCategories = "All"

type Service struct {
	posts []Post
}

func NewService(posts []Post) *Service {
	return &Service{posts: slices.Clone(posts)}
}

// Listing splits matching posts the way the blog index shows them.
type Listing struct {
	Featured []Post `json:"featured"`
	Posts    []Post `json:"posts"`
	Total    int    `json:"total"`
}

// List matches search case-insensitively against title and excerpt and
// keeps posts in category. Empty search and "All"/empty category match
// everything.
func (s *Service) List(search, category string) Listing {
	term := strings.ToLower(strings.TrimSpace(search))
	out := Listing{Featured: []Post{}, Posts: []Post{}}
	for _, p := range s.posts {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Title), term) &&
			!strings.Contains(strings.ToLower(p.Excerpt), term) {
			continue
		}
		if category != "" && category != AllCategories && p.Category != category {
			continue
		}
		if p.Featured {
			out.Featured = append(out.Featured, p)
		} else {
			out.Posts = append(out.Posts, p)
		}
		out.Total++
	}
	return out
}

func (s *Service) BySlug(slug string) (Post, error) {
	for _, p := range s.posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

// Related returns up to limit other posts from the same category.
func (s *Service) Related(post Post, limit int) []Post {
	out := make([]Post, 0, limit)
	for _, p := range s.posts {
		if len(out) >= limit {
			break
		}
		if p.ID != post.ID && p.Category == post.Category {
			out = append(out, p)
		}
	}
	return out
}

// Categories is "All" followed by each category in first-seen order.
func (s *Service) Categories() []string {
	out := []string{AllCategories}
	for _, p := range s.posts {
		if !slices.Contains(out, p.Category) {
			out = append(out, p.Category)
		}
	}
	return out
}
