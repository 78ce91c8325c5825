// Package blog serves the storefront's static articles.
package blog

import (
	_ "embed"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrNotFound = errors.New("post not found")

// Post is an immutable article. Content is an HTML blob passed through
// untouched.
type Post struct {
	ID       string    `json:"id"`
	Slug     string    `json:"slug"`
	Title    string    `json:"title"`
	Excerpt  string    `json:"excerpt"`
	Content  string    `json:"content"`
	Author   string    `json:"author"`
	Date     time.Time `json:"date"`
	ReadTime string    `json:"readTime"`
	Category string    `json:"category"`
	Image    string    `json:"image"`
	Featured bool      `json:"featured"`
}

//go:embed data/posts.yaml
var seedYAML []byte

type seedRecord struct {
	ID       string `yaml:"id"`
	Slug     string `yaml:"slug"`
	Title    string `yaml:"title"`
	Excerpt  string `yaml:"excerpt"`
	Content  string `yaml:"content"`
	Author   string `yaml:"author"`
	Date     string `yaml:"date"`
	ReadTime string `yaml:"readTime"`
	Category string `yaml:"category"`
	Image    string `yaml:"image"`
	Featured bool   `yaml:"featured"`
}

// Seed returns the articles bundled with the binary.
func Seed() ([]Post, error) {
	return ParseSeed(seedYAML)
}

func ParseSeed(data []byte) ([]Post, error) {
	var records []seedRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode blog seed: %w", err)
	}
	out := make([]Post, 0, len(records))
	slugs := make(map[string]bool, len(records))
	for _, r := range records {
		if r.Slug == "" || r.Title == "" {
			return nil, fmt.Errorf("post %q: slug and title are required", r.ID)
		}
		if slugs[r.Slug] {
			return nil, fmt.Errorf("duplicate post slug %q", r.Slug)
		}
		slugs[r.Slug] = true
		date, err := time.Parse(time.DateOnly, r.Date)
		if err != nil {
			return nil, fmt.Errorf("post %q date: %w", r.Slug, err)
		}
		out = append(out, Post{
			ID: r.ID, Slug: r.Slug, Title: r.Title, Excerpt: r.Excerpt, Content: r.Content,
			Author: r.Author, Date: date, ReadTime: r.ReadTime, Category: r.Category,
			Image: r.Image, Featured: r.Featured,
		})
	}
	return out, nil
}
