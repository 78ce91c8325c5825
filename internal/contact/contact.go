// Package contact accepts messages from the storefront contact form.
package contact

import (
	"errors"
	"strings"
	"time"

	"github.com/wichananm65/skincare-storefront/internal/validation"
)

var ErrInvalid = errors.New("invalid contact message")

// Categories offered by the contact form. Empty means uncategorised.
var Categories = []string{"product-question", "order-support", "skincare-advice", "partnership", "feedback", "other"}

type Message struct {
	ID         string    `json:"id"`
	Name       string    `json:"name" validate:"required,max=200"`
	Email      string    `json:"email" validate:"required,email"`
	Subject    string    `json:"subject" validate:"required,max=200"`
	Category   string    `json:"category,omitempty" validate:"omitempty,oneof=product-question order-support skincare-advice partnership feedback other"`
	Body       string    `json:"message" validate:"required,max=5000"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// normalize trims the free-text fields so blank input counts as missing.
func (m Message) normalize() Message {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Subject = strings.TrimSpace(m.Subject)
	m.Body = strings.TrimSpace(m.Body)
	return m
}

// Validate reports problems per field; an empty map means the message is ok.
func (m Message) Validate() map[string]string {
	return validation.Fields(m.normalize())
}

// ValidationError carries the per-field problems of a rejected message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return ErrInvalid.Error() }

func (e *ValidationError) Unwrap() error { return ErrInvalid }
