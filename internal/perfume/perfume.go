package perfume

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a perfume is not found.
	ErrNotFound = errors.New("perfume not found")
	// ErrInvalidInput is returned when a form payload fails validation
	// before any store call is made.
	ErrInvalidInput = errors.New("invalid perfume input")
)

// Categories is the fixed set of catalog categories.
var Categories = []string{"Floral", "Oriental", "Fresh", "Woody"}

// CategoryAll is the wildcard used by the shop filter.
const CategoryAll = "All"

// Perfume represents a catalog product.
type Perfume struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url"`
	Description string    `json:"description"`
	Notes       []string  `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FormInput is the payload accepted by the write path. Notes arrive as the
// raw comma-separated text typed by the operator; ImageURL may carry a
// previously stored URL when no new file is selected.
type FormInput struct {
	Name        string  `validate:"required"`
	Category    string  `validate:"required,oneof=Floral Oriental Fresh Woody"`
	Price       float64 `validate:"required,gt=0"`
	ImageURL    string
	Description string
	Notes       string
}

// ValidCategory reports whether c is one of the fixed catalog categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// NormalizeNotes splits the raw notes text on commas, trims whitespace and
// drops empty entries. "Rose, Jasmine,  , Bergamot" becomes
// ["Rose" "Jasmine" "Bergamot"].
func NormalizeNotes(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
