package board

import (
	"errors"
	"strings"

	"tracker-backend/internal/models"
)

// Colors a column may use. Anything else is coerced to gray at render time.
var Colors = []string{
	"gray", "blue", "red", "green", "emerald", "amber",
	"purple", "pink", "indigo", "cyan", "orange", "teal",
}

const defaultColor = "gray"

var (
	ErrNoColumns      = errors.New("must have at least one column")
	ErrEmptyTitle     = errors.New("all columns must have a title")
	ErrDuplicateTitle = errors.New("column titles must be unique")
	ErrUnknownColor   = errors.New("unknown column color")
)

// DefaultColumns are the seed columns for users who never customized their
// board. They are plain data, not a closed status set.
func DefaultColumns() []models.ColumnConfig {
	return []models.ColumnConfig{
		{ID: "col_wishlist", Title: "Wishlist", Color: "gray"},
		{ID: "col_applied", Title: "Applied", Color: "blue"},
		{ID: "col_interviewing", Title: "Interviewing", Color: "amber"},
		{ID: "col_offer", Title: "Offer", Color: "emerald"},
		{ID: "col_rejected", Title: "Rejected", Color: "red"},
	}
}

// ValidateColumns checks a configuration before it is persisted: at least one
// column, no blank titles, titles unique case-insensitively after trimming,
// colors from the fixed palette.
func ValidateColumns(cols []models.ColumnConfig) error {
	if len(cols) == 0 {
		return ErrNoColumns
	}
	seen := make(map[string]struct{}, len(cols))
	for _, col := range cols {
		title := strings.TrimSpace(col.Title)
		if title == "" {
			return ErrEmptyTitle
		}
		key := strings.ToLower(title)
		if _, dup := seen[key]; dup {
			return ErrDuplicateTitle
		}
		seen[key] = struct{}{}
		if !validColor(col.Color) {
			return ErrUnknownColor
		}
	}
	return nil
}

func validColor(c string) bool {
	for _, known := range Colors {
		if c == known {
			return true
		}
	}
	return false
}

// ColorFor resolves the display color for a status: the color of the column
// it buckets into, gray when it matches no column.
func ColorFor(status string, cols []models.ColumnConfig) string {
	for _, col := range cols {
		if Same(status, col.Title) {
			if validColor(col.Color) {
				return col.Color
			}
			return defaultColor
		}
	}
	return defaultColor
}
