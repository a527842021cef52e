package board

import (
	"strings"

	"tracker-backend/internal/models"
)

// Suggestions builds the inline-edit autocomplete list: configured column
// titles first, in board order, then any distinct status not already covered.
// Deduplication is case-insensitive and the column's casing wins, so a column
// "Interview" absorbs a stored status "interview".
func Suggestions(cols []models.ColumnConfig, distinct []string) []string {
	out := make([]string, 0, len(cols)+len(distinct))
	seen := make(map[string]struct{}, len(cols)+len(distinct))

	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}

	for _, col := range cols {
		add(col.Title)
	}
	for _, s := range distinct {
		add(s)
	}
	return out
}
