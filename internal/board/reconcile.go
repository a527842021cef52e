package board

import "tracker-backend/internal/models"

// OtherBucketID identifies the synthetic catch-all bucket. It never appears
// in a stored configuration.
const OtherBucketID = "other"

// Bucket is one rendered kanban column: a configured column plus every
// application whose status matches its title, or the synthetic Other bucket.
type Bucket struct {
	ID           string               `json:"id"`
	Title        string               `json:"title"`
	Color        string               `json:"color"`
	Synthetic    bool                 `json:"synthetic,omitempty"`
	Applications []models.Application `json:"applications"`
}

// Buckets reconciles the configured columns with the applications actually
// stored: one bucket per column in configured order, matching statuses
// case-insensitively after trimming, then a trailing Other bucket for
// everything that matched no column, present only when non-empty.
// An empty column configuration falls back to the default set. Inputs are
// never mutated.
func Buckets(cols []models.ColumnConfig, apps []models.Application) []Bucket {
	if len(cols) == 0 {
		cols = DefaultColumns()
	}

	buckets := make([]Bucket, len(cols))
	for i, col := range cols {
		color := col.Color
		if !validColor(color) {
			color = defaultColor
		}
		buckets[i] = Bucket{
			ID:           col.ID,
			Title:        col.Title,
			Color:        color,
			Applications: []models.Application{},
		}
	}

	other := Bucket{
		ID:           OtherBucketID,
		Title:        "Other",
		Color:        defaultColor,
		Synthetic:    true,
		Applications: []models.Application{},
	}

	for _, app := range apps {
		placed := false
		for i, col := range cols {
			if Same(app.Status, col.Title) {
				buckets[i].Applications = append(buckets[i].Applications, app)
				placed = true
				break
			}
		}
		if !placed {
			other.Applications = append(other.Applications, app)
		}
	}

	if len(other.Applications) > 0 {
		buckets = append(buckets, other)
	}
	return buckets
}
