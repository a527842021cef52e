package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ColumnConfig is one kanban column as stored in the user's profile.
// IDs are generated client-side when a column is created and stay stable
// across renames and reorders.
type ColumnConfig struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
}

// TrackerConfig is the board configuration embedded in the user record.
// Extra keys the frontend stores alongside the columns survive round trips.
type TrackerConfig struct {
	Columns []ColumnConfig `json:"columns"`

	Extra map[string]any `json:"-"`
}

func (c TrackerConfig) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Extra)+1)
	for k, v := range c.Extra {
		out[k] = v
	}
	out["columns"] = c.Columns
	return json.Marshal(out)
}

func (c *TrackerConfig) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Columns = nil
	c.Extra = nil
	if cols, ok := raw["columns"]; ok {
		if err := json.Unmarshal(cols, &c.Columns); err != nil {
			return err
		}
		delete(raw, "columns")
	}
	if len(raw) > 0 {
		c.Extra = make(map[string]any, len(raw))
		for k, v := range raw {
			var val any
			if err := json.Unmarshal(v, &val); err != nil {
				return err
			}
			c.Extra[k] = val
		}
	}
	return nil
}

// Value implements driver.Valuer so gorm can persist the config as jsonb.
func (c TrackerConfig) Value() (driver.Value, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (c *TrackerConfig) Scan(value any) error {
	if value == nil {
		*c = TrackerConfig{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for TrackerConfig: %T", value)
	}
	if len(data) == 0 {
		*c = TrackerConfig{}
		return nil
	}
	return c.UnmarshalJSON(data)
}
