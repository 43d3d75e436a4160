package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// JSONMap is the schemaless value-map stored per officer record, keyed by
// field machine name. Values are scalars kept as strings (numbers and dates
// arrive as their text form; file fields hold the hosted URL).
type JSONMap map[string]string

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *JSONMap) Scan(value any) error {
	if value == nil {
		*m = JSONMap{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported value-map column type %T", value)
	}
	if len(b) == 0 {
		*m = JSONMap{}
		return nil
	}
	return json.Unmarshal(b, m)
}

// Officer is one roster record. custom_fields carries whatever value-map was
// submitted at creation time; it is not required to match the station's
// current field definitions.
type Officer struct {
	ID           uint      `gorm:"primaryKey"             json:"id"`
	StationID    string    `gorm:"size:20;index;not null" json:"station_id"`
	CustomFields JSONMap   `gorm:"type:jsonb"             json:"custom_fields"`
	CreatedAt    time.Time `json:"created_at"`
}
