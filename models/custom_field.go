package models

import (
	"strings"
	"time"
)

type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
	FieldTypeSelect   FieldType = "select"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeFile     FieldType = "file"
)

func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeDate,
		FieldTypeSelect, FieldTypeTextarea, FieldTypeFile:
		return true
	}
	return false
}

// Control names the input widget the frontend renders for this type.
func (t FieldType) Control() string {
	switch t {
	case FieldTypeNumber:
		return "number-input"
	case FieldTypeDate:
		return "date-picker"
	case FieldTypeSelect:
		return "select"
	case FieldTypeTextarea:
		return "textarea"
	case FieldTypeFile:
		return "file-upload"
	default:
		return "text-input"
	}
}

// StationCustomField is one administrator-authored input definition of a
// station's officer form. The full list for a station is replaced on every
// save; field_order is always the position in the saved list.
type StationCustomField struct {
	ID           uint      `gorm:"primaryKey"              json:"id"`
	StationID    string    `gorm:"size:20;index;not null"  json:"station_id"`
	FieldName    string    `gorm:"size:100;not null"       json:"field_name"` // machine name, derived from label
	FieldLabel   string    `gorm:"size:100;not null"       json:"field_label"`
	FieldType    FieldType `gorm:"size:20;not null"        json:"field_type"`
	FieldOptions string    `gorm:"size:255"                json:"field_options"` // comma-separated, select only
	IsRequired   bool      `gorm:"not null;default:false"  json:"is_required"`
	FieldOrder   int       `gorm:"not null;default:0"      json:"field_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// Options parses the comma-separated option string, trimming whitespace and
// dropping empty entries.
func (f StationCustomField) Options() []string {
	if strings.TrimSpace(f.FieldOptions) == "" {
		return nil
	}
	parts := strings.Split(f.FieldOptions, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
