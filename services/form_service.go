package services

import (
	"fmt"
	"strings"

	"github.com/vipulsahu063/PSMSystem/models"
)

// FormControl describes one input of the officer entry form, ready for a
// client to render without knowing anything about the station's schema.
type FormControl struct {
	FieldName   string   `json:"field_name"`
	FieldLabel  string   `json:"field_label"`
	Control     string   `json:"control"`
	Options     []string `json:"options,omitempty"`
	IsRequired  bool     `json:"is_required"`
	Placeholder string   `json:"placeholder,omitempty"`
}

// OfficerForm is the renderable form for a station. Configured is false when
// the administrator has not defined any fields yet; clients show the
// "no fields configured, contact administrator" state instead of an empty form.
type OfficerForm struct {
	Configured bool          `json:"configured"`
	Controls   []FormControl `json:"controls"`
}

// BuildForm maps field definitions to form controls, in field order.
func BuildForm(fields []models.StationCustomField) OfficerForm {
	form := OfficerForm{Configured: len(fields) > 0, Controls: []FormControl{}}
	for _, f := range fields {
		ctl := FormControl{
			FieldName:  f.FieldName,
			FieldLabel: f.FieldLabel,
			Control:    f.FieldType.Control(),
			IsRequired: f.IsRequired,
		}
		switch f.FieldType {
		case models.FieldTypeSelect:
			ctl.Options = f.Options()
		case models.FieldTypeDate, models.FieldTypeFile:
			// no placeholder for pickers and uploads
		default:
			ctl.Placeholder = "Enter " + strings.ToLower(f.FieldLabel)
		}
		form.Controls = append(form.Controls, ctl)
	}
	return form
}

// MissingRequired returns the labels of every required field whose submitted
// value is empty, in field order.
func MissingRequired(fields []models.StationCustomField, values map[string]string) []string {
	var missing []string
	for _, f := range fields {
		if f.IsRequired && values[f.FieldName] == "" {
			missing = append(missing, f.FieldLabel)
		}
	}
	return missing
}

// ValidateOptions rejects select values outside the field's configured
// option set. Empty values pass; required-ness is MissingRequired's job.
func ValidateOptions(fields []models.StationCustomField, values map[string]string) error {
	for _, f := range fields {
		if f.FieldType != models.FieldTypeSelect {
			continue
		}
		v := values[f.FieldName]
		if v == "" {
			continue
		}
		ok := false
		for _, opt := range f.Options() {
			if v == opt {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("%q is not an option for %s", v, f.FieldLabel)
		}
	}
	return nil
}

// BuildValueMap assembles the value-map that gets stored: one key per defined
// field, optional unfilled fields included as empty strings. Submitted keys
// with no matching definition are dropped.
func BuildValueMap(fields []models.StationCustomField, values map[string]string) models.JSONMap {
	out := models.JSONMap{}
	for _, f := range fields {
		out[f.FieldName] = values[f.FieldName]
	}
	return out
}

// HasImageURL reports whether a stored file-field value points at a hosted
// image (the listing shows "view image" vs "missing" on this).
func HasImageURL(value string) bool {
	return value != "" && (strings.Contains(value, "http") || strings.Contains(value, "cloudinary"))
}
