package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/vipulsahu063/PSMSystem/models"
)

var (
	ErrStationNotFound  = errors.New("station not found")
	ErrMissingLabel     = errors.New("every field needs a label")
	ErrInvalidFieldType = errors.New("unknown field type")
)

// FieldInput is one entry of a field-list save. FieldName is optional; when
// blank it is derived from the label. Order is taken from slice position,
// never from the input.
type FieldInput struct {
	FieldName    string           `json:"field_name"`
	FieldLabel   string           `json:"field_label"`
	FieldType    models.FieldType `json:"field_type"`
	FieldOptions string           `json:"field_options"`
	IsRequired   bool             `json:"is_required"`
}

// FieldService is the schema store for per-station custom field definitions.
type FieldService interface {
	// ListFields returns the station's definitions sorted by field_order.
	// A station with no configured fields yields an empty slice, not an error.
	ListFields(ctx context.Context, stationID string) ([]models.StationCustomField, error)

	// ReplaceFields swaps the station's whole field list in one transaction:
	// delete all existing rows, insert the new set with dense 0..n-1 order.
	ReplaceFields(ctx context.Context, stationID string, inputs []FieldInput) error

	// ClearFields removes every definition for the station.
	ClearFields(ctx context.Context, stationID string) error
}

type fieldService struct {
	db *gorm.DB
}

func NewFieldService(db *gorm.DB) FieldService {
	return &fieldService{db: db}
}

var reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// MachineName derives the identifier-safe value-map key from a display label:
// lowercase, every run of non-alphanumerics collapsed to one underscore,
// leading/trailing underscores stripped.
func MachineName(label string) string {
	name := reNonAlnum.ReplaceAllString(strings.ToLower(label), "_")
	return strings.Trim(name, "_")
}

func (s *fieldService) ListFields(ctx context.Context, stationID string) ([]models.StationCustomField, error) {
	var fields []models.StationCustomField
	err := s.db.WithContext(ctx).
		Where("station_id = ?", stationID).
		Order("field_order ASC").
		Find(&fields).Error
	if err != nil {
		return nil, err
	}
	return fields, nil
}

func (s *fieldService) ReplaceFields(ctx context.Context, stationID string, inputs []FieldInput) error {
	for _, in := range inputs {
		if strings.TrimSpace(in.FieldLabel) == "" {
			return ErrMissingLabel
		}
		if in.FieldType != "" && !in.FieldType.Valid() {
			return ErrInvalidFieldType
		}
	}

	var station models.Station
	if err := s.db.WithContext(ctx).Where("station_id = ?", stationID).First(&station).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStationNotFound
		}
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("station_id = ?", stationID).
			Delete(&models.StationCustomField{}).Error; err != nil {
			return err
		}
		for i, in := range inputs {
			name := strings.TrimSpace(in.FieldName)
			if name == "" {
				name = MachineName(in.FieldLabel)
			}
			ftype := in.FieldType
			if ftype == "" {
				ftype = models.FieldTypeText
			}
			row := models.StationCustomField{
				StationID:    stationID,
				FieldName:    name,
				FieldLabel:   in.FieldLabel,
				FieldType:    ftype,
				FieldOptions: in.FieldOptions,
				IsRequired:   in.IsRequired,
				FieldOrder:   i,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *fieldService) ClearFields(ctx context.Context, stationID string) error {
	return s.db.WithContext(ctx).
		Where("station_id = ?", stationID).
		Delete(&models.StationCustomField{}).Error
}
