package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/vipulsahu063/PSMSystem/models"
)

var ErrOfficerNotFound = errors.New("officer not found")

// BulkDeleteResult reports the fate of every id in a bulk delete. Successful
// deletions stand even when others fail.
type BulkDeleteResult struct {
	Deleted []uint              `json:"deleted"`
	Failed  []BulkDeleteFailure `json:"failed"`
}

type BulkDeleteFailure struct {
	ID    uint   `json:"id"`
	Error string `json:"error"`
}

// DashboardStats summarizes a station's roster for its dashboard page.
type DashboardStats struct {
	TotalOfficers     int64 `json:"total_officers"`
	IncompleteRecords int64 `json:"incomplete_records"`
	RecentAdditions   int64 `json:"recent_additions"`
	CompletionRate    int   `json:"completion_rate"`
}

// OfficerService is the record store for officer value-maps.
type OfficerService interface {
	// Create stores one record after checking the station exists. The
	// value-map is stored as submitted; no schema check happens here.
	Create(ctx context.Context, stationID string, values models.JSONMap) (*models.Officer, error)

	// List returns the station's records, newest first.
	List(ctx context.Context, stationID string) ([]models.Officer, error)

	// Delete removes one record. A non-empty stationID restricts the delete
	// to that station's records; ErrOfficerNotFound covers both an absent id
	// and an id belonging to another station.
	Delete(ctx context.Context, id uint, stationID string) error

	// BulkDelete issues one delete per id concurrently and waits for all of
	// them to settle. stationID scopes each delete the same way Delete does.
	BulkDelete(ctx context.Context, ids []uint, stationID string) BulkDeleteResult

	// Stats computes the dashboard numbers against the station's current
	// field definitions.
	Stats(ctx context.Context, stationID string) (DashboardStats, error)
}

type officerService struct {
	db *gorm.DB
}

func NewOfficerService(db *gorm.DB) OfficerService {
	return &officerService{db: db}
}

func (s *officerService) Create(ctx context.Context, stationID string, values models.JSONMap) (*models.Officer, error) {
	var station models.Station
	if err := s.db.WithContext(ctx).Where("station_id = ?", stationID).First(&station).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStationNotFound
		}
		return nil, err
	}
	rec := models.Officer{
		StationID:    stationID,
		CustomFields: values,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *officerService) List(ctx context.Context, stationID string) ([]models.Officer, error) {
	var officers []models.Officer
	err := s.db.WithContext(ctx).
		Where("station_id = ?", stationID).
		Order("created_at DESC, id DESC").
		Find(&officers).Error
	if err != nil {
		return nil, err
	}
	return officers, nil
}

func (s *officerService) Delete(ctx context.Context, id uint, stationID string) error {
	db := s.db.WithContext(ctx)
	if stationID != "" {
		db = db.Where("station_id = ?", stationID)
	}
	res := db.Delete(&models.Officer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOfficerNotFound
	}
	return nil
}

func (s *officerService) BulkDelete(ctx context.Context, ids []uint, stationID string) BulkDeleteResult {
	result := BulkDeleteResult{Deleted: []uint{}, Failed: []BulkDeleteFailure{}}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			err := s.Delete(ctx, id, stationID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, BulkDeleteFailure{ID: id, Error: err.Error()})
				return
			}
			result.Deleted = append(result.Deleted, id)
		}(id)
	}
	wg.Wait()
	return result
}

func (s *officerService) Stats(ctx context.Context, stationID string) (DashboardStats, error) {
	var stats DashboardStats

	db := s.db.WithContext(ctx)
	if err := db.Model(&models.Officer{}).
		Where("station_id = ?", stationID).
		Count(&stats.TotalOfficers).Error; err != nil {
		return stats, err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if err := db.Model(&models.Officer{}).
		Where("station_id = ? AND created_at >= ?", stationID, monthStart).
		Count(&stats.RecentAdditions).Error; err != nil {
		return stats, err
	}

	var fields []models.StationCustomField
	if err := db.Where("station_id = ?", stationID).Find(&fields).Error; err != nil {
		return stats, err
	}
	var officers []models.Officer
	if err := db.Where("station_id = ?", stationID).Find(&officers).Error; err != nil {
		return stats, err
	}

	if len(fields) > 0 {
		for _, o := range officers {
			for _, f := range fields {
				if o.CustomFields[f.FieldName] == "" {
					stats.IncompleteRecords++
					break
				}
			}
		}
	}

	if stats.TotalOfficers > 0 {
		complete := stats.TotalOfficers - stats.IncompleteRecords
		stats.CompletionRate = int(float64(complete)/float64(stats.TotalOfficers)*100 + 0.5)
	}
	return stats, nil
}

// SearchOfficers keeps the records where any value-map value contains the
// query as a case-insensitive substring. The match runs over every stored
// value, not only displayed columns. An empty query keeps everything.
func SearchOfficers(officers []models.Officer, query string) []models.Officer {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return officers
	}
	out := make([]models.Officer, 0, len(officers))
	for _, o := range officers {
		for _, v := range o.CustomFields {
			if strings.Contains(strings.ToLower(v), q) {
				out = append(out, o)
				break
			}
		}
	}
	return out
}

// NormalizePageSize clamps the page size to the offered 10/25/50 choices.
func NormalizePageSize(size int) int {
	switch size {
	case 10, 25, 50:
		return size
	default:
		return 10
	}
}

// PaginateOfficers slices out the 1-indexed page of an already-filtered list
// and returns it with the number of pages.
func PaginateOfficers(officers []models.Officer, page, pageSize int) ([]models.Officer, int) {
	pageSize = NormalizePageSize(pageSize)
	totalPages := (len(officers) + pageSize - 1) / pageSize
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(officers) {
		return []models.Officer{}, totalPages
	}
	end := start + pageSize
	if end > len(officers) {
		end = len(officers)
	}
	return officers[start:end], totalPages
}
