package services

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vipulsahu063/PSMSystem/models"
)

// ExportService packages a page of officer records into a zip holding one
// spreadsheet plus the image files referenced by file-type fields.
type ExportService interface {
	// BuildArchive renders the given (already filtered and paginated)
	// officers against the capped field set. startSerial seeds the Sr No
	// column so page 2 continues where page 1 left off. Images that cannot
	// be fetched are logged and skipped; they never fail the export.
	BuildArchive(ctx context.Context, stationName string, fields []models.StationCustomField, officers []models.Officer, startSerial int) ([]byte, error)
}

type exportService struct {
	client *http.Client
}

func NewExportService(client *http.Client) ExportService {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &exportService{client: client}
}

func imageFileName(fieldName string, officerID uint) string {
	return fmt.Sprintf("%s_%d.jpg", fieldName, officerID)
}

// sheetName must fit excel's 31-char limit and avoid its forbidden characters.
func sheetName(stationName string) string {
	name := strings.TrimSpace(stationName)
	if name == "" {
		name = "Officers"
	}
	for _, ch := range []string{"\\", "/", "*", "?", ":", "[", "]"} {
		name = strings.ReplaceAll(name, ch, " ")
	}
	// truncate on runes so multibyte station names stay valid UTF-8
	if runes := []rune(name); len(runes) > 31 {
		name = string(runes[:31])
	}
	return name
}

func (s *exportService) fetchImages(ctx context.Context, fields []models.StationCustomField, officers []models.Officer) map[string][]byte {
	images := map[string][]byte{}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, o := range officers {
		for _, f := range fields {
			if f.FieldType != models.FieldTypeFile {
				continue
			}
			url := o.CustomFields[f.FieldName]
			if !HasImageURL(url) {
				continue
			}
			name := imageFileName(f.FieldName, o.ID)
			wg.Add(1)
			go func(url, name string) {
				defer wg.Done()
				data, err := s.fetchOne(ctx, url)
				if err != nil {
					log.Printf("export: skip image %s: %v", name, err)
					return
				}
				mu.Lock()
				images[name] = data
				mu.Unlock()
			}(url, name)
		}
	}
	wg.Wait()
	return images
}

func (s *exportService) fetchOne(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (s *exportService) BuildArchive(ctx context.Context, stationName string, fields []models.StationCustomField, officers []models.Officer, startSerial int) ([]byte, error) {
	images := s.fetchImages(ctx, fields, officers)

	wb := excelize.NewFile()
	defer func() { _ = wb.Close() }()
	sheet := sheetName(stationName)
	if err := wb.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"Sr No"}
	for _, f := range fields {
		headers = append(headers, f.FieldLabel)
	}
	headers = append(headers, "Added On")
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := wb.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, o := range officers {
		vals := []any{startSerial + row}
		for _, f := range fields {
			v := o.CustomFields[f.FieldName]
			if f.FieldType == models.FieldTypeFile && v != "" {
				vals = append(vals, "images/"+imageFileName(f.FieldName, o.ID))
				continue
			}
			vals = append(vals, v)
		}
		vals = append(vals, o.CreatedAt.Format("2006-01-02 15:04"))

		for col, v := range vals {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := wb.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	xlsxBuf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	zw := zip.NewWriter(&out)

	xlsxName := strings.TrimSpace(stationName)
	if xlsxName == "" {
		xlsxName = "Officers"
	}
	w, err := zw.Create(xlsxName + "_Data.xlsx")
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(xlsxBuf.Bytes()); err != nil {
		return nil, err
	}

	for name, data := range images {
		iw, err := zw.Create("images/" + name)
		if err != nil {
			return nil, err
		}
		if _, err := iw.Write(data); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
