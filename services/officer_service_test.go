package services

import (
	"context"
	"testing"

	"github.com/vipulsahu063/PSMSystem/models"
)

func TestCreateOfficer_StationMustExist(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOfficerService(db)

	_, err := svc.Create(context.Background(), "GHOST", models.JSONMap{"name": "Rao"})
	if err != ErrStationNotFound {
		t.Fatalf("expected ErrStationNotFound, got %v", err)
	}
}

func TestCreateAndListOfficers(t *testing.T) {
	db := setupTestDB(t)
	seedStation(t, db, "TESTPS", "Test PS")
	svc := NewOfficerService(db)
	ctx := context.Background()

	first, err := svc.Create(ctx, "TESTPS", models.JSONMap{"name": "Rao", "badge": "A-102"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if first.ID == 0 {
		t.Error("expected a generated id")
	}

	// stored value-maps survive the round trip untouched
	second, err := svc.Create(ctx, "TESTPS", models.JSONMap{"name": "Kumar", "badge": ""})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	officers, err := svc.List(ctx, "TESTPS")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(officers) != 2 {
		t.Fatalf("expected 2 officers, got %d", len(officers))
	}
	if officers[0].ID != second.ID {
		t.Errorf("expected newest first, got id %d first", officers[0].ID)
	}
	if officers[1].CustomFields["badge"] != "A-102" {
		t.Errorf("value-map lost on round trip: %v", officers[1].CustomFields)
	}
	if v, ok := officers[0].CustomFields["badge"]; !ok || v != "" {
		t.Errorf("empty optional value dropped from value-map: %v", officers[0].CustomFields)
	}
}

func TestSearchOfficers(t *testing.T) {
	officers := []models.Officer{
		{ID: 1, CustomFields: models.JSONMap{"badge": "A-102", "name": "Rao"}},
		{ID: 2, CustomFields: models.JSONMap{"badge": "B-205", "name": "Kumar"}},
	}

	for _, q := range []string{"102", "rao", "RAO"} {
		got := SearchOfficers(officers, q)
		if len(got) != 1 || got[0].ID != 1 {
			t.Errorf("query %q: expected only officer 1, got %v", q, got)
		}
	}
	if got := SearchOfficers(officers, "103"); len(got) != 0 {
		t.Errorf("query 103: expected no matches, got %v", got)
	}
	if got := SearchOfficers(officers, ""); len(got) != 2 {
		t.Errorf("empty query must keep everything, got %d", len(got))
	}
	// the search runs over every value, not only displayed columns
	if got := SearchOfficers(officers, "kum"); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("query kum: expected officer 2, got %v", got)
	}
}

func TestPaginateOfficers(t *testing.T) {
	var officers []models.Officer
	for i := 1; i <= 23; i++ {
		officers = append(officers, models.Officer{ID: uint(i)})
	}

	page, totalPages := PaginateOfficers(officers, 1, 10)
	if len(page) != 10 || totalPages != 3 {
		t.Errorf("page 1: got %d items, %d pages", len(page), totalPages)
	}
	page, _ = PaginateOfficers(officers, 3, 10)
	if len(page) != 3 || page[0].ID != 21 {
		t.Errorf("page 3: got %d items starting at %d", len(page), page[0].ID)
	}
	page, _ = PaginateOfficers(officers, 9, 10)
	if len(page) != 0 {
		t.Errorf("out-of-range page must be empty, got %d items", len(page))
	}
	page, totalPages = PaginateOfficers(officers, 1, 25)
	if len(page) != 23 || totalPages != 1 {
		t.Errorf("page size 25: got %d items, %d pages", len(page), totalPages)
	}
	// unsupported sizes fall back to 10
	page, _ = PaginateOfficers(officers, 1, 7)
	if len(page) != 10 {
		t.Errorf("page size 7 should clamp to 10, got %d", len(page))
	}
}

func TestBulkDelete_PartialFailure(t *testing.T) {
	db := setupTestDB(t)
	seedStation(t, db, "TESTPS", "Test PS")
	svc := NewOfficerService(db)
	ctx := context.Background()

	a, _ := svc.Create(ctx, "TESTPS", models.JSONMap{"name": "Rao"})
	b, _ := svc.Create(ctx, "TESTPS", models.JSONMap{"name": "Kumar"})

	result := svc.BulkDelete(ctx, []uint{a.ID, 99999, b.ID}, "")

	if len(result.Deleted) != 2 {
		t.Errorf("expected 2 deletions, got %v", result.Deleted)
	}
	if len(result.Failed) != 1 || result.Failed[0].ID != 99999 {
		t.Errorf("expected id 99999 to fail, got %v", result.Failed)
	}

	// a failed id never rolls back the successful deletions
	officers, _ := svc.List(ctx, "TESTPS")
	if len(officers) != 0 {
		t.Errorf("expected empty roster after bulk delete, got %d", len(officers))
	}
}

func TestDelete_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOfficerService(db)

	if err := svc.Delete(context.Background(), 42, ""); err != ErrOfficerNotFound {
		t.Fatalf("expected ErrOfficerNotFound, got %v", err)
	}
}

func TestDelete_ScopedToStation(t *testing.T) {
	db := setupTestDB(t)
	seedStation(t, db, "TESTPS", "Test PS")
	seedStation(t, db, "OTHERPS", "Other PS")
	svc := NewOfficerService(db)
	ctx := context.Background()

	theirs, err := svc.Create(ctx, "OTHERPS", models.JSONMap{"name": "Kumar"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// another station's record looks like it does not exist
	if err := svc.Delete(ctx, theirs.ID, "TESTPS"); err != ErrOfficerNotFound {
		t.Fatalf("expected ErrOfficerNotFound for foreign record, got %v", err)
	}
	officers, _ := svc.List(ctx, "OTHERPS")
	if len(officers) != 1 {
		t.Fatalf("foreign record was deleted")
	}

	result := svc.BulkDelete(ctx, []uint{theirs.ID}, "TESTPS")
	if len(result.Deleted) != 0 || len(result.Failed) != 1 {
		t.Errorf("scoped bulk delete should fail for foreign ids, got %+v", result)
	}

	// the owning station deletes it fine
	if err := svc.Delete(ctx, theirs.ID, "OTHERPS"); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
}

func TestStats(t *testing.T) {
	db := setupTestDB(t)
	seedStation(t, db, "TESTPS", "Test PS")
	fields := NewFieldService(db)
	svc := NewOfficerService(db)
	ctx := context.Background()

	err := fields.ReplaceFields(ctx, "TESTPS", []FieldInput{
		{FieldLabel: "Name", IsRequired: true},
		{FieldLabel: "Badge Photo", FieldType: models.FieldTypeFile},
	})
	if err != nil {
		t.Fatalf("field save failed: %v", err)
	}

	if _, err := svc.Create(ctx, "TESTPS", models.JSONMap{"name": "Rao", "badge_photo": "https://img/x.jpg"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(ctx, "TESTPS", models.JSONMap{"name": "Kumar", "badge_photo": ""}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stats, err := svc.Stats(ctx, "TESTPS")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalOfficers != 2 {
		t.Errorf("total = %d, want 2", stats.TotalOfficers)
	}
	if stats.IncompleteRecords != 1 {
		t.Errorf("incomplete = %d, want 1", stats.IncompleteRecords)
	}
	if stats.RecentAdditions != 2 {
		t.Errorf("recent = %d, want 2 (both created this month)", stats.RecentAdditions)
	}
	if stats.CompletionRate != 50 {
		t.Errorf("completion rate = %d, want 50", stats.CompletionRate)
	}
}
