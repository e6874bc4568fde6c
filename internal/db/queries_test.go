package db

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/ruthina1/Dev-Genie/internal/errors"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestGeneration(id string, createdAt int64) *Generation {
	return &Generation{
		ID:           id,
		ProjectName:  "Shop API",
		Slug:         "shop-api",
		Mode:         "basic",
		Source:       "local",
		FileCount:    9,
		ArchiveBytes: 4096,
		ConfigJSON:   `{"projectName":"Shop API"}`,
		CreatedAt:    createdAt,
	}
}

func TestInsertAndGetByID(t *testing.T) {
	db := openTestDB(t)

	g := newTestGeneration("01GEN1", 1700000000)
	g.Mode = "advanced"
	g.Architecture = "mvc"
	g.TemplateID = "mern-auth"
	g.Fallback = true
	if err := Insert(db, g); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := GetByID(db, "01GEN1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if *got != *g {
		t.Errorf("GetByID = %+v, want %+v", *got, *g)
	}
}

func TestInsert_OptionalFieldsStoredAsNull(t *testing.T) {
	db := openTestDB(t)
	if err := Insert(db, newTestGeneration("01GEN1", 1)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	var arch, tpl sql.NullString
	if err := db.QueryRow("SELECT architecture, template_id FROM generations WHERE id = ?", "01GEN1").Scan(&arch, &tpl); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if arch.Valid || tpl.Valid {
		t.Errorf("architecture/template_id = %v/%v, want NULL", arch, tpl)
	}
}

func TestInsert_DuplicateID(t *testing.T) {
	db := openTestDB(t)
	if err := Insert(db, newTestGeneration("01DUP", 1)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	err := Insert(db, newTestGeneration("01DUP", 2))
	if !errors.Is(err, errors.ErrInternal) {
		t.Errorf("second Insert error = %v, want INTERNAL", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db := openTestDB(t)
	_, err := GetByID(db, "missing")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("GetByID error = %v, want NOT_FOUND", err)
	}
}

func TestList_Pagination(t *testing.T) {
	db := openTestDB(t)
	for i := 0; i < 5; i++ {
		g := newTestGeneration(fmt.Sprintf("01GEN%d", i), int64(100+i))
		if err := Insert(db, g); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	page, total, err := List(db, ListFilter{}, 2, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(page) != 2 || page[0].ID != "01GEN4" || page[1].ID != "01GEN3" {
		t.Errorf("first page = %v, want newest first", ids(page))
	}

	page, _, err = List(db, ListFilter{}, 2, 4)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page) != 1 || page[0].ID != "01GEN0" {
		t.Errorf("last page = %v, want [01GEN0]", ids(page))
	}
}

func TestList_StableOrderingOnTies(t *testing.T) {
	db := openTestDB(t)
	for _, id := range []string{"01A", "01C", "01B"} {
		if err := Insert(db, newTestGeneration(id, 500)); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}
	page, _, err := List(db, ListFilter{}, 10, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"01C", "01B", "01A"}
	for i, id := range want {
		if page[i].ID != id {
			t.Fatalf("order = %v, want %v", ids(page), want)
		}
	}
}

func TestList_Filters(t *testing.T) {
	db := openTestDB(t)
	a := newTestGeneration("01A", 1)
	b := newTestGeneration("01B", 2)
	b.Mode = "advanced"
	b.TemplateID = "mern-auth"
	for _, g := range []*Generation{a, b} {
		if err := Insert(db, g); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	tests := []struct {
		name   string
		filter ListFilter
		want   []string
	}{
		{"none", ListFilter{}, []string{"01B", "01A"}},
		{"mode", ListFilter{Mode: "basic"}, []string{"01A"}},
		{"template", ListFilter{TemplateID: "mern-auth"}, []string{"01B"}},
		{"no match", ListFilter{Mode: "basic", TemplateID: "mern-auth"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, total, err := List(db, tt.filter, 10, 0)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if got := ids(page); fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("ids = %v, want %v", got, tt.want)
			}
			if total != len(tt.want) {
				t.Errorf("total = %d, want %d", total, len(tt.want))
			}
		})
	}
}

func TestTemplateCounts(t *testing.T) {
	db := openTestDB(t)
	for i, tpl := range []string{"mern-auth", "mern-auth", "react-dashboard", ""} {
		g := newTestGeneration(fmt.Sprintf("01T%d", i), int64(i))
		g.TemplateID = tpl
		if err := Insert(db, g); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	counts, err := TemplateCounts(db)
	if err != nil {
		t.Fatalf("TemplateCounts failed: %v", err)
	}
	if len(counts) != 2 || counts["mern-auth"] != 2 || counts["react-dashboard"] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestPurgeOlderThan(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	old := newTestGeneration("01OLD", now.Add(-10*24*time.Hour).Unix())
	recent := newTestGeneration("01NEW", now.Add(-time.Hour).Unix())
	for _, g := range []*Generation{old, recent} {
		if err := Insert(db, g); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	days := 7
	n, err := PurgeOlderThan(db, &days, now)
	if err != nil {
		t.Fatalf("PurgeOlderThan failed: %v", err)
	}
	if n != 1 {
		t.Errorf("purged = %d, want 1", n)
	}
	if _, err := GetByID(db, "01NEW"); err != nil {
		t.Errorf("recent record was purged: %v", err)
	}

	n, err = PurgeOlderThan(db, nil, now)
	if err != nil {
		t.Fatalf("PurgeOlderThan(nil) failed: %v", err)
	}
	if n != 1 {
		t.Errorf("purged = %d, want 1", n)
	}

	negative := -1
	if _, err := PurgeOlderThan(db, &negative, now); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("negative days error = %v, want INVALID_REQUEST", err)
	}
}

func ids(gs []Generation) []string {
	var out []string
	for _, g := range gs {
		out = append(out, g.ID)
	}
	return out
}
