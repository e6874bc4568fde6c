package ops

import (
	"context"
	"testing"

	"github.com/ruthina1/Dev-Genie/internal/errors"
)

func TestHistory_Pagination(t *testing.T) {
	env := newTestEnv(t)
	var ids []string
	for i := 0; i < 3; i++ {
		out, err := Generate(context.Background(), env, basicInput())
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		ids = append(ids, out.ID)
	}

	page, err := History(env, HistoryInput{Limit: 2})
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(page.Items) != 2 || !page.Pagination.HasMore || page.Pagination.Total != 3 {
		t.Errorf("page = %+v", page.Pagination)
	}
	// Same timestamp: ids come from a monotonic source, so they break the tie.
	if page.Items[0].ID != ids[2] {
		t.Errorf("first item = %s, want newest %s", page.Items[0].ID, ids[2])
	}

	page, err = History(env, HistoryInput{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(page.Items) != 1 || page.Pagination.HasMore {
		t.Errorf("last page = %+v", page.Pagination)
	}
}

func TestHistory_ModeFilter(t *testing.T) {
	env := newTestEnv(t)
	if _, err := Generate(context.Background(), env, basicInput()); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	out, err := History(env, HistoryInput{Mode: "Advanced"})
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(out.Items) != 0 {
		t.Errorf("advanced items = %d, want 0", len(out.Items))
	}
	if out.Items == nil {
		t.Error("Items is nil, want empty slice")
	}
}

func TestGetGeneration(t *testing.T) {
	env := newTestEnv(t)
	gen, err := Generate(context.Background(), env, basicInput())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	rec, err := GetGeneration(env, gen.ID)
	if err != nil {
		t.Fatalf("GetGeneration failed: %v", err)
	}
	if rec.Slug != "shop-api" {
		t.Errorf("Slug = %q, want shop-api", rec.Slug)
	}

	if _, err := GetGeneration(env, " "); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("blank id error = %v, want INVALID_REQUEST", err)
	}
	if _, err := GetGeneration(env, "01NOPE"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("missing id error = %v, want NOT_FOUND", err)
	}
}

func TestHistory_NoDatabase(t *testing.T) {
	env := newTestEnv(t)
	env.DB = nil
	if _, err := History(env, HistoryInput{}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("error = %v, want INVALID_REQUEST", err)
	}
}
