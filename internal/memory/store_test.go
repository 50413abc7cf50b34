package memory

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"healthbot/internal/domain"

	"github.com/google/uuid"
)

func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"), logger)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func record(company string, score int) domain.AssessmentRecord {
	return domain.AssessmentRecord{
		ID:         uuid.NewString(),
		Company:    company,
		Industry:   domain.IndustryConstruction,
		TenantURL:  "https://demo.atlan.com",
		Score:      score,
		ChunkCount: 3,
		Delivered:  3,
	}
}

func TestSaveAndRecent(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.SaveAssessment(ctx, record("DPR Construction", 62)); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveAssessment(ctx, record("MegaBank", 48)); err != nil {
		t.Fatal(err)
	}

	recs, err := store.RecentAssessments(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Industry != domain.IndustryConstruction {
		t.Errorf("industry round-trip: got %q", recs[0].Industry)
	}
}

func TestRecent_Limit(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := store.SaveAssessment(ctx, record("Acme", 50+i)); err != nil {
			t.Fatal(err)
		}
	}

	recs, err := store.RecentAssessments(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Errorf("expected 3 records, got %d", len(recs))
	}
}

func TestPurgeOlderThan(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	old := record("Ancient Corp", 30)
	old.CreatedAt = time.Now().Add(-48 * time.Hour)
	if err := store.SaveAssessment(ctx, old); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveAssessment(ctx, record("Fresh Corp", 70)); err != nil {
		t.Fatal(err)
	}

	n, err := store.PurgeOlderThan(ctx, 24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected 1 purged row, got %d", n)
	}

	recs, err := store.RecentAssessments(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].Company != "Fresh Corp" {
		t.Errorf("unexpected survivors: %+v", recs)
	}
}
