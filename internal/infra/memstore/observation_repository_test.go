package memstore

import (
	"context"
	"io"
	"testing"

	"am_summary_bot/internal/domain/observation"
	idb "am_summary_bot/internal/infra/database"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func TestObservationRepository_ListSkipsMalformedDocuments(t *testing.T) {
	store := NewStore()
	repo := NewObservationRepository(store, testLogger())

	if err := repo.Put(&observation.Record{
		ID:   "good-1",
		Meta: observation.Meta{TeacherName: "Mai", SchoolName: "VSK Sunshine", Campus: "Cổ Nhuế", Date: "2025-11-05"},
	}); err != nil {
		t.Fatalf("put: %v", err)
	}
	// Not JSON at all.
	store.Set(ObservationKeyPrefix+"broken-1", "{not json")
	// Valid JSON, but missing the minimum shape (no teacher name).
	store.Set(ObservationKeyPrefix+"broken-2", `{"meta":{"schoolName":"VSK Sunshine"}}`)

	sums, err := repo.ListSummaries(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sums) != 1 {
		t.Fatalf("got %d summaries, want 1 (malformed documents skipped)", len(sums))
	}
	if sums[0].ID != "good-1" {
		t.Errorf("surviving summary id = %q, want good-1", sums[0].ID)
	}
}

func TestObservationRepository_IDBackfilledFromKey(t *testing.T) {
	store := NewStore()
	repo := NewObservationRepository(store, testLogger())

	// Older cached documents carry no id field; it is recovered from the key.
	store.Set(ObservationKeyPrefix+"legacy-7", `{"meta":{"teacherName":"Hoa"}}`)

	rec, err := repo.Get(context.Background(), "legacy-7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID != "legacy-7" {
		t.Errorf("id = %q, want legacy-7", rec.ID)
	}
}

func TestObservationRepository_GetNotFound(t *testing.T) {
	repo := NewObservationRepository(NewStore(), testLogger())
	_, err := repo.Get(context.Background(), "missing")
	if err != idb.ErrObservationNotFound {
		t.Errorf("err = %v, want ErrObservationNotFound", err)
	}
}

func TestObservationRepository_ScanOrderIsStable(t *testing.T) {
	store := NewStore()
	repo := NewObservationRepository(store, testLogger())

	for _, id := range []string{"c", "a", "b"} {
		if err := repo.Put(&observation.Record{
			ID:   id,
			Meta: observation.Meta{TeacherName: "Mai"},
		}); err != nil {
			t.Fatalf("put %s: %v", id, err)
		}
	}

	sums, err := repo.ListSummaries(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"a", "b", "c"}
	if len(sums) != len(want) {
		t.Fatalf("got %d summaries, want %d", len(sums), len(want))
	}
	for i, id := range want {
		if sums[i].ID != id {
			t.Errorf("sums[%d].ID = %q, want %q", i, sums[i].ID, id)
		}
	}
}
