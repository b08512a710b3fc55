package abstracts_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/deidaraiorek/deirake/internal/abstracts"
)

func newTestDB(t *testing.T) *abstracts.AbstractDB {
	t.Helper()

	db, err := abstracts.NewAbstractDB(filepath.Join(t.TempDir(), "abstracts.db"))
	if err != nil {
		t.Fatalf("Failed to create abstract DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	seed := []*abstracts.Abstract{
		{ID: 3, Text: "Boolean functions", Source: "Hulth 2003", Type: "Testing"},
		{ID: 1, Text: "linear Diophantine equations", Source: "Hulth 2003", Type: "Testing"},
		{ID: 2, Text: "systemological method", Source: "Kaggle", Type: "Testing"},
		{ID: 4, Text: "decomposition clone", Source: "Kaggle", Type: "Training"},
	}
	for _, a := range seed {
		if err := db.SaveAbstract(a); err != nil {
			t.Fatalf("Failed to save abstract %d: %v", a.ID, err)
		}
	}
	return db
}

func TestListAbstractIDs(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		filter   abstracts.Filter
		expected []int
	}{
		{"all", abstracts.Filter{}, []int{1, 2, 3, 4}},
		{"by source", abstracts.Filter{Source: "Hulth 2003"}, []int{1, 3}},
		{"by type", abstracts.Filter{Type: "Testing"}, []int{1, 2, 3}},
		{"by source and type", abstracts.Filter{Source: "Kaggle", Type: "Training"}, []int{4}},
		{"no match", abstracts.Filter{Source: "VLDB Journal"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := db.ListAbstractIDs(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Failed to list ids: %v", err)
			}
			if !reflect.DeepEqual(ids, tt.expected) {
				t.Errorf("ListAbstractIDs() = %v, want %v", ids, tt.expected)
			}
		})
	}
}

func TestGetAbstractByID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	a, err := db.GetAbstractByID(ctx, 2)
	if err != nil {
		t.Fatalf("Failed to get abstract: %v", err)
	}
	if a.Text != "systemological method" || a.Source != "Kaggle" {
		t.Errorf("Unexpected abstract: %+v", a)
	}

	_, err = db.GetAbstractByID(ctx, 99)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Expected sql.ErrNoRows, got %v", err)
	}
}

func TestGetAbstractsAfterID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	batch, err := db.GetAbstractsAfterID(ctx, abstracts.Filter{}, 1, 2)
	if err != nil {
		t.Fatalf("Failed to get batch: %v", err)
	}
	if len(batch) != 2 || batch[0].ID != 2 || batch[1].ID != 3 {
		t.Errorf("Unexpected batch: %+v", batch)
	}
}

func TestCountsAndSources(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	count, err := db.GetTotalAbstractCount(ctx, abstracts.Filter{Source: "Kaggle"})
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 Kaggle abstracts, got %d", count)
	}

	sources, err := db.Sources(ctx)
	if err != nil {
		t.Fatalf("Failed to list sources: %v", err)
	}
	expected := []string{"Hulth 2003", "Kaggle"}
	if !reflect.DeepEqual(sources, expected) {
		t.Errorf("Sources() = %v, want %v", sources, expected)
	}
}
