// Package testutil provides shared fixtures for tests: an in-memory database,
// CNIS document texts and a fluent bond builder.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/cnis-flow/internal/model"
	"github.com/Veraticus/cnis-flow/internal/service"
	"github.com/Veraticus/cnis-flow/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
}

// SetupTestDB creates a new migrated in-memory database, closed on cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t)
//	imp := db.SeedImport(model.GenderMale, testutil.NewBond(1).Build())
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	// Create in-memory SQLite storage
	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	// Run migrations
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Register cleanup
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// SeedImport saves an import holding bonds and returns it.
func (db *TestDB) SeedImport(gender model.Gender, bonds ...model.Bond) *model.Import {
	db.t.Helper()

	imp := NewImport(gender, bonds...)
	if err := db.Storage.SaveImport(context.Background(), imp); err != nil {
		db.t.Fatalf("failed to seed import: %v", err)
	}
	return imp
}

// MustGetImport loads an import or fails the test.
func (db *TestDB) MustGetImport(id string) *model.Import {
	db.t.Helper()

	imp, err := db.Storage.GetImport(context.Background(), id)
	if err != nil {
		db.t.Fatalf("failed to load import %s: %v", id, err)
	}
	return imp
}

// NewImport wraps bonds in an unsaved import with a fresh id.
func NewImport(gender model.Gender, bonds ...model.Bond) *model.Import {
	if bonds == nil {
		bonds = []model.Bond{}
	}
	return &model.Import{
		ID:         uuid.NewString(),
		ImportedAt: time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC),
		SourceFile: "extrato.pdf",
		Gender:     gender,
		Extract: model.Extract{
			Profile: model.SubjectProfile{
				Name:   model.StringPtr("MARIA DA SILVA SANTOS"),
				TaxID:  model.StringPtr("123.456.789-09"),
				Gender: gender,
			},
			Bonds: bonds,
		},
	}
}
