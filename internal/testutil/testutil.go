// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"saynope/internal/catalog"
	"saynope/internal/db"
)

// TestDB creates a test database connection and registers its cleanup.
// The test is skipped when TEST_DATABASE_URL is not set.
func TestDB(t *testing.T) *db.DB {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	// Run migrations
	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	cleanupTestData(ctx, database.Pool)
	t.Cleanup(func() {
		cleanupTestData(ctx, database.Pool)
		database.Close()
	})

	return database
}

// cleanupTestData removes all test data from the database.
func cleanupTestData(ctx context.Context, pool *pgxpool.Pool) {
	pool.Exec(ctx, "DELETE FROM copy_counts")
	pool.Exec(ctx, "DELETE FROM categories")
}

// SampleCatalog returns the small two-category catalog used across tests:
// Work ("Too busy", "Not my job") and Life ("I'm tired").
func SampleCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	c, err := catalog.FromDocument(&catalog.Document{
		TotalReasons: 3,
		Categories: catalog.CategoryList{
			{Name: "Work", Count: 2, Reasons: []string{"Too busy", "Not my job"}},
			{Name: "Life", Count: 1, Reasons: []string{"I'm tired"}},
		},
	})
	if err != nil {
		t.Fatalf("failed to build sample catalog: %v", err)
	}
	return c
}
