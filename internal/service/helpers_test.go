package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smoothies/internal/database"
	"smoothies/internal/model"
)

const testDatabaseURI = "sqlite://:memory:"

func newTestDB(t *testing.T, options ...model.FruitOption) *sql.DB {
	t.Helper()

	db, err := database.NewDB(testDatabaseURI)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.InitSchema(db, testDatabaseURI))
	if len(options) > 0 {
		_, err := database.Seed(context.Background(), db, options)
		require.NoError(t, err)
	}
	return db
}

func countOrders(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&n))
	return n
}

func exampleOptions() []model.FruitOption {
	return []model.FruitOption{
		{Name: "Apple", SearchKey: "apple"},
		{Name: "Kiwi", SearchKey: "kiwi"},
		{Name: "Guava", SearchKey: ""},
	}
}

func exampleCatalog(t *testing.T) *model.Catalog {
	t.Helper()
	catalog, skipped := model.NewCatalog(exampleOptions())
	require.Empty(t, skipped)
	return catalog
}

// fakeFetcher records every search key it is asked for.
type fakeFetcher struct {
	mu        sync.Mutex
	calls     []string
	responses map[string]any
	errs      map[string]error
}

func (f *fakeFetcher) Get(ctx context.Context, searchKey string) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, searchKey)
	if err, ok := f.errs[searchKey]; ok {
		return nil, err
	}
	return f.responses[searchKey], nil
}

func (f *fakeFetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func nopLogger() *zap.Logger {
	return zap.NewNop()
}
