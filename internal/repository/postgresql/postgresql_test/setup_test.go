package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-console-backend-go/migrations"
	"github.com/stretchr/testify/require"
)

var (
	testDB      *database.DB
	testDBErr   error
	testDBSetup sync.Once
)

// newTestDatabase connects to TEST_DATABASE_URL, applies migrations and
// empties every table. Tests are skipped when the variable is unset.
func newTestDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	testDBSetup.Do(func() {
		ctx := context.Background()
		testDB, testDBErr = database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 5, MinConns: 1})
		if testDBErr != nil {
			return
		}
		_, testDBErr = database.Migrate(ctx, testDB, migrations.FS)
	})
	require.NoError(t, testDBErr)

	truncateAllTables(t, testDB)
	return testDB
}

func truncateAllTables(t *testing.T, db *database.DB) {
	t.Helper()
	ctx := context.Background()

	tables := []string{
		"refresh_tokens",
		"users",
		"salary_receipts",
		"attendances",
		"employees",
		"employee_credentials",
	}
	for _, table := range tables {
		_, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "truncate %s", table)
	}
}
