package postgres

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/PackBattle_Go/internal/database"
	"github.com/osse101/PackBattle_Go/internal/domain"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		testPool, terminate = setupDatabase(context.Background())
	}

	code := m.Run()

	if testPool != nil {
		testPool.Close()
	}
	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

// setupDatabase starts a disposable Postgres and applies the migrations.
// It returns a nil pool when Docker is unavailable so tests can skip.
func setupDatabase(ctx context.Context) (pool *pgxpool.Pool, terminate func()) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupDatabase: %v\n", r)
			pool, terminate = nil, nil
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return nil, nil
	}
	terminate = func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		return nil, terminate
	}

	pool, err = database.NewPool(ctx, database.PoolConfig{ConnString: connStr, MaxConns: 10})
	if err != nil {
		fmt.Printf("WARNING: Failed to connect: %v\n", err)
		return nil, terminate
	}
	if err := database.Migrate(ctx, pool); err != nil {
		fmt.Printf("WARNING: Failed to migrate: %v\n", err)
		pool.Close()
		return nil, terminate
	}
	return pool, terminate
}

// requirePool skips the test when no database is available
func requirePool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testPool == nil {
		t.Skip("Skipping integration test: database not available")
	}
	return testPool
}

func seedUser(t *testing.T, repo *UserRepository, balance int64) *domain.User {
	t.Helper()
	u := &domain.User{
		Username: "player-" + uuid.NewString()[:8],
		Role:     domain.RoleUser,
		Balance:  decimal.NewFromInt(balance),
	}
	require.NoError(t, repo.UpsertUser(context.Background(), u))
	return u
}

func seedBox(t *testing.T, repo *CatalogRepository, values ...float64) *domain.Box {
	t.Helper()
	box := &domain.Box{
		ID:           uuid.New(),
		Name:         "Box " + uuid.NewString()[:8],
		Price:        decimal.NewFromInt(5),
		CardsPerPack: 1,
	}
	for i, v := range values {
		box.Entries = append(box.Entries, domain.CatalogEntry{
			Name:   fmt.Sprintf("Card %d", i),
			Rarity: "common",
			Weight: 1,
			Value:  v,
		})
	}
	require.NoError(t, repo.UpsertBox(context.Background(), box))
	return box
}

func balanceOf(t *testing.T, repo *UserRepository, id uuid.UUID) decimal.Decimal {
	t.Helper()
	u, err := repo.GetUserByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u.Balance
}
