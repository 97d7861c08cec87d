package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PackBattle_Go/internal/database/postgres"
	"github.com/osse101/PackBattle_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application
type Repositories struct {
	User    repository.User
	Catalog repository.Catalog
	Battle  repository.Battle
}

// InitializeRepositories creates the Postgres repositories over one pool
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:    postgres.NewUserRepository(dbPool),
		Catalog: postgres.NewCatalogRepository(dbPool),
		Battle:  postgres.NewBattleRepository(dbPool),
	}
}
