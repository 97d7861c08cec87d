package main

import (
	"context"
	"fmt"

	"github.com/osse101/PackBattle_Go/internal/bootstrap"
	"github.com/osse101/PackBattle_Go/internal/catalog"
	"github.com/osse101/PackBattle_Go/internal/config"
	"github.com/osse101/PackBattle_Go/internal/database"
	"github.com/osse101/PackBattle_Go/internal/database/postgres"
)

type SeedCommand struct{}

func (c *SeedCommand) Name() string {
	return "seed"
}

func (c *SeedCommand) Description() string {
	return "Seed boxes, cards and demo users from a JSON file (default configs/boxes.json)"
}

func (c *SeedCommand) Run(ctx context.Context, args []string) error {
	path := config.ConfigPathBoxes
	if len(args) > 0 {
		path = args[0]
	}

	PrintHeader("Seeding " + path)
	seed, err := bootstrap.LoadBoxesConfig(path)
	if err != nil {
		return err
	}

	pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return err
	}

	catalogSvc := catalog.NewService(postgres.NewCatalogRepository(pool), catalog.DefaultCacheConfig())
	res, err := bootstrap.SyncCatalog(ctx, seed, catalogSvc, postgres.NewUserRepository(pool))
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	PrintSuccess("Seeded %d boxes (%d cards) and %d users", res.Boxes, res.Cards, res.Users)
	return nil
}
