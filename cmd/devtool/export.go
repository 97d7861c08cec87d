package main

import (
	"context"

	"github.com/osse101/PackBattle_Go/internal/bootstrap"
	"github.com/osse101/PackBattle_Go/internal/catalog"
	"github.com/osse101/PackBattle_Go/internal/database/postgres"
)

const defaultExportPath = "configs/boxes.export.json"

type ExportCommand struct{}

func (c *ExportCommand) Name() string {
	return "export-catalog"
}

func (c *ExportCommand) Description() string {
	return "Write the current boxes and cards to a seed-format JSON file"
}

func (c *ExportCommand) Run(ctx context.Context, args []string) error {
	path := defaultExportPath
	if len(args) > 0 {
		path = args[0]
	}

	pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	catalogSvc := catalog.NewService(postgres.NewCatalogRepository(pool), catalog.DefaultCacheConfig())
	n, err := bootstrap.ExportCatalog(ctx, catalogSvc, path)
	if err != nil {
		return err
	}

	PrintSuccess("Exported %d boxes to %s", n, path)
	return nil
}
