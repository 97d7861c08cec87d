package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/osse101/PackBattle_Go/internal/database"
)

type MigrateCommand struct {
	// in is read for the down confirmation; nil means stdin
	in io.Reader
}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Manage database migrations (up, down, status)"
}

func (c *MigrateCommand) Run(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, down, status")
	}
	subcmd := args[0]
	if subcmd != "up" && subcmd != "down" && subcmd != "status" {
		return fmt.Errorf("unknown subcommand: %s", subcmd)
	}

	if subcmd == "down" && !c.confirm("Roll back the latest migration? Type 'yes' to continue: ") {
		PrintWarning("Rollback cancelled")
		return nil
	}

	pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	switch subcmd {
	case "up":
		PrintHeader("Applying migrations")
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
	case "down":
		PrintHeader("Rolling back latest migration")
		if err := database.MigrateDown(ctx, pool); err != nil {
			return err
		}
	}

	version, err := database.MigrationVersion(ctx, pool)
	if err != nil {
		return err
	}
	PrintSuccess("Schema version: %d", version)
	return nil
}

func (c *MigrateCommand) confirm(prompt string) bool {
	in := c.in
	if in == nil {
		in = os.Stdin
	}
	fmt.Print(prompt)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	return strings.TrimSpace(answer) == confirmYes
}
