// Package schema embeds the goose migrations that define the database layout.
package schema

import "embed"

// Migrations holds the SQL migration files, applied in lexical order
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations that goose reads
const MigrationsDir = "migrations"
