// Package schemas provides embedded SQL migration files.
package schemas

import "embed"

// MigrationsDirectory is the directory of Migrations holding the .sql files.
const MigrationsDirectory = "migrations"

// Migrations contains the SQL migrations for the corrections database.
//
//go:embed migrations/*.sql
var Migrations embed.FS
