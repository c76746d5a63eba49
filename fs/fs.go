package appfs

import "embed"

// FS holds the files shipped inside the binaries: SQL migrations and email templates.
//
//go:embed migrations all:assets
var FS embed.FS

const (
	PostgresMigrationsDir = "migrations/postgres"
	SessionMigrationsDir  = "migrations/session"
	EmailTemplatesDir     = "assets/templates/email"
)
