// Package migrations embeds the SQLite schema migrations applied by goose
// when the SQLite storage backend starts.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
