// Package migrations embeds the schema migrations for the tribute store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
