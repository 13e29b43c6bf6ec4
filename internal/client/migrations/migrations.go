// Package migrations embeds the SQL migrations for the client credential
// database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
