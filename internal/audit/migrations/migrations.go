// Package migrations embeds the SQL migrations for the key-generation
// audit ledger.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
