// Package migrations embeds the SQL schema migrations so tools and tests can
// apply them without a checkout on disk.
package migrations

import "embed"

// FS holds every *.sql migration, named for golang-migrate.
//
//go:embed *.sql
var FS embed.FS
