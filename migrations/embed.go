package migrations

import "embed"

// Files holds the forward-only schema migrations, applied in file-name order on every boot.
//
//go:embed *.sql
var Files embed.FS
