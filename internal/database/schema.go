package database

import _ "embed"

// Schema is the current full schema, extracted from the migrated database
// by internal/database/tools/generate_schema.go. Tests apply it directly to
// in-memory databases instead of running migrations.
//
//go:embed schema.sql
var Schema string
