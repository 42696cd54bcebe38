// Package migrations holds the embedded schema for the local and remote stores.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
