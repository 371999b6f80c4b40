// Package migrations embeds the SQLite schema for character sheets.
package migrations

import "embed"

// FS contains embedded SQLite migrations for character sheet storage.
//
//go:embed *.sql
var FS embed.FS
