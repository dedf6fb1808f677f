// Package gamedata loads the embedded JSON tables: terrain rules, hero
// templates, resource kinds and scenarios.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
