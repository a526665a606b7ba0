// Package appfs embeds static assets (database migrations) into the binary.
package appfs

import "embed"

//go:embed migrations
var FS embed.FS
