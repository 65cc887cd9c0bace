package docs

import "embed"

// FS contains the Markdown help bundled with the pbapi binary.
//
//go:embed help/*.md
var FS embed.FS
