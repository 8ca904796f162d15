package web

import "embed"

// Templates embeds the HTML templates for server-side rendering.
//
//go:embed templates/*.html
var Templates embed.FS
