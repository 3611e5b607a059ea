// Package templates embeds the HTML templates rendered by internal/web/render.
package templates

import "embed"

//go:embed layouts/*.html partials/*.html pages/*.html admin/*.html
var FS embed.FS
