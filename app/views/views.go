// Package views embeds the HTML templates so the binary runs from any
// working directory.
package views

import "embed"

//go:embed layout.html shared/*.html posts/*.html users/*.html errors/*.html
var FS embed.FS
