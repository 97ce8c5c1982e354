package web

import "embed"

// Static holds the embedded web/static bundle: the public landing page and
// the back-office app assets. Handlers access it via fs.Sub(Static, "static").
//
//go:embed static
var Static embed.FS
