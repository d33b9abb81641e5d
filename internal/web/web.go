// Package web embeds the default UI served by the frontend.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var static embed.FS

// Assets returns the embedded UI rooted at its top directory
func Assets() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err) // The directory is compiled in
	}
	return sub
}
