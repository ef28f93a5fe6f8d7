// Package staticfiles carries the browser client so the server binary is
// self-contained.
package staticfiles

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed css/* js/*
var embedded embed.FS

func EmbeddedFS() fs.FS {
	return embedded
}

// Handler serves the client from the binary, or from devDir on disk when
// devDir is set so css/js edits show up without a rebuild.
func Handler(devDir string) http.Handler {
	if devDir != "" {
		return http.FileServer(http.Dir(devDir))
	}
	return http.FileServer(http.FS(embedded))
}
