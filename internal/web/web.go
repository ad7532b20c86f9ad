// Package web serves the embedded single-page clipboard editor.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
)

// staticFiles stores the editor page directly in the binary so a clipd
// deployment is a single file.
//
//go:embed static
var staticFiles embed.FS

// Handler returns the UI handler. The editor page is served at / and at
// /c/{id} (the share URL); the page's script picks the clipboard ID out
// of the path. Assets live under /static/.
func Handler() http.Handler {
	assets, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// Embedded tree is fixed at build time; this cannot fail on a
		// correctly built binary
		panic(err)
	}

	fileServer := http.FileServer(http.FS(assets))

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", fileServer))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" || strings.HasPrefix(r.URL.Path, "/c/") {
			serveIndex(w, r)
			return
		}
		http.NotFound(w, r)
	})
	return mux
}

func serveIndex(w http.ResponseWriter, r *http.Request) {
	index, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "editor page missing", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(index)
}
