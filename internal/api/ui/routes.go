package ui

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/stagedoor/greenroom/web"
)

// RegisterRoutes serves the embedded catalog browser at /_ui/.
func RegisterRoutes(mux *http.ServeMux) {
	dist, err := fs.Sub(web.Assets, "dist")
	if err != nil {
		panic("web assets missing from build: " + err.Error())
	}

	files := http.StripPrefix("/_ui/", http.FileServer(http.FS(dist)))

	mux.HandleFunc("/_ui/", func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/_ui/")
		if name != "" {
			if f, err := dist.Open(name); err == nil {
				_ = f.Close()
				files.ServeHTTP(w, r)
				return
			}
		}

		// Root and unknown paths both get the browser page.
		page, err := fs.ReadFile(dist, "index.html")
		if err != nil {
			http.Error(w, "catalog browser page missing", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	})
}
