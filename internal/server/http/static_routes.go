package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// mountStatic serves dir under /web/ and redirects / there.
func mountStatic(r chi.Router, dir string) {
	fs := http.StripPrefix("/web/", http.FileServer(http.Dir(dir)))
	r.Get("/web", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/web/", http.StatusFound)
	})
	r.Get("/web/*", fs.ServeHTTP)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/web/", http.StatusFound)
	})
}
