package http

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

type pageDescriptor struct {
	Page        string `json:"page"`
	Path        string `json:"path"`
	CallbackURL string `json:"callbackUrl,omitempty"`
}

// mountPages serves the browser shell. With STATIC_DIR set, known files are
// served as is and every other page path falls back to index.html so the
// shell can route client-side. Without it, pages answer with a small JSON
// descriptor. Unknown /api paths are always a JSON 404.
func mountPages(r chi.Router, d RouterDeps) {
	var shell http.Handler
	if dir := strings.TrimSpace(d.Cfg.StaticDir); dir != "" {
		shell = staticShell(dir)
	}

	page := func(name string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if shell != nil {
				shell.ServeHTTP(w, r)
				return
			}
			WriteJSON(w, 200, pageDescriptor{
				Page:        name,
				Path:        r.URL.Path,
				CallbackURL: r.URL.Query().Get("callbackUrl"),
			})
		}
	}

	loginPath, deniedPath := d.Cfg.LoginPath, d.Cfg.DeniedPath
	if loginPath == "" {
		loginPath = "/login"
	}
	if deniedPath == "" {
		deniedPath = "/acesso-negado"
	}
	r.Get(loginPath, page("login"))
	r.Get(deniedPath, page("acesso-negado"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") {
			Fail(w, 404, "not found")
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			Fail(w, 405, "method not allowed")
			return
		}
		page("shell")(w, r)
	})
}

func staticShell(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clean := path.Clean("/" + r.URL.Path)
		if clean != "/" {
			if fi, err := os.Stat(filepath.Join(dir, filepath.FromSlash(clean))); err == nil && !fi.IsDir() {
				files.ServeHTTP(w, r)
				return
			}
		}
		w.Header().Set("Cache-Control", "no-cache")
		http.ServeFile(w, r, index)
	})
}
