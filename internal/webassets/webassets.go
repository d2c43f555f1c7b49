// Package webassets embeds the browser shell and generates its service worker.
package webassets

import (
	"bytes"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"sort"
	"strings"
	"text/template"
	"time"
)

//go:embed static
var embedded embed.FS

//go:embed sw.js.tmpl
var workerTemplate string

const (
	cacheNamePrefix = "mlb-scoreboard-static-"
	hashLength      = 12

	// BypassHost is never intercepted by the service worker.
	BypassHost = "statsapi.mlb.com"

	cacheNoCache   = "no-cache"
	cacheVersioned = "public, max-age=86400"
)

// Precache lists the paths installed by the service worker.
var Precache = []string{"/", "/index.html", "/app.js", "/styles.css", "/manifest.webmanifest"}

// Assets holds the embedded files, the derived cache name and the rendered worker.
type Assets struct {
	files     map[string][]byte
	cacheName string
	worker    []byte
	modTime   time.Time
}

// Load reads the embedded shell.
func Load() (*Assets, error) {
	sub, err := fs.Sub(embedded, "static")
	if err != nil {
		return nil, err
	}
	return FromFS(sub, workerTemplate)
}

// FromFS builds assets from any file system; tests use fstest.MapFS.
func FromFS(fsys fs.FS, tmpl string) (*Assets, error) {
	files := make(map[string][]byte)
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		files[p] = data
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read assets: %w", err)
	}
	if _, ok := files["index.html"]; !ok {
		return nil, fmt.Errorf("read assets: index.html missing")
	}

	a := &Assets{files: files, cacheName: CacheName(files, tmpl), modTime: time.Now().UTC()}
	worker, err := renderWorker(tmpl, a.cacheName)
	if err != nil {
		return nil, err
	}
	a.worker = worker
	return a, nil
}

// CacheName hashes sorted asset names, their contents and the worker template.
func CacheName(files map[string][]byte, tmpl string) string {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	h := sha256.New()
	for _, name := range names {
		h.Write([]byte(name))
		h.Write([]byte{0})
		h.Write(files[name])
		h.Write([]byte{0})
	}
	h.Write([]byte(tmpl))
	return cacheNamePrefix + hex.EncodeToString(h.Sum(nil))[:hashLength]
}

func renderWorker(tmpl, cacheName string) ([]byte, error) {
	t, err := template.New("sw.js").Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("parse worker template: %w", err)
	}
	var buf bytes.Buffer
	err = t.Execute(&buf, struct {
		CacheName  string
		Precache   []string
		BypassHost string
	}{cacheName, Precache, BypassHost})
	if err != nil {
		return nil, fmt.Errorf("render worker: %w", err)
	}
	return buf.Bytes(), nil
}

// CacheName returns the current static cache name.
func (a *Assets) CacheName() string { return a.cacheName }

// Worker returns the generated service worker source.
func (a *Assets) Worker() []byte { return a.worker }

// Handler serves the shell. Unknown paths fall through to 404.
func (a *Assets) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		var (
			body    []byte
			control = cacheVersioned
		)
		switch name {
		case "", "index.html":
			name = "index.html"
			body = a.files[name]
			control = cacheNoCache
		case "sw.js":
			body = a.worker
			control = cacheNoCache
		default:
			data, ok := a.files[name]
			if !ok {
				http.NotFound(w, r)
				return
			}
			body = data
		}

		etag := `"` + a.cacheName + `"`
		w.Header().Set("Cache-Control", control)
		w.Header().Set("ETag", etag)
		if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		if ct := contentType(name); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		http.ServeContent(w, r, name, a.modTime, bytes.NewReader(body))
	})
}

func contentType(name string) string {
	switch path.Ext(name) {
	case ".html":
		return "text/html; charset=utf-8"
	case ".js":
		return "text/javascript; charset=utf-8"
	case ".css":
		return "text/css; charset=utf-8"
	case ".webmanifest":
		return "application/manifest+json"
	}
	return ""
}
