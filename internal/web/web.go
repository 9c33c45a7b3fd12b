// internal/web/web.go
// Package web serves the embedded frontend application.
package web

import (
	"bytes"
	"embed"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/noahchrist/myCbbModel/internal/logging"

	"github.com/gorilla/mux"
)

// spaHandler serves a single-page application from an embedded filesystem.
// Paths that do not match an embedded file fall back to the index page so
// client-side routes resolve after a page reload.
type spaHandler struct {
	contentFS fs.FS
	indexPath string
}

// ServeHTTP handles serving the SPA.
func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// fs paths are slash-separated and carry no leading slash.
	filePath := path.Clean(strings.TrimPrefix(r.URL.Path, "/"))
	if filePath == "" || filePath == "." {
		filePath = h.indexPath
	}

	file, err := h.contentFS.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			h.serveIndex(w, r)
			return
		}
		logging.Log.Errorf("spaHandler: Failed to open embedded file '%s': %v", filePath, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		logging.Log.Errorf("spaHandler: Failed to stat embedded file '%s': %v", filePath, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// http.ServeContent needs an io.ReadSeeker. Files from embed.FS implement
	// it, but the fs.File interface does not guarantee that, so fall back to
	// an in-memory copy when the assertion fails.
	seeker, ok := file.(io.ReadSeeker)
	if !ok {
		fileBytes, err := io.ReadAll(file)
		if err != nil {
			logging.Log.Errorf("spaHandler: Failed to read embedded file '%s': %v", filePath, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		seeker = bytes.NewReader(fileBytes)
	}

	http.ServeContent(w, r, filePath, fileInfo.ModTime(), seeker)
}

// serveIndex sends the index page for paths with no matching embedded file.
func (h spaHandler) serveIndex(w http.ResponseWriter, r *http.Request) {
	indexBytes, err := fs.ReadFile(h.contentFS, h.indexPath)
	if err != nil {
		logging.Log.Errorf("spaHandler: Embedded index '%s' is missing: %v", h.indexPath, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	http.ServeContent(w, r, h.indexPath, time.Time{}, bytes.NewReader(indexBytes))
}

// AddRoutes mounts the frontend handler on the main router.
// It registers a catch-all route, so it must be called after all API routes.
func AddRoutes(router *mux.Router, content embed.FS, indexPath string) {
	subFS, err := fs.Sub(content, "frontend_embed/browser")
	if err != nil {
		logging.Log.Fatalf("Failed to create sub FS for frontend: %v", err)
	}

	router.PathPrefix("/").Handler(spaHandler{
		contentFS: subFS,
		indexPath: indexPath,
	})
}
