// Package site serves the embedded calculator page.
package site

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Register attaches the embedded calculator page to r. It serves every path
// not claimed by a more specific route, so mount it last.
func Register(r chi.Router) {
	if r == nil {
		panic("router is nil")
	}
	r.Handle("/*", http.FileServer(FS()))
}
