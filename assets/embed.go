// Package assets embeds the default catalog, sprite table, page template and
// static files so the server runs with no external files.
package assets

import (
	"embed"
	"html/template"
	"io/fs"

	"github.com/robalobadob/bingo/internal/catalog"
	"github.com/robalobadob/bingo/internal/sprites"
)

//go:embed catalog.json sprites.json templates/*.html static
var FS embed.FS

// DefaultCatalog decodes the embedded catalog.json.
func DefaultCatalog() (*catalog.Catalog, error) {
	f, err := FS.Open("catalog.json")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return catalog.ReadJSON(f)
}

// DefaultSprites decodes the embedded sprites.json.
func DefaultSprites() (*sprites.Table, error) {
	f, err := FS.Open("sprites.json")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return sprites.ReadJSON(f)
}

// Static returns the static/ subtree for serving under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(FS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Templates parses templates/*.html.
func Templates(funcs template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(FS, "templates/*.html")
}
