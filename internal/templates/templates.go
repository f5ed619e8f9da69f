// Package templates holds the embedded HTML pages and a gin renderer that
// pairs each page with the shared layout.
package templates

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/gin-gonic/gin/render"
)

const layoutFile = "layout.html"

// Page names accepted by Renderer.Instance.
const (
	PageList          = "list"
	PageDetail        = "detail"
	PageForm          = "form"
	PageConfirmDelete = "confirm_delete"
	PageError         = "error"
)

//go:embed *.html
var files embed.FS

var pageNames = []string{PageList, PageDetail, PageForm, PageConfirmDelete, PageError}

// Renderer implements gin's render.HTMLRender. Every page defines a
// "content" block and is parsed together with the layout, so pages cannot
// overwrite each other's blocks.
type Renderer struct {
	pages map[string]*template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

// New parses all pages.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		tmpl, err := template.New(layoutFile).ParseFS(files, layoutFile, name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// MustNew is New for program start-up and tests.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Instance returns the render for page name. Unknown names fall back to the
// error page.
func (r *Renderer) Instance(name string, data any) render.Render {
	tmpl, ok := r.pages[name]
	if !ok {
		tmpl = r.pages[PageError]
	}
	return render.HTML{Template: tmpl, Name: layoutFile, Data: data}
}
