package server

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/gin-gonic/gin/render"

	"github.com/Zachkp/portfolio/internal/mount"
	"github.com/Zachkp/portfolio/internal/ui"
	"github.com/Zachkp/portfolio/web"
)

// PageData is the view model shared by every full page.
type PageData struct {
	Title    string
	SiteName string
	Path     string
	Year     int
	Static   bool

	Theme  ui.Theme
	Drawer *ui.Drawer
	Cursor ui.Cursor
	Nav    []NavItem

	About    string
	Grid     *mount.Grid
	Featured *mount.FeaturedList
}

// NavItem is a rendered navigation link.
type NavItem struct {
	Href   string
	Label  string
	Active bool
}

var mainNav = []NavItem{
	{Href: "/", Label: "Home"},
	{Href: "/projects", Label: "Projects"},
}

func buildNav(currentPath string) []NavItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]NavItem, 0, len(mainNav))
	for _, it := range mainNav {
		it.Active = isActive(it.Href, currentPath)
		items = append(items, it)
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	return currentPath == itemPath || strings.HasPrefix(currentPath, itemPath+"/")
}

type pageSpec struct {
	entry string
	files []string
}

var pageSpecs = map[string]pageSpec{
	"home":         {entry: "base", files: []string{"templates/layout.html", "templates/home.html"}},
	"projects":     {entry: "base", files: []string{"templates/layout.html", "templates/projects.html", "templates/catalog.html"}},
	"catalog":      {entry: "catalog", files: []string{"templates/catalog.html"}},
	"theme-status": {entry: "theme-status", files: []string{"templates/theme_status.html"}},
}

// pageRender is a gin HTMLRender with one template set per page, so every
// page can define its own "content" block.
type pageRender struct {
	pages map[string]*template.Template
}

func newPageRender() (*pageRender, error) {
	p := &pageRender{pages: make(map[string]*template.Template, len(pageSpecs))}
	for name, spec := range pageSpecs {
		t, err := template.New(name).ParseFS(web.Templates, spec.files...)
		if err != nil {
			return nil, fmt.Errorf("parse %s templates: %w", name, err)
		}
		p.pages[name] = t
	}
	return p, nil
}

func (p *pageRender) Instance(name string, data any) render.Render {
	t, ok := p.pages[name]
	if !ok {
		return render.String{Format: "unknown page %q", Data: []any{name}}
	}
	return render.HTML{Template: t, Name: pageSpecs[name].entry, Data: data}
}
