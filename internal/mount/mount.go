// Package mount drives the catalog render paths for whichever project
// containers a page declares.
package mount

import (
	"context"
	"html/template"
	"strings"

	"github.com/Zachkp/portfolio/internal/catalog"
	"github.com/Zachkp/portfolio/internal/filter"
	"github.com/Zachkp/portfolio/internal/render"
)

// Container identifies a mount point by its element id.
type Container string

const (
	FullCatalog Container = "projects-grid"
	Featured    Container = "featured-projects"
)

// LoadFailedMessage replaces the full catalog when the data file cannot be loaded.
const LoadFailedMessage = "Failed to load projects. Please refresh."

// Loader is satisfied by *catalog.Loader.
type Loader interface {
	Load(ctx context.Context) (*catalog.Store, error)
}

// Grid is the full-catalog container after mounting.
type Grid struct {
	ID       string
	HTML     template.HTML
	Cards    []render.Card
	Controls []filter.Control
	Active   string
	Error    string
}

// Filtering reports whether the filter controls were activated.
func (g *Grid) Filtering() bool { return g != nil && g.Error == "" }

// FeaturedList is the featured container after mounting. When Untouched is
// set the page keeps its pre-render markup.
type FeaturedList struct {
	ID        string
	HTML      template.HTML
	Count     int
	Untouched bool
}

// Page holds the mounted containers; a nil field means the page has no such
// container.
type Page struct {
	Grid     *Grid
	Featured *FeaturedList
	Store    *catalog.Store
	Err      error
}

// Request carries the filter state of the page view.
type Request struct {
	Filter string
	// Selected is set when the filter came from a click on a control.
	Selected bool
}

// Mounter loads the catalog once per page view and fills containers.
type Mounter struct {
	loader Loader
}

// New returns a Mounter reading from loader.
func New(loader Loader) *Mounter {
	return &Mounter{loader: loader}
}

// Mount fills every container listed. The catalog is loaded at most once and
// only when at least one container is present. The returned error is reserved
// for template failures; load failures are reported through Page.Err.
func (m *Mounter) Mount(ctx context.Context, req Request, containers ...Container) (Page, error) {
	var wantGrid, wantFeatured bool
	for _, c := range containers {
		switch c {
		case FullCatalog:
			wantGrid = true
		case Featured:
			wantFeatured = true
		}
	}
	var page Page
	if !wantGrid && !wantFeatured {
		return page, nil
	}

	store, loadErr := m.loader.Load(ctx)
	page.Store = store
	page.Err = loadErr

	if wantGrid {
		grid, err := mountGrid(store, loadErr, req)
		if err != nil {
			return page, err
		}
		page.Grid = grid
	}
	if wantFeatured {
		featured, err := mountFeatured(store, loadErr)
		if err != nil {
			return page, err
		}
		page.Featured = featured
	}
	return page, nil
}

func mountGrid(store *catalog.Store, loadErr error, req Request) (*Grid, error) {
	grid := &Grid{ID: string(FullCatalog)}
	if loadErr != nil {
		grid.Error = LoadFailedMessage
		return grid, nil
	}
	r := render.New(store.Labels())
	projects := store.Projects()
	cards := make([]render.Card, 0, len(projects))
	for _, p := range projects {
		cards = append(cards, r.CardView(p))
	}

	ctl := filter.NewController(store.Labels())
	if req.Selected {
		ctl.Select(req.Filter)
	} else {
		ctl.Activate(req.Filter)
	}
	ctl.Apply(cards)

	var b strings.Builder
	for _, c := range cards {
		markup, err := r.CardMarkup(c)
		if err != nil {
			return nil, err
		}
		b.WriteString(string(markup))
	}
	grid.HTML = template.HTML(b.String())
	grid.Cards = cards
	grid.Controls = ctl.Controls()
	grid.Active = ctl.Active()
	return grid, nil
}

func mountFeatured(store *catalog.Store, loadErr error) (*FeaturedList, error) {
	list := &FeaturedList{ID: string(Featured)}
	if loadErr != nil {
		list.Untouched = true
		return list, nil
	}
	r := render.New(store.Labels())
	var b strings.Builder
	for i, p := range store.Featured() {
		markup, err := r.Row(p, i)
		if err != nil {
			return nil, err
		}
		b.WriteString(string(markup))
		list.Count++
	}
	list.HTML = template.HTML(b.String())
	return list, nil
}
