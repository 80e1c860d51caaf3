// Package server exposes the portfolio pages over HTTP with gin.
package server

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/Zachkp/portfolio/internal/mount"
	"github.com/Zachkp/portfolio/internal/prefs"
	"github.com/Zachkp/portfolio/internal/ui"
	"github.com/Zachkp/portfolio/web"
)

// Options configures a Server.
type Options struct {
	Loader   mount.Loader
	Prefs    prefs.Store
	Logger   *zap.Logger
	SiteName string
	About    string
	// Secure marks cookies Secure; set in production.
	Secure bool
	// Static renders pages for the file export: no htmx attributes.
	Static bool
	Assets fs.FS
}

// Server holds the router and its collaborators.
type Server struct {
	engine   *gin.Engine
	loader   mount.Loader
	mounter  *mount.Mounter
	prefs    prefs.Store
	logger   *zap.Logger
	siteName string
	about    string
	secure   bool
	static   bool
	cursor   ui.Cursor
}

// New wires routes and middleware.
func New(opts Options) (*Server, error) {
	if opts.Loader == nil {
		return nil, errors.New("server: catalog loader is required")
	}
	s := &Server{
		loader:   opts.Loader,
		mounter:  mount.New(opts.Loader),
		prefs:    opts.Prefs,
		logger:   opts.Logger,
		siteName: opts.SiteName,
		about:    opts.About,
		secure:   opts.Secure,
		static:   opts.Static,
		cursor:   ui.DefaultCursor(),
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.prefs == nil {
		h, _ := prefs.NewHasher("")
		s.prefs = prefs.NewMemoryStore(h)
	}
	if s.siteName == "" {
		s.siteName = "Portfolio"
	}
	if s.about == "" {
		s.about = DefaultAbout
	}
	assets := opts.Assets
	if assets == nil {
		assets = web.Static()
	}

	pages, err := newPageRender()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.HTMLRender = pages
	r.Use(gin.Recovery())
	r.Use(logging.Middleware(s.logger))
	r.Use(s.preferences())

	r.StaticFS("/static", http.FS(assets))
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.GET("/", s.home)
	r.GET("/projects", s.projects)
	r.GET("/projects/grid", s.catalogFragment)
	r.POST("/theme", s.toggleTheme)
	r.GET("/api/projects", s.apiProjects)

	s.engine = r
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }
