package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/mount"
	"github.com/Zachkp/portfolio/internal/ui"
)

func (s *Server) pageData(c *gin.Context, title string) PageData {
	path := c.Request.URL.Path
	return PageData{
		Title:    title,
		SiteName: s.siteName,
		Path:     path,
		Year:     time.Now().Year(),
		Static:   s.static,
		Theme:    themeFrom(c),
		Drawer:   ui.NewDrawer(c.Query("nav") == "open"),
		Cursor:   s.cursor,
		Nav:      buildNav(path),
		About:    s.about,
	}
}

func (s *Server) home(c *gin.Context) {
	page, err := s.mounter.Mount(c.Request.Context(), mount.Request{}, mount.Featured)
	if err != nil {
		s.fail(c, err)
		return
	}
	data := s.pageData(c, "Home")
	data.Featured = page.Featured
	c.HTML(http.StatusOK, "home", data)
}

func filterRequest(c *gin.Context) mount.Request {
	tag := strings.TrimSpace(c.Query("filter"))
	return mount.Request{Filter: tag, Selected: tag != ""}
}

func (s *Server) projects(c *gin.Context) {
	page, err := s.mounter.Mount(c.Request.Context(), filterRequest(c), mount.FullCatalog)
	if err != nil {
		s.fail(c, err)
		return
	}
	data := s.pageData(c, "Projects")
	data.Grid = page.Grid
	c.HTML(http.StatusOK, "projects", data)
}

// catalogFragment re-renders only the filter bar and grid, for htmx swaps.
func (s *Server) catalogFragment(c *gin.Context) {
	req := filterRequest(c)
	req.Selected = true
	page, err := s.mounter.Mount(c.Request.Context(), req, mount.FullCatalog)
	if err != nil {
		s.fail(c, err)
		return
	}
	data := s.pageData(c, "Projects")
	data.Grid = page.Grid
	c.HTML(http.StatusOK, "catalog", data)
}

func (s *Server) toggleTheme(c *gin.Context) {
	next := themeFrom(c).Toggle()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(themeCookie, next.String(), cookieMaxAge, "/", "", s.secure, false)
	if err := s.prefs.SetTheme(c.Request.Context(), visitorFrom(c), next); err != nil {
		s.logger.Warn("save theme preference", zap.Error(err))
	}

	if isHTMX(c) {
		trigger, _ := json.Marshal(map[string]any{
			"themeChanged": map[string]string{"value": next.String()},
		})
		c.Header("HX-Trigger", string(trigger))
		c.HTML(http.StatusOK, "theme-status", next)
		return
	}
	c.Redirect(http.StatusSeeOther, safeReturn(c.PostForm("return")))
}

func (s *Server) apiProjects(c *gin.Context) {
	store, err := s.loader.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": mount.LoadFailedMessage})
		return
	}
	labels := store.Labels()
	categories := make(map[string]string)
	for _, tag := range labels.Tags() {
		categories[tag], _ = labels.Text(tag)
	}
	c.JSON(http.StatusOK, gin.H{
		"projects":   store.Projects(),
		"categories": categories,
	})
}

func (s *Server) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	s.logger.Error("render page", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.String(http.StatusInternalServerError, "internal server error")
}
