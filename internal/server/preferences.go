package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/prefs"
	"github.com/Zachkp/portfolio/internal/ui"
)

const (
	visitorCookie = "portfolio_vid"
	themeCookie   = "theme"
	cookieMaxAge  = 365 * 24 * 3600

	ctxVisitor = "visitor"
	ctxTheme   = "theme"
)

// preferences assigns a visitor id and resolves the theme for every page
// request: cookie first, then the preference store, then the default.
func (s *Server) preferences() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/static/") || path == "/healthz" || strings.HasPrefix(path, "/favicon") {
			c.Next()
			return
		}

		vid, err := c.Cookie(visitorCookie)
		if err != nil || vid == "" {
			vid = prefs.NewVisitorID()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(visitorCookie, vid, cookieMaxAge, "/", "", s.secure, true)
		}
		c.Set(ctxVisitor, vid)
		c.Set(ctxTheme, s.resolveTheme(c, vid))
		c.Next()
	}
}

func (s *Server) resolveTheme(c *gin.Context, vid string) ui.Theme {
	if v, err := c.Cookie(themeCookie); err == nil {
		if t, ok := ui.ParseTheme(v); ok {
			return t
		}
	}
	t, ok, err := s.prefs.Theme(c.Request.Context(), vid)
	if err != nil {
		s.logger.Warn("read theme preference", zap.Error(err))
	}
	if ok {
		return t
	}
	return ui.DefaultTheme
}

func themeFrom(c *gin.Context) ui.Theme {
	if v, ok := c.Get(ctxTheme); ok {
		if t, ok := v.(ui.Theme); ok {
			return t
		}
	}
	return ui.DefaultTheme
}

func visitorFrom(c *gin.Context) string {
	return c.GetString(ctxVisitor)
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// safeReturn keeps redirects on this site.
func safeReturn(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return "/"
	}
	return p
}
