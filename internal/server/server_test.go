package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/catalog"
	"github.com/Zachkp/portfolio/internal/mount"
	"github.com/Zachkp/portfolio/internal/prefs"
)

const testCatalog = `{"projects":[
  {"id":1,"name":"A","description":"Cloud thing","category":["cloud"],"tech":[],"github":"","live":"","featured":true,"order":2},
  {"id":2,"name":"B","description":"Frontend thing","category":["frontend"],"tech":["X"],"github":"g","live":"","featured":false,"order":1}
]}`

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	handler http.Handler
	prefs   *prefs.MemoryStore
}

func newTestServer(t *testing.T, data string, static bool) testEnv {
	t.Helper()
	source := filepath.Join(t.TempDir(), "projects.json")
	if data != "" {
		require.NoError(t, os.WriteFile(source, []byte(data), 0o644))
	}
	h, _ := prefs.NewHasher("test")
	store := prefs.NewMemoryStore(h)
	srv, err := New(Options{
		Loader:   catalog.NewLoader(source),
		Prefs:    store,
		SiteName: "Test Folio",
		Static:   static,
	})
	require.NoError(t, err)
	return testEnv{handler: srv.Handler(), prefs: store}
}

func do(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, *goquery.Document) {
	t.Helper()
	rec := do(t, h, httptest.NewRequest(http.MethodGet, target, nil))
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	return rec, doc
}

func cookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestHealthzOK(t *testing.T) {
	env := newTestServer(t, testCatalog, false)
	rec := do(t, env.handler, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", strings.TrimSpace(rec.Body.String()))
	require.Nil(t, cookie(rec, visitorCookie))
}

func TestHomeRendersFeaturedRows(t *testing.T) {
	env := newTestServer(t, testCatalog, false)
	rec, doc := get(t, env.handler, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	rows := doc.Find("#featured-projects a.project-row")
	require.Equal(t, 1, rows.Length())
	require.Equal(t, "01", rows.Find(".project-ordinal").Text())
	require.Equal(t, "A", strings.TrimSpace(rows.Find(".project-name").Text()))
	href, _ := rows.Attr("href")
	require.Equal(t, "#", href)

	theme, _ := doc.Find("html").Attr("data-theme")
	require.Equal(t, "light", theme)
	require.Equal(t, "Home", strings.TrimSpace(doc.Find(".site-nav a.active").Text()))
	require.Equal(t, 0, doc.Find("#projects-grid").Length())
	require.NotNil(t, cookie(rec, visitorCookie))
}

func TestProjectsRendersGridAndFilters(t *testing.T) {
	env := newTestServer(t, testCatalog, false)
	rec, doc := get(t, env.handler, "/projects")
	require.Equal(t, http.StatusOK, rec.Code)

	var order []string
	doc.Find("#projects-grid .project-card h3").Each(func(_ int, s *goquery.Selection) {
		order = append(order, strings.TrimSpace(s.Text()))
	})
	require.Equal(t, []string{"B", "A"}, order)

	active := doc.Find(".filter-btn.active")
	require.Equal(t, 1, active.Length())
	tag, _ := active.Attr("data-filter")
	require.Equal(t, "all", tag)
	hx, _ := doc.Find(`.filter-btn[data-filter="cloud"]`).Attr("hx-get")
	require.Equal(t, "/projects/grid?filter=cloud", hx)
	require.Equal(t, 0, doc.Find("#featured-projects").Length())
}

func TestProjectsFilterQuery(t *testing.T) {
	env := newTestServer(t, testCatalog, false)
	_, doc := get(t, env.handler, "/projects?filter=cloud")

	tag, _ := doc.Find(".filter-btn.active").Attr("data-filter")
	require.Equal(t, "cloud", tag)
	visible := doc.Find(".project-card").Not(".hidden")
	require.Equal(t, 1, visible.Length())
	cat, _ := visible.Attr("data-category")
	require.Equal(t, "cloud", cat)
}

func TestCatalogFragmentForHTMX(t *testing.T) {
	env := newTestServer(t, testCatalog, false)
	req := httptest.NewRequest(http.MethodGet, "/projects/grid?filter=frontend", nil)
	req.Header.Set("HX-Request", "true")
	rec := do(t, env.handler, req)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.True(t, strings.HasPrefix(strings.TrimSpace(body), `<section id="projects-catalog">`))
	require.NotContains(t, body, "<html")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find(".project-card.hidden").Length())
	require.Equal(t, 1, doc.Find(".project-card.fade-in-up").Length())
}

func TestLoadFailure(t *testing.T) {
	env := newTestServer(t, "", false)

	_, doc := get(t, env.handler, "/projects")
	require.Equal(t, mount.LoadFailedMessage, strings.TrimSpace(doc.Find("#projects-grid").Text()))
	require.Equal(t, 0, doc.Find(".project-card").Length())
	require.Equal(t, 0, doc.Find(".filter-btn").Length())

	_, doc = get(t, env.handler, "/")
	featured := doc.Find("#featured-projects")
	require.Equal(t, 1, featured.Find(".loading").Length())
	require.Equal(t, 0, featured.Find(".project-row").Length())
	require.NotContains(t, featured.Text(), mount.LoadFailedMessage)
}

func TestThemeToggleRedirectsAndPersists(t *testing.T) {
	env := newTestServer(t, testCatalog, false)

	form := url.Values{"return": {"/projects"}}
	req := httptest.NewRequest(http.MethodPost, "/theme", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: visitorCookie, Value: "visitor-1"})
	rec := do(t, env.handler, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/projects", rec.Header().Get("Location"))
	c := cookie(rec, themeCookie)
	require.NotNil(t, c)
	require.Equal(t, "dark", c.Value)

	// The theme cookie is gone but the visitor's stored preference remains.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: visitorCookie, Value: "visitor-1"})
	rec = do(t, env.handler, req)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	theme, _ := doc.Find("html").Attr("data-theme")
	require.Equal(t, "dark", theme)
	pressed, _ := doc.Find(".theme-toggle").Attr("aria-pressed")
	require.Equal(t, "true", pressed)
}

func TestThemeToggleHTMX(t *testing.T) {
	env := newTestServer(t, testCatalog, false)

	req := httptest.NewRequest(http.MethodPost, "/theme", nil)
	req.Header.Set("HX-Request", "true")
	req.AddCookie(&http.Cookie{Name: themeCookie, Value: "dark"})
	rec := do(t, env.handler, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Theme changed to light mode", strings.TrimSpace(rec.Body.String()))
	var trigger map[string]map[string]string
	require.NoError(t, json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &trigger))
	require.Equal(t, "light", trigger["themeChanged"]["value"])
}

func TestThemeToggleRejectsOffsiteReturn(t *testing.T) {
	env := newTestServer(t, testCatalog, false)

	form := url.Values{"return": {"//evil.example.com"}}
	req := httptest.NewRequest(http.MethodPost, "/theme", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := do(t, env.handler, req)
	require.Equal(t, "/", rec.Header().Get("Location"))
}

func TestDrawerFallback(t *testing.T) {
	env := newTestServer(t, testCatalog, false)

	_, doc := get(t, env.handler, "/projects?nav=open")
	require.True(t, doc.Find("#mobile-drawer").HasClass("open"))
	require.True(t, doc.Find("body").HasClass("overflow-hidden"))
	expanded, _ := doc.Find("#menu-btn").Attr("aria-expanded")
	require.Equal(t, "true", expanded)

	_, doc = get(t, env.handler, "/projects")
	require.False(t, doc.Find("#mobile-drawer").HasClass("open"))
}

func TestCursorAttributes(t *testing.T) {
	env := newTestServer(t, testCatalog, false)
	_, doc := get(t, env.handler, "/")
	body := doc.Find("body")
	delay, _ := body.Attr("data-cursor-delay")
	require.Equal(t, "100", delay)
	minWidth, _ := body.Attr("data-cursor-min")
	require.Equal(t, "768", minWidth)
	require.Equal(t, 1, doc.Find("#cursor-ring").Length())
}

func TestStaticModeOmitsHTMX(t *testing.T) {
	env := newTestServer(t, testCatalog, true)
	body := do(t, env.handler, httptest.NewRequest(http.MethodGet, "/projects", nil)).Body.String()
	require.NotContains(t, body, "hx-get")
	require.NotContains(t, body, "htmx.org")
	require.Contains(t, body, `data-static="true"`)
}

func TestAPIProjects(t *testing.T) {
	env := newTestServer(t, testCatalog, false)
	rec := do(t, env.handler, httptest.NewRequest(http.MethodGet, "/api/projects", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Projects   []catalog.Project `json:"projects"`
		Categories map[string]string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Projects, 2)
	require.Equal(t, "B", payload.Projects[0].Name)
	require.Equal(t, "Cloud & DevOps", payload.Categories["cloud"])

	failing := newTestServer(t, "", false)
	rec = do(t, failing.handler, httptest.NewRequest(http.MethodGet, "/api/projects", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStaticAssetsServed(t *testing.T) {
	env := newTestServer(t, testCatalog, false)
	rec := do(t, env.handler, httptest.NewRequest(http.MethodGet, "/static/js/site.js", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "cursor-blob")
}

func TestSafeReturn(t *testing.T) {
	require.Equal(t, "/projects", safeReturn("/projects"))
	require.Equal(t, "/", safeReturn(""))
	require.Equal(t, "/", safeReturn("https://evil.example.com"))
	require.Equal(t, "/", safeReturn("//evil.example.com"))
	require.Equal(t, "/", safeReturn(`/\evil.example.com`))
}

func TestBuildNav(t *testing.T) {
	items := buildNav("/projects")
	require.False(t, items[0].Active)
	require.True(t, items[1].Active)
	require.True(t, buildNav("")[0].Active)
}
