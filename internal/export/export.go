// Package export renders the site to plain files so it can be hosted
// without the server.
package export

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/catalog"
	"github.com/Zachkp/portfolio/internal/server"
	"github.com/Zachkp/portfolio/web"
)

// Page maps a route to the file it is written to.
type Page struct {
	Route string
	File  string
}

// Pages is the set of routes exported by Build.
var Pages = []Page{
	{Route: "/", File: "index.html"},
	{Route: "/projects", File: "projects/index.html"},
	{Route: "/api/projects", File: "api/projects.json"},
}

// Options configures a build.
type Options struct {
	Loader   *catalog.Loader
	OutDir   string
	SiteName string
	About    string
	Logger   *zap.Logger
	// Assets defaults to the embedded static tree.
	Assets fs.FS
}

// Result lists the files written, relative to OutDir.
type Result struct {
	Files []string
}

// snapshot serves one loaded catalog to every exported page.
type snapshot struct {
	store *catalog.Store
}

func (s snapshot) Load(context.Context) (*catalog.Store, error) { return s.store, nil }

// Build loads the catalog once and writes every page plus the static assets.
// A failed load aborts the build before anything is written.
func Build(ctx context.Context, opts Options) (Result, error) {
	if opts.Loader == nil {
		return Result{}, errors.New("export: catalog loader is required")
	}
	if opts.OutDir == "" {
		return Result{}, errors.New("export: output directory is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	assets := opts.Assets
	if assets == nil {
		assets = web.Static()
	}

	store, err := opts.Loader.Load(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load catalog: %w", err)
	}

	srv, err := server.New(server.Options{
		Loader:   snapshot{store: store},
		Logger:   logger,
		SiteName: opts.SiteName,
		About:    opts.About,
		Static:   true,
		Assets:   assets,
	})
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, p := range Pages {
		body, err := renderPage(ctx, srv.Handler(), p.Route)
		if err != nil {
			return res, err
		}
		if err := writeFile(opts.OutDir, p.File, body); err != nil {
			return res, err
		}
		res.Files = append(res.Files, p.File)
	}

	copied, err := copyAssets(assets, opts.OutDir)
	res.Files = append(res.Files, copied...)
	if err != nil {
		return res, err
	}

	logger.Info("site exported",
		zap.String("out", opts.OutDir),
		zap.Int("files", len(res.Files)),
		zap.Int("projects", len(store.Projects())),
	)
	return res, nil
}

func renderPage(ctx context.Context, h http.Handler, route string) ([]byte, error) {
	req := httptest.NewRequest(http.MethodGet, route, nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		return nil, fmt.Errorf("render %s: status %d", route, rec.Code)
	}
	return rec.Body.Bytes(), nil
}

func writeFile(root, name string, data []byte) error {
	path := filepath.Join(root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func copyAssets(assets fs.FS, root string) ([]string, error) {
	var files []string
	err := fs.WalkDir(assets, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(assets, p)
		if err != nil {
			return err
		}
		name := "static/" + p
		if err := writeFile(root, name, data); err != nil {
			return err
		}
		files = append(files, name)
		return nil
	})
	if err != nil {
		return files, fmt.Errorf("copy static assets: %w", err)
	}
	return files, nil
}
