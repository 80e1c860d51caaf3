package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/catalog"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/export"
	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/Zachkp/portfolio/internal/prefs"
	"github.com/Zachkp/portfolio/internal/server"
)

var (
	cfg    config.Config
	logger *zap.Logger

	outDir string
	watch  bool
)

var rootCmd = &cobra.Command{
	Use:           "portfolio",
	Short:         "Serve or export the portfolio site",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.Production(), cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the site as static files",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(cmd.Context())
	},
}

func init() {
	buildCmd.Flags().StringVarP(&outDir, "out", "o", "dist", "output directory")
	buildCmd.Flags().BoolVarP(&watch, "watch", "w", false, "rebuild when the data file changes")
	rootCmd.AddCommand(serveCmd, buildCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLoader() *catalog.Loader {
	return catalog.NewLoader(cfg.DataSource, catalog.WithLogger(logger))
}

func openPrefs() (prefs.Store, error) {
	hasher, salted := prefs.NewHasher(cfg.PrefsSalt)
	if cfg.PrefsDB == "" {
		return prefs.NewMemoryStore(hasher), nil
	}
	if !salted {
		// Stored keys are unreadable after a restart without a fixed salt.
		logger.Warn("PORTFOLIO_PREFS_SALT not set, theme preferences will not survive a restart")
	}
	return prefs.OpenSQLite(cfg.PrefsDB, hasher)
}

func runServe(ctx context.Context) error {
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := openPrefs()
	if err != nil {
		return err
	}
	defer store.Close()
	if sq, ok := store.(*prefs.SQLiteStore); ok {
		go prunePrefs(ctx, sq)
	}

	srv, err := server.New(server.Options{
		Loader:   newLoader(),
		Prefs:    store,
		Logger:   logger,
		SiteName: cfg.SiteName,
		Secure:   cfg.Production(),
	})
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("addr", httpSrv.Addr),
			zap.String("data", cfg.DataSource),
			zap.Bool("production", cfg.Production()),
		)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// prunePrefs drops preferences untouched for a year, once at start and then daily.
func prunePrefs(ctx context.Context, store *prefs.SQLiteStore) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		n, err := store.Prune(ctx, prefs.RetentionPeriod)
		if err != nil {
			logger.Warn("prune preferences", zap.Error(err))
		} else if n > 0 {
			logger.Info("pruned preferences", zap.Int64("rows", n))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func runBuild(ctx context.Context) error {
	loader := newLoader()
	build := func(ctx context.Context) error {
		_, err := export.Build(ctx, export.Options{
			Loader:   loader,
			OutDir:   outDir,
			SiteName: cfg.SiteName,
			Logger:   logger,
		})
		return err
	}
	if err := build(ctx); err != nil {
		if !watch {
			return err
		}
		logger.Error("initial build failed", zap.Error(err))
	}
	if !watch {
		return nil
	}
	return export.Watcher{
		Source:  loader.Source(),
		Logger:  logger,
		Rebuild: build,
	}.Run(ctx)
}
