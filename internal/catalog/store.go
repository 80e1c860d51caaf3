package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Store is an immutable, sorted snapshot of the catalog for one page view.
// The zero value is an empty catalog.
type Store struct {
	projects []Project
	labels   LabelTable
	loaded   bool
}

// NewStore merges both lists, primary first, and sorts them by Order.
// Records with equal Order keep their input order.
func NewStore(doc Document) *Store {
	merged := make([]Project, 0, len(doc.Projects)+len(doc.ExtraPages))
	merged = append(merged, doc.Projects...)
	merged = append(merged, doc.ExtraPages...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Order < merged[j].Order
	})
	labels := doc.Categories
	if labels.labels == nil {
		labels = DefaultLabels()
	}
	return &Store{projects: merged, labels: labels, loaded: true}
}

// Loaded reports whether the snapshot came from a successful load.
func (s *Store) Loaded() bool { return s != nil && s.loaded }

// Projects returns the sorted catalog.
func (s *Store) Projects() []Project {
	if s == nil {
		return nil
	}
	return append([]Project(nil), s.projects...)
}

// Featured returns the featured subset in catalog order.
func (s *Store) Featured() []Project {
	if s == nil {
		return nil
	}
	var out []Project
	for _, p := range s.projects {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// Labels returns the category label table.
func (s *Store) Labels() LabelTable {
	if s == nil || s.labels.labels == nil {
		return DefaultLabels()
	}
	return s.labels
}

// Loader retrieves the data file from a local path or an http(s) URL.
type Loader struct {
	source string
	http   *http.Client
	logger *zap.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient overrides the client used for remote sources.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.http = c }
}

// WithLogger sets the operator log channel for load failures.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader returns a loader for source.
func NewLoader(source string, opts ...Option) *Loader {
	l := &Loader{
		source: strings.TrimSpace(source),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.http == nil {
		l.http = &http.Client{Timeout: 10 * time.Second}
	}
	return l
}

// Source returns the configured location.
func (l *Loader) Source() string { return l.source }

// Load performs a single retrieval. On failure it returns an empty Store and
// a *LoadError; nothing is retried.
func (l *Loader) Load(ctx context.Context) (*Store, error) {
	store, err := l.load(ctx)
	if err != nil {
		l.logger.Warn("catalog load failed",
			zap.String("source", l.source),
			zap.Error(err),
		)
		return &Store{}, err
	}
	l.logger.Debug("catalog loaded",
		zap.String("source", l.source),
		zap.Int("projects", len(store.projects)),
	)
	return store, nil
}

func (l *Loader) load(ctx context.Context) (*Store, error) {
	data, err := l.fetch(ctx)
	if err != nil {
		return nil, &LoadError{Kind: KindFetch, Source: l.source, Err: err}
	}
	doc, err := Decode(data, FormatFromPath(l.source))
	if err != nil {
		return nil, &LoadError{Kind: KindParse, Source: l.source, Err: err}
	}
	if err := Validate(doc); err != nil {
		return nil, &LoadError{Kind: KindSchema, Source: l.source, Err: err}
	}
	return NewStore(doc), nil
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	if l.source == "" {
		return nil, fmt.Errorf("no data source configured")
	}
	if !isRemote(l.source) {
		return os.ReadFile(l.source)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
