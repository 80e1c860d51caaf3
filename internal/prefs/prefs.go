// Package prefs persists per-browser display preferences. Browsers are
// identified by a random visitor id that is hashed before it is stored.
package prefs

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"sync"
	"time"

	"github.com/Zachkp/portfolio/internal/ui"
)

// Store keeps the theme of each visitor.
type Store interface {
	Theme(ctx context.Context, visitor string) (ui.Theme, bool, error)
	SetTheme(ctx context.Context, visitor string, theme ui.Theme) error
	Close() error
}

// Hasher turns visitor ids into storage keys.
type Hasher struct {
	salt string
}

// NewHasher returns a hasher for salt. An empty salt gets a random,
// process-local one, so stored preferences do not survive a restart.
func NewHasher(salt string) (Hasher, bool) {
	if salt != "" {
		return Hasher{salt: salt}, true
	}
	return Hasher{salt: randomToken(32)}, false
}

// Key hashes a visitor id.
func (h Hasher) Key(visitor string) string {
	sum := sha256.Sum256([]byte(visitor + h.salt))
	return hex.EncodeToString(sum[:])[:32]
}

// NewVisitorID returns a fresh random visitor id for the cookie.
func NewVisitorID() string {
	return randomToken(16)
}

func randomToken(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// MemoryStore keeps preferences for the life of the process.
type MemoryStore struct {
	hasher Hasher
	mu     sync.RWMutex
	themes map[string]memoryEntry
}

type memoryEntry struct {
	theme   ui.Theme
	updated time.Time
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore(h Hasher) *MemoryStore {
	return &MemoryStore{hasher: h, themes: map[string]memoryEntry{}}
}

func (s *MemoryStore) Theme(ctx context.Context, visitor string) (ui.Theme, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if visitor == "" {
		return "", false, nil
	}
	s.mu.RLock()
	e, ok := s.themes[s.hasher.Key(visitor)]
	s.mu.RUnlock()
	return e.theme, ok, nil
}

func (s *MemoryStore) SetTheme(ctx context.Context, visitor string, theme ui.Theme) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if visitor == "" {
		return nil
	}
	s.mu.Lock()
	s.themes[s.hasher.Key(visitor)] = memoryEntry{theme: theme, updated: time.Now().UTC()}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close() error { return nil }
