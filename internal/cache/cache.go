// Package cache stores analysis reports on disk so repeated requests for the
// same snippet skip the LLM round trip. Entries are keyed by snippet content,
// language hint, and model, and expire after a configurable TTL.
package cache

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"

	"github.com/codalyzer/codalyzer/pkg/models"
)

// Cache is a file-backed TTL cache for analysis results.
type Cache struct {
	dir     string
	ttl     time.Duration
	enabled bool
}

// entry is the on-disk representation of a cached report.
type entry struct {
	ContentHash string                `json:"contentHash"`
	StoredAt    time.Time             `json:"storedAt"`
	Result      models.AnalysisResult `json:"result"`
}

// New creates a cache rooted at dir. A disabled cache is valid and turns all
// operations into no-ops.
func New(dir string, ttlHours int, enabled bool) (*Cache, error) {
	if !enabled {
		return &Cache{enabled: false}, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Cache{
		dir:     dir,
		ttl:     time.Duration(ttlHours) * time.Hour,
		enabled: true,
	}, nil
}

// Key derives the cache key for one analysis request. Filename is excluded:
// the same snippet under a different name yields the same report apart from
// metadata, and metadata is cheap to patch.
func Key(code, language, model string) string {
	h := xxhash.New()
	h.WriteString(language)
	h.WriteString("\x00")
	h.WriteString(model)
	h.WriteString("\x00")
	h.WriteString(code)
	return strconv.FormatUint(h.Sum64(), 16)
}

// ContentHash returns the BLAKE3 hex digest of a snippet, stored alongside
// each entry to guard against key collisions.
func ContentHash(code string) string {
	sum := blake3.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached report for a request, or false when absent, expired,
// or content-mismatched.
func (c *Cache) Get(code, language, model string) (*models.AnalysisResult, bool) {
	if !c.enabled {
		return nil, false
	}

	path := c.entryPath(Key(code, language, model))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		os.Remove(path)
		return nil, false
	}
	if e.ContentHash != ContentHash(code) {
		return nil, false
	}
	if time.Since(e.StoredAt) > c.ttl {
		os.Remove(path)
		return nil, false
	}

	return &e.Result, true
}

// Set stores a report for a request.
func (c *Cache) Set(code, language, model string, result *models.AnalysisResult) error {
	if !c.enabled || result == nil {
		return nil
	}

	e := entry{
		ContentHash: ContentHash(code),
		StoredAt:    time.Now(),
		Result:      *result,
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return os.WriteFile(c.entryPath(Key(code, language, model)), data, 0600)
}

// Clear removes every cached entry.
func (c *Cache) Clear() error {
	if !c.enabled {
		return nil
	}
	return os.RemoveAll(c.dir)
}

func (c *Cache) entryPath(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// Stats summarizes the cache directory.
type Stats struct {
	Entries   int           `json:"entries"`
	TotalSize int64         `json:"total_size"`
	OldestAge time.Duration `json:"oldest_age"`
	NewestAge time.Duration `json:"newest_age"`
}

// GetStats walks the cache directory and reports entry counts and ages.
func (c *Cache) GetStats() (*Stats, error) {
	if !c.enabled {
		return &Stats{}, nil
	}

	stats := &Stats{}
	var oldest, newest time.Time

	err := filepath.Walk(c.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		stats.Entries++
		stats.TotalSize += info.Size()

		modTime := info.ModTime()
		if oldest.IsZero() || modTime.Before(oldest) {
			oldest = modTime
		}
		if newest.IsZero() || modTime.After(newest) {
			newest = modTime
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !oldest.IsZero() {
		stats.OldestAge = time.Since(oldest)
	}
	if !newest.IsZero() {
		stats.NewestAge = time.Since(newest)
	}
	return stats, nil
}
