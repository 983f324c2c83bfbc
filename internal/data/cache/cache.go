// Package cache keeps the loaded spreadsheet in memory until the file changes.
package cache

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/penwyp/go-project-panel/internal/core/model"
	"github.com/penwyp/go-project-panel/internal/util"
)

type CacheMissReason int

const (
	MissReasonNone CacheMissReason = iota
	MissReasonNotLoaded
	MissReasonInvalidated
	MissReasonError
	MissReasonInode
	MissReasonSize
	MissReasonModTime
	MissReasonFingerprint
)

func (r CacheMissReason) String() string {
	switch r {
	case MissReasonNone:
		return "none"
	case MissReasonNotLoaded:
		return "not_loaded"
	case MissReasonInvalidated:
		return "invalidated"
	case MissReasonError:
		return "error"
	case MissReasonInode:
		return "inode"
	case MissReasonSize:
		return "size"
	case MissReasonModTime:
		return "modtime"
	case MissReasonFingerprint:
		return "fingerprint"
	default:
		return "unknown"
	}
}

// Files untouched for longer than this skip the content fingerprint check
const fingerprintRecency = 48 * time.Hour

// DatasetLoader loads a dataset from disk
type DatasetLoader interface {
	LoadFile(path string) (*model.Dataset, error)
}

// CacheResult is returned by Get
type CacheResult struct {
	Dataset    *model.Dataset
	Hit        bool
	MissReason CacheMissReason
}

// Stats counts cache activity since creation
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Loads  int64 `json:"loads"`
}

type entry struct {
	dataset     *model.Dataset
	info        util.FileInfo
	fingerprint string
}

// DatasetCache holds one dataset per spreadsheet path. Datasets handed out are
// shared and must be treated as read-only.
type DatasetCache struct {
	loader  DatasetLoader
	mu      sync.Mutex
	entries map[string]*entry
	stats   Stats
	now     func() time.Time
}

func NewDatasetCache(loader DatasetLoader) *DatasetCache {
	return &DatasetCache{
		loader:  loader,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Get returns the cached dataset for path, reloading it when the file changed
// since the last load.
func (c *DatasetCache) Get(path string) (CacheResult, error) {
	key := cacheKey(path)

	c.mu.Lock()
	defer c.mu.Unlock()

	reason := MissReasonNotLoaded
	if e, ok := c.entries[key]; ok {
		reason = c.validate(key, e)
		if reason == MissReasonNone {
			c.stats.Hits++
			return CacheResult{Dataset: e.dataset, Hit: true}, nil
		}
		delete(c.entries, key)
	}

	c.stats.Misses++
	util.LogDebug("Dataset cache miss", util.F("path", key), util.F("reason", reason.String()))

	e, err := c.load(key)
	if err != nil {
		return CacheResult{MissReason: reason}, err
	}
	c.entries[key] = e
	return CacheResult{Dataset: e.dataset, MissReason: reason}, nil
}

// Invalidate drops the entry for path so the next Get reloads it
func (c *DatasetCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(path)
	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		util.LogInfo("Dataset cache invalidated", util.F("path", key))
	}
}

// Clear drops every entry
func (c *DatasetCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}

// Stats returns a copy of the counters
func (c *DatasetCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *DatasetCache) load(path string) (*entry, error) {
	// Stat before reading: a write racing the load then shows up as a
	// mismatch on the next Get instead of being masked.
	info, err := util.GetFileInfo(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(err, "spreadsheet not found",
				goerr.T(model.ErrTagDatasetNotFound),
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to stat spreadsheet", goerr.V("path", path))
	}
	fingerprint, err := util.CalculateFileFingerprint(path)
	if err != nil {
		util.LogDebug("Fingerprint unavailable", util.F("path", path), util.F("error", err.Error()))
	}

	dataset, err := c.loader.LoadFile(path)
	if err != nil {
		return nil, err
	}
	c.stats.Loads++

	return &entry{dataset: dataset, info: *info, fingerprint: fingerprint}, nil
}

func (c *DatasetCache) validate(path string, e *entry) CacheMissReason {
	current, err := util.GetFileInfo(path)
	if err != nil {
		util.LogDebug("Cache validation failed", util.F("path", path), util.F("error", err.Error()))
		return MissReasonError
	}

	if current.Inode != e.info.Inode {
		return MissReasonInode
	}
	if current.Size != e.info.Size {
		return MissReasonSize
	}
	if current.ModTime != e.info.ModTime {
		return MissReasonModTime
	}

	if c.now().Sub(time.Unix(0, current.ModTime)) > fingerprintRecency || e.fingerprint == "" {
		return MissReasonNone
	}
	fingerprint, err := util.CalculateFileFingerprint(path)
	if err != nil || fingerprint != e.fingerprint {
		return MissReasonFingerprint
	}
	return MissReasonNone
}

func cacheKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
