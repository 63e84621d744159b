package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/odontoflow/odontoflow/internal/domain/record"
)

// Cache is the local fallback mirror of the record collection, keyed by a
// fixed namespace and written as a JSON snapshot. It keeps the dashboard
// usable when the record store is unreachable. Load never fails: an absent
// or corrupt snapshot yields an empty collection.
type Cache struct {
	path string
	log  *zap.Logger
}

func NewCache(dir, namespace string, log *zap.Logger) *Cache {
	return &Cache{
		path: filepath.Join(dir, namespace+".json"),
		log:  log,
	}
}

func (c *Cache) Save(records []record.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	// Write-then-rename so a crash mid-write cannot corrupt the snapshot.
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}

func (c *Cache) Load() []record.Record {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.log.Warn("failed to read cache snapshot", zap.Error(err))
		}
		return []record.Record{}
	}

	var records []record.Record
	if err := json.Unmarshal(data, &records); err != nil {
		c.log.Warn("cache snapshot is corrupt, starting empty", zap.Error(err))
		return []record.Record{}
	}
	if records == nil {
		records = []record.Record{}
	}
	return records
}
