// Package cache remembers per-logo classifications between runs so that
// unchanged images are not decoded and classified again.
package cache

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/BitPonyLLC/logohue/pkg/logocolor"

	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"
)

// Entry is what gets remembered for one image.
type Entry struct {
	Category  logocolor.Category `yaml:"category"`
	Prominent string             `yaml:"prominent,omitempty"`
}

// Cache is a YAML-backed map from image digest to Entry. It is safe for
// concurrent use.
type Cache struct {
	pathname string
	entries  map[string]Entry
	dirty    bool
	mutex    sync.Mutex
}

// Key identifies an image's content together with the classifier settings
// that produced its result.
func Key(data []byte, classifier logocolor.Classifier) string {
	sum := blake2b.Sum256(data)
	floor := strconv.FormatFloat(classifier.SaturationFloor, 'g', -1, 64)
	return hex.EncodeToString(sum[:]) + "/" + floor
}

// Open loads the cache stored at pathname. A missing file yields an empty cache.
func Open(pathname string) (*Cache, error) {
	c := &Cache{pathname: pathname, entries: map[string]Entry{}}

	content, err := os.ReadFile(pathname)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("unable to read %s: %w", pathname, err)
	}

	err = yaml.Unmarshal(content, &c.entries)
	if err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", pathname, err)
	}

	if c.entries == nil {
		c.entries = map[string]Entry{}
	}

	return c, nil
}

// Get returns the entry stored under key.
func (c *Cache) Get(key string) (Entry, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, ok := c.entries[key]
	return entry, ok
}

// Put stores an entry under key.
func (c *Cache) Put(key string, entry Entry) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if old, ok := c.entries[key]; ok && old == entry {
		return
	}

	c.entries[key] = entry
	c.dirty = true
}

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.entries)
}

// Save writes the cache back to its file if anything changed.
func (c *Cache) Save() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.dirty {
		return nil
	}

	content, err := yaml.Marshal(c.entries)
	if err != nil {
		return fmt.Errorf("unable to encode cache: %w", err)
	}

	err = os.WriteFile(c.pathname, content, 0600)
	if err != nil {
		return fmt.Errorf("unable to write %s: %w", c.pathname, err)
	}

	c.dirty = false
	return nil
}
