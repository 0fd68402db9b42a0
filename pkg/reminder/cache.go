package reminder

import (
	"errors"
	"strings"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"tableflip.dev/cinetime/pkg/logging"
	"tableflip.dev/cinetime/pkg/store"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ConfirmedCache is the durable set of movie ids whose reminders were
// confirmed by the service. It is a hint, not the system of record: it can
// be stale or empty, and a miss never blocks a new attempt.
type ConfirmedCache struct {
	backend store.Backend
	key     string
	log     *zap.SugaredLogger

	mu  sync.Mutex
	ids []string
	set mapset.Set[string]
}

// NewConfirmedCache loads the cache from backend. Missing or corrupt state
// yields an empty cache.
func NewConfirmedCache(backend store.Backend, ns store.Namespace, log *zap.SugaredLogger) *ConfirmedCache {
	if ns == "" {
		ns = store.DefaultNamespace
	}
	c := &ConfirmedCache{
		backend: backend,
		key:     ns.Key(store.KeyReminders),
		log:     logging.OrNop(log),
		set:     mapset.NewThreadUnsafeSet[string](),
	}
	c.load()
	return c
}

func (c *ConfirmedCache) load() {
	if c.backend == nil {
		return
	}
	data, err := c.backend.Get(c.key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			c.log.Warnw("reminder: load confirmed cache failed", "key", c.key, "error", err)
		}
		return
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		c.log.Warnw("reminder: confirmed cache is corrupt, ignoring", "key", c.key, "error", err)
		return
	}
	for _, id := range ids {
		if id != "" && c.set.Add(id) {
			c.ids = append(c.ids, id)
		}
	}
}

// Has reports whether id was confirmed.
func (c *ConfirmedCache) Has(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set.Contains(id)
}

// Add records id as confirmed. Adding a known id does not rewrite storage.
func (c *ConfirmedCache) Add(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id == "" || !c.set.Add(id) {
		return
	}
	c.ids = append(c.ids, id)
	c.persistLocked()
}

// Remove forgets id.
func (c *ConfirmedCache) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.set.Contains(id) {
		return
	}
	c.set.Remove(id)
	kept := c.ids[:0]
	for _, other := range c.ids {
		if other != id {
			kept = append(kept, other)
		}
	}
	c.ids = kept
	c.persistLocked()
}

// IDs returns the confirmed ids in the order they were confirmed.
func (c *ConfirmedCache) IDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.ids...)
}

func (c *ConfirmedCache) persistLocked() {
	if c.backend == nil {
		return
	}
	data, err := json.Marshal(c.ids)
	if err != nil {
		c.log.Warnw("reminder: encode confirmed cache failed", "error", err)
		return
	}
	if err := c.backend.Set(c.key, data); err != nil {
		c.log.Warnw("reminder: save confirmed cache failed", "key", c.key, "error", err)
	}
}

// ContactCache remembers the most recently used contact address to pre-fill
// the next submission. It has no bearing on reminder state.
type ContactCache struct {
	backend store.Backend
	key     string
	log     *zap.SugaredLogger
}

// NewContactCache returns a ContactCache stored under ns.
func NewContactCache(backend store.Backend, ns store.Namespace, log *zap.SugaredLogger) *ContactCache {
	if ns == "" {
		ns = store.DefaultNamespace
	}
	return &ContactCache{
		backend: backend,
		key:     ns.Key(store.KeyUserEmail),
		log:     logging.OrNop(log),
	}
}

// Get returns the remembered address, or "" if none is usable.
func (c *ContactCache) Get() string {
	if c == nil || c.backend == nil {
		return ""
	}
	data, err := c.backend.Get(c.key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			c.log.Debugw("reminder: load contact failed", "error", err)
		}
		return ""
	}
	var addr string
	if err := json.Unmarshal(data, &addr); err != nil {
		// Older clients stored the bare string.
		return strings.TrimSpace(string(data))
	}
	return addr
}

// Set remembers addr.
func (c *ContactCache) Set(addr string) {
	if c == nil || c.backend == nil || addr == "" {
		return
	}
	data, err := json.Marshal(addr)
	if err != nil {
		return
	}
	if err := c.backend.Set(c.key, data); err != nil {
		c.log.Warnw("reminder: save contact failed", "error", err)
	}
}
