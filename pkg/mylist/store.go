package mylist

import (
	"errors"
	"sync"

	jsoniter "github.com/json-iterator/go"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"

	"tableflip.dev/cinetime/pkg/clock"
	"tableflip.dev/cinetime/pkg/logging"
	"tableflip.dev/cinetime/pkg/store"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store holds the saved items in insertion order, unique by ItemID. Every
// mutation rewrites the whole collection to the backend. Durability is best
// effort: read failures start from an empty list and write failures are
// logged, never returned.
type Store struct {
	backend store.Backend
	key     string
	clock   clock.Clock
	log     *zap.SugaredLogger

	mu    sync.RWMutex
	items *orderedmap.OrderedMap[string, Item]

	subMu   sync.Mutex
	subs    map[uint64]func()
	nextSub uint64
}

// Options configures New. Zero values pick sensible defaults.
type Options struct {
	Namespace store.Namespace
	Clock     clock.Clock
	Logger    *zap.SugaredLogger
}

// New loads the saved list from backend.
func New(backend store.Backend, opts Options) *Store {
	if opts.Namespace == "" {
		opts.Namespace = store.DefaultNamespace
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	s := &Store{
		backend: backend,
		key:     opts.Namespace.Key(store.KeyMyList),
		clock:   opts.Clock,
		log:     logging.OrNop(opts.Logger),
		subs:    make(map[uint64]func()),
	}
	s.items = s.load()
	return s
}

func (s *Store) load() *orderedmap.OrderedMap[string, Item] {
	items := orderedmap.New[string, Item]()
	if s.backend == nil {
		return items
	}
	data, err := s.backend.Get(s.key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.log.Warnw("mylist: load failed, starting empty", "key", s.key, "error", err)
		}
		return items
	}
	var list []Item
	if err := json.Unmarshal(data, &list); err != nil {
		s.log.Warnw("mylist: stored list is corrupt, starting empty", "key", s.key, "error", err)
		return items
	}
	for _, it := range list {
		if it.ItemID == "" {
			continue
		}
		if _, present := items.Get(it.ItemID); present {
			continue
		}
		items.Set(it.ItemID, it)
	}
	return items
}

// persistLocked rewrites the full collection. Callers hold s.mu.
func (s *Store) persistLocked() {
	if s.backend == nil {
		return
	}
	data, err := json.Marshal(s.snapshotLocked())
	if err != nil {
		s.log.Warnw("mylist: encode failed", "error", err)
		return
	}
	if err := s.backend.Set(s.key, data); err != nil {
		s.log.Warnw("mylist: save failed", "key", s.key, "error", err)
	}
}

func (s *Store) snapshotLocked() []Item {
	list := make([]Item, 0, s.items.Len())
	for pair := s.items.Oldest(); pair != nil; pair = pair.Next() {
		list = append(list, pair.Value)
	}
	return list
}

// Add saves item unless its ItemID is already present. It reports whether
// the list changed.
func (s *Store) Add(item Item) bool {
	if item.ItemID == "" {
		return false
	}
	s.mu.Lock()
	if _, present := s.items.Get(item.ItemID); present {
		s.mu.Unlock()
		return false
	}
	item.AddedAt = s.clock.Now().UnixMilli()
	s.items.Set(item.ItemID, item)
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
	return true
}

// Remove deletes the item with id, reporting whether it was present.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	if _, present := s.items.Delete(id); !present {
		s.mu.Unlock()
		return false
	}
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
	return true
}

// Toggle adds item when absent and removes it when present. It returns true
// when the item is saved afterwards.
func (s *Store) Toggle(item Item) bool {
	if s.Contains(item.ItemID) {
		s.Remove(item.ItemID)
		return false
	}
	s.Add(item)
	return s.Contains(item.ItemID)
}

// Clear removes every item.
func (s *Store) Clear() {
	s.mu.Lock()
	if s.items.Len() == 0 {
		s.mu.Unlock()
		return
	}
	s.items = orderedmap.New[string, Item]()
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// Contains reports whether id is saved.
func (s *Store) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, present := s.items.Get(id)
	return present
}

// Get returns the saved item for id.
func (s *Store) Get(id string) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items.Get(id)
}

// Items returns a copy of the saved items in insertion order.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Len returns the number of saved items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items.Len()
}

// Reload replaces the in-memory list with what the backend holds, for when
// another process changed it.
func (s *Store) Reload() {
	items := s.load()
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	s.notify()
}

// Subscribe registers fn to run after every change and returns a function
// that removes it.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.nextSub++
	id := s.nextSub
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for id := uint64(1); id <= s.nextSub; id++ {
		if fn, ok := s.subs[id]; ok {
			fns = append(fns, fn)
		}
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
