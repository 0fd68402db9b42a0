// Package store provides the durable key/value medium shared by the saved
// list and the reminder caches.
package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Backend.Get for keys that were never written or
// have been deleted.
var ErrNotFound = errors.New("store: key not found")

// Backend is the persistence contract. Values are opaque bytes; callers
// choose the encoding.
type Backend interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte) error
	Delete(key string) error
}

// Namespace prefixes keys so unrelated features cannot collide.
type Namespace string

// DefaultNamespace is used for every key this module writes.
const DefaultNamespace Namespace = "cinetime"

// Key returns the fully qualified key for name.
func (n Namespace) Key(name string) string {
	if n == "" {
		return name
	}
	return string(n) + "." + name
}

// Well known key names. Qualify them with a Namespace before use.
const (
	KeyMyList    = "my_list"
	KeyReminders = "reminders"
	KeyUserEmail = "user_email"
)

// Open returns the Backend selected by cfg.
func Open(cfg Config) (Backend, error) {
	if cfg == nil {
		return nil, errors.New("store: config required")
	}
	switch strings.ToLower(cfg.Driver()) {
	case "", DriverDiskv:
		return NewDiskv(cfg.BasePath())
	case DriverMemory:
		return NewMemory(), nil
	case DriverRedis:
		return NewRedis(cfg.RedisAddr())
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Driver())
	}
}
