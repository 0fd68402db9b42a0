package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"tableflip.dev/cinetime/pkg/api"
	"tableflip.dev/cinetime/pkg/catalog"
	"tableflip.dev/cinetime/pkg/clock"
	"tableflip.dev/cinetime/pkg/config"
	"tableflip.dev/cinetime/pkg/logging"
	"tableflip.dev/cinetime/pkg/mylist"
	"tableflip.dev/cinetime/pkg/reminder"
	"tableflip.dev/cinetime/pkg/store"
)

// Catalog is the read side of the remote service. api.Client implements it.
type Catalog interface {
	Movies(ctx context.Context) ([]api.Movie, error)
	Upcoming(ctx context.Context) ([]api.Movie, error)
}

var (
	ErrMovieNotFound = errors.New("app: movie not found")
	ErrNoCatalog     = errors.New("app: no catalog configured")
)

// Service wires the saved list, the reminder machines and the catalog so the
// CLI and the live view share one set of state.
type Service struct {
	Clock     clock.Clock
	Catalog   Catalog
	List      *mylist.Store
	Reminders *reminder.Registry
	Backend   store.Backend
	Log       *zap.SugaredLogger

	ns store.Namespace
}

// Options configures New. Zero values pick defaults.
type Options struct {
	Namespace store.Namespace
	Clock     clock.Clock
	Logger    *zap.SugaredLogger
	Catalog   Catalog
	Remote    reminder.Remote
}

// New builds a Service over backend.
func New(backend store.Backend, opts Options) *Service {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.Namespace == "" {
		opts.Namespace = store.DefaultNamespace
	}
	log := logging.OrNop(opts.Logger)
	return &Service{
		Clock:   opts.Clock,
		Catalog: opts.Catalog,
		List: mylist.New(backend, mylist.Options{
			Namespace: opts.Namespace,
			Clock:     opts.Clock,
			Logger:    log,
		}),
		Reminders: reminder.NewRegistry(reminder.Deps{
			Remote:    opts.Remote,
			Confirmed: reminder.NewConfirmedCache(backend, opts.Namespace, log),
			Contact:   reminder.NewContactCache(backend, opts.Namespace, log),
			Logger:    log,
		}),
		Backend: backend,
		Log:     log,
		ns:      opts.Namespace,
	}
}

// Open builds a Service from settings, talking to the service at
// settings.APIURL.
func Open(settings *config.Settings, log *zap.SugaredLogger) (*Service, error) {
	backend, err := store.Open(settings)
	if err != nil {
		return nil, err
	}
	client := api.New(settings.APIURL)
	return New(backend, Options{Logger: log, Catalog: client, Remote: client}), nil
}

// Close releases the backend.
func (s *Service) Close() error {
	if c, ok := s.Backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// MovieQuery selects movies from the catalog.
type MovieQuery struct {
	Upcoming bool
	Search   string
	Kind     catalog.Kind
	Slug     string
}

// Movies fetches the catalog and applies q.
func (s *Service) Movies(ctx context.Context, q MovieQuery) ([]api.Movie, error) {
	if s.Catalog == nil {
		return nil, ErrNoCatalog
	}
	fetch := s.Catalog.Movies
	if q.Upcoming {
		fetch = s.Catalog.Upcoming
	}
	movies, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	movies = catalog.Discover(movies, q.Kind, q.Slug)
	return catalog.Search(movies, q.Search), nil
}

// Movie finds a movie by id in the catalog, falling back to the saved list
// when the catalog is unreachable.
func (s *Service) Movie(ctx context.Context, id string) (api.Movie, error) {
	id = strings.TrimSpace(id)
	var fetchErr error
	if s.Catalog != nil {
		movies, err := s.Catalog.Movies(ctx)
		if err == nil {
			for _, m := range movies {
				if m.ID == id {
					return m, nil
				}
			}
		}
		fetchErr = err
	}
	if it, ok := s.List.Get(id); ok {
		return api.Movie{ID: it.ItemID, Title: it.Title, PosterURL: it.ImageRef, ReleaseAt: it.TargetInstant}, nil
	}
	if fetchErr != nil {
		return api.Movie{}, fmt.Errorf("app: looking up %q: %w", id, fetchErr)
	}
	return api.Movie{}, fmt.Errorf("%w: %q", ErrMovieNotFound, id)
}

// Save adds the movie to the saved list. added is false when it was already
// there.
func (s *Service) Save(ctx context.Context, id string) (item mylist.Item, added bool, err error) {
	m, err := s.Movie(ctx, id)
	if err != nil {
		return mylist.Item{}, false, err
	}
	added = s.List.Add(mylist.FromMovie(m))
	item, _ = s.List.Get(m.ID)
	return item, added, nil
}

// Unsave removes id from the saved list.
func (s *Service) Unsave(id string) bool {
	return s.List.Remove(strings.TrimSpace(id))
}

// Saved returns the saved list through view.
func (s *Service) Saved(view mylist.View) []mylist.Item {
	return view.Apply(s.List.Items(), s.Clock.Now())
}

// Reminder returns the shared state machine for m.
func (s *Service) Reminder(m api.Movie) *reminder.Machine {
	return s.Reminders.Machine(reminder.Target{MovieID: m.ID, RemindAt: m.ReleaseAt})
}

// Remind subscribes contact to the release of movie id. With force, a
// locally confirmed reminder is forgotten and submitted again.
func (s *Service) Remind(ctx context.Context, id, contact string, force bool) (reminder.Snapshot, error) {
	m, err := s.Movie(ctx, id)
	if err != nil {
		return reminder.Snapshot{}, err
	}
	machine := s.Reminder(m)
	if force && machine.State().Terminal() {
		if err := machine.Invalidate(); err != nil {
			return machine.Snapshot(), err
		}
	}
	if strings.TrimSpace(contact) == "" {
		contact = machine.DefaultContact()
	}
	err = machine.Subscribe(ctx, contact)
	if errors.Is(err, reminder.ErrDone) {
		err = nil
	}
	return machine.Snapshot(), err
}

// ReminderState reports the reminder state for id without creating a
// machine. Movies never acted on are Idle, or Existing when cached.
func (s *Service) ReminderState(id string) reminder.State {
	if m, ok := s.Reminders.Lookup(id); ok {
		return m.State()
	}
	if s.Reminded(id) {
		return reminder.Existing
	}
	return reminder.Idle
}

// Reminded reports whether the reminder for id is known to be set.
func (s *Service) Reminded(id string) bool {
	return s.Reminders.Confirmed().Has(id)
}

// WatchList reloads the saved list whenever another process rewrites it.
// It reports false when the backend cannot watch. Watching stops with ctx.
func (s *Service) WatchList(ctx context.Context) (bool, error) {
	w, ok := s.Backend.(store.Watcher)
	if !ok {
		return false, nil
	}
	events, err := w.Watch(ctx)
	if err != nil {
		return false, err
	}
	key := s.ns.Key(store.KeyMyList)
	go func() {
		for ev := range events {
			if ev.Key == key {
				s.Log.Debugw("app: saved list changed on disk, reloading")
				s.List.Reload()
			}
		}
	}()
	return true, nil
}
