package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/cinetime/pkg/api"
	"tableflip.dev/cinetime/pkg/catalog"
	"tableflip.dev/cinetime/pkg/clock"
	"tableflip.dev/cinetime/pkg/mylist"
	"tableflip.dev/cinetime/pkg/reminder"
	"tableflip.dev/cinetime/pkg/store"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeCatalog struct {
	movies []api.Movie
	err    error
}

func (f *fakeCatalog) Movies(context.Context) ([]api.Movie, error) {
	return f.movies, f.err
}

func (f *fakeCatalog) Upcoming(context.Context) ([]api.Movie, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []api.Movie
	for _, m := range f.movies {
		if at, ok := m.Release(); ok && at.After(epoch) {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeRemote struct {
	calls []api.ReminderRequest
	err   error
}

func (f *fakeRemote) CreateReminder(_ context.Context, r api.ReminderRequest) error {
	f.calls = append(f.calls, r)
	return f.err
}

func newService(t *testing.T) (*Service, *fakeCatalog, *fakeRemote, store.Backend) {
	t.Helper()
	cat := &fakeCatalog{movies: []api.Movie{
		{ID: "1", Title: "Dune: Part Two", ReleaseAt: clock.FormatInstant(epoch.Add(5 * 24 * time.Hour)), Genres: []string{"sci-fi"}},
		{ID: "2", Title: "Future Release", ReleaseAt: clock.FormatInstant(epoch.Add(5 * time.Minute))},
		{ID: "3", Title: "Already Released", ReleaseAt: clock.FormatInstant(epoch.Add(-time.Hour))},
	}}
	remote := &fakeRemote{}
	backend := store.NewMemory()
	svc := New(backend, Options{Clock: clock.NewFake(epoch), Catalog: cat, Remote: remote})
	return svc, cat, remote, backend
}

func TestMovies(t *testing.T) {
	svc, _, _, _ := newService(t)
	ctx := context.Background()

	got, err := svc.Movies(ctx, MovieQuery{Search: " release "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}

	got, err = svc.Movies(ctx, MovieQuery{Upcoming: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 upcoming, got %d", len(got))
	}

	got, _ = svc.Movies(ctx, MovieQuery{Kind: catalog.KindGenre, Slug: "sci-fi"})
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("unexpected discover result %+v", got)
	}

	if _, err := (&Service{}).Movies(ctx, MovieQuery{}); !errors.Is(err, ErrNoCatalog) {
		t.Fatalf("expected ErrNoCatalog, got %v", err)
	}
}

func TestSaveIsIdempotent(t *testing.T) {
	svc, _, _, backend := newService(t)
	ctx := context.Background()

	item, added, err := svc.Save(ctx, "1")
	if err != nil || !added {
		t.Fatalf("expected first save to add, got %v %v", added, err)
	}
	if item.AddedAt != epoch.UnixMilli() {
		t.Fatalf("expected AddedAt stamped from the clock, got %d", item.AddedAt)
	}
	if _, added, _ := svc.Save(ctx, "1"); added {
		t.Fatal("second save must not add")
	}
	if svc.List.Len() != 1 {
		t.Fatalf("expected one saved item, got %d", svc.List.Len())
	}

	if _, _, err := svc.Save(ctx, "nope"); !errors.Is(err, ErrMovieNotFound) {
		t.Fatalf("expected ErrMovieNotFound, got %v", err)
	}

	reopened := New(backend, Options{Clock: clock.NewFake(epoch)})
	if !reopened.List.Contains("1") {
		t.Fatal("saved list did not survive reopen")
	}
	if !svc.Unsave("1") || svc.Unsave("1") {
		t.Fatal("unsave should remove exactly once")
	}
}

func TestSavedView(t *testing.T) {
	svc, _, _, _ := newService(t)
	ctx := context.Background()
	for _, id := range []string{"1", "3", "2"} {
		if _, _, err := svc.Save(ctx, id); err != nil {
			t.Fatal(err)
		}
	}
	upcoming := svc.Saved(mylist.View{Sort: mylist.ByRelease, Filter: mylist.Upcoming})
	if len(upcoming) != 2 || upcoming[0].ItemID != "2" || upcoming[1].ItemID != "1" {
		t.Fatalf("unexpected upcoming view %+v", upcoming)
	}
}

func TestMovieFallsBackToSavedList(t *testing.T) {
	svc, cat, _, _ := newService(t)
	ctx := context.Background()
	if _, _, err := svc.Save(ctx, "2"); err != nil {
		t.Fatal(err)
	}
	cat.err = errors.New("offline")

	m, err := svc.Movie(ctx, "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Title != "Future Release" {
		t.Fatalf("unexpected movie %+v", m)
	}
	if _, err := svc.Movie(ctx, "1"); err == nil || errors.Is(err, ErrMovieNotFound) {
		t.Fatalf("expected the catalog error, got %v", err)
	}
}

func TestRemind(t *testing.T) {
	svc, _, remote, _ := newService(t)
	ctx := context.Background()

	snap, err := svc.Remind(ctx, "1", "fan@example.com", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.State != reminder.Success || !svc.Reminded("1") {
		t.Fatalf("expected success, got %+v", snap)
	}

	// Confirmed: no second call, default contact reused.
	snap, err = svc.Remind(ctx, "1", "", false)
	if err != nil || snap.State != reminder.Success {
		t.Fatalf("expected settled success, got %+v %v", snap, err)
	}
	if len(remote.calls) != 1 {
		t.Fatalf("expected one remote call, got %d", len(remote.calls))
	}

	remote.err = api.ErrConflict
	snap, err = svc.Remind(ctx, "1", "", true)
	if err != nil || snap.State != reminder.Existing {
		t.Fatalf("expected existing after forced resubmit, got %+v %v", snap, err)
	}
	if len(remote.calls) != 2 || remote.calls[1].Email != "fan@example.com" {
		t.Fatalf("unexpected calls %+v", remote.calls)
	}
	if remote.calls[0].RemindAt != clock.FormatInstant(epoch.Add(5*24*time.Hour)) {
		t.Fatalf("unexpected remind_at %q", remote.calls[0].RemindAt)
	}
}

func TestWatchListUnsupported(t *testing.T) {
	svc, _, _, _ := newService(t)
	ok, err := svc.WatchList(context.Background())
	if ok || err != nil {
		t.Fatalf("memory backend cannot watch, got %v %v", ok, err)
	}
}

func TestWatchListReloads(t *testing.T) {
	dir := t.TempDir()
	backend, err := store.NewDiskv(dir)
	if err != nil {
		t.Fatal(err)
	}
	svc := New(backend, Options{Clock: clock.NewFake(epoch)})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ok, err := svc.WatchList(ctx)
	if !ok || err != nil {
		t.Fatalf("expected diskv to watch, got %v %v", ok, err)
	}
	changed := make(chan struct{}, 1)
	svc.List.Subscribe(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	other, err := store.NewDiskv(dir)
	if err != nil {
		t.Fatal(err)
	}
	writer := mylist.New(other, mylist.Options{Clock: clock.NewFake(epoch)})
	writer.Add(mylist.Item{ItemID: "9", Title: "From elsewhere"})

	waitFor := func(id string) {
		t.Helper()
		deadline := time.After(5 * time.Second)
		for !svc.List.Contains(id) {
			select {
			case <-changed:
			case <-deadline:
				t.Fatalf("saved list was not reloaded with %s, have %d items", id, svc.List.Len())
			}
		}
	}
	waitFor("9")

	writer.Add(mylist.Item{ItemID: "10", Title: "Also from elsewhere"})
	waitFor("10")
	if got := svc.List.Len(); got != 2 {
		t.Errorf("expected 2 saved items after two external writes, got %d", got)
	}
}
