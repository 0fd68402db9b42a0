package mockapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tableflip.dev/cinetime/pkg/api"
	"tableflip.dev/cinetime/pkg/clock"
	"tableflip.dev/cinetime/pkg/reminder"
	"tableflip.dev/cinetime/pkg/store"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*Server, *api.Client) {
	t.Helper()
	fake := clock.NewFake(epoch)
	srv := New(Seed(epoch), fake, nil)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return srv, api.New(ts.URL)
}

func TestMoviesAndUpcoming(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	all, err := client.Movies(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	require.Equal(t, "Dune: Part Two", all[0].Title)

	upcoming, err := client.Upcoming(ctx)
	require.NoError(t, err)
	for _, m := range upcoming {
		require.NotEqual(t, "3", m.ID, "released movie listed as upcoming")
	}
	require.Len(t, upcoming, 4)
}

func TestCreateReminderConflict(t *testing.T) {
	srv, client := newTestServer(t)
	ctx := context.Background()
	req := api.ReminderRequest{MovieID: "1", Email: "fan@example.com", RemindAt: "2026-03-06T12:00:00Z"}

	require.NoError(t, client.CreateReminder(ctx, req))
	require.ErrorIs(t, client.CreateReminder(ctx, req), api.ErrConflict)

	req.Email = "other@example.com"
	require.NoError(t, client.CreateReminder(ctx, req))

	got := srv.Reminders()
	require.Len(t, got, 2)
	require.NotEmpty(t, got[0].ID)
	require.NotEqual(t, got[0].ID, got[1].ID)
	require.Equal(t, epoch, got[0].CreatedAt)
}

func TestCreateReminderErrors(t *testing.T) {
	srv, client := newTestServer(t)
	ctx := context.Background()

	var se *api.StatusError
	err := client.CreateReminder(ctx, api.ReminderRequest{MovieID: "404", Email: "fan@example.com", RemindAt: "x"})
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusNotFound, se.Status)
	require.Equal(t, "Movie not found", se.Message)

	err = client.CreateReminder(ctx, api.ReminderRequest{MovieID: "1", Email: "nope", RemindAt: "x"})
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusBadRequest, se.Status)

	srv.FailNext(http.StatusServiceUnavailable, "")
	err = client.CreateReminder(ctx, api.ReminderRequest{MovieID: "1", Email: "fan@example.com", RemindAt: "x"})
	require.True(t, errors.As(err, &se))
	require.Equal(t, api.DefaultReminderError, se.Message)
	require.Empty(t, srv.Reminders())
}

func TestMalformedBody(t *testing.T) {
	srv := New(nil, nil, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reminders", strings.NewReader("{")))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `"error"`)
}

func TestMachineAgainstServer(t *testing.T) {
	srv, client := newTestServer(t)
	backend := store.NewMemory()
	deps := reminder.Deps{
		Remote:    client,
		Confirmed: reminder.NewConfirmedCache(backend, store.DefaultNamespace, nil),
		Contact:   reminder.NewContactCache(backend, store.DefaultNamespace, nil),
	}
	target := reminder.Target{MovieID: "2", RemindAt: Seed(epoch)[1].ReleaseAt}
	ctx := context.Background()

	srv.FailNext(http.StatusInternalServerError, "mailer down")
	m := reminder.NewMachine(target, deps)
	require.Error(t, m.Subscribe(ctx, "fan@example.com"))
	require.Equal(t, reminder.Error, m.State())
	require.Equal(t, "mailer down", m.Snapshot().Message)

	require.NoError(t, m.Subscribe(ctx, "fan@example.com"))
	require.Equal(t, reminder.Success, m.State())

	// A second device without the local cache learns it already exists.
	other := store.NewMemory()
	fresh := reminder.NewMachine(target, reminder.Deps{
		Remote:    client,
		Confirmed: reminder.NewConfirmedCache(other, store.DefaultNamespace, nil),
		Contact:   reminder.NewContactCache(other, store.DefaultNamespace, nil),
	})
	require.NoError(t, fresh.Subscribe(ctx, "fan@example.com"))
	require.Equal(t, reminder.Existing, fresh.State())

	// Remounting on the first device never calls the service.
	remounted := reminder.NewMachine(target, reminder.Deps{
		Confirmed: reminder.NewConfirmedCache(backend, store.DefaultNamespace, nil),
	})
	require.Equal(t, reminder.Existing, remounted.State())
	require.Len(t, srv.Reminders(), 1)
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	srv := New(Seed(epoch), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
