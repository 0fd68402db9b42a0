package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMoviesDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/movies/upcoming", r.URL.Path)
		_, _ = io.WriteString(w, `{"meta":{"success":true},"data":[
			{"id":"m1","title":"Dune: Part Two","poster_url":"p.jpg","release_at":"2026-03-06T00:00:00Z","platforms":["netflix"],"category":"movies"}
		]}`)
	}))
	defer srv.Close()

	movies, err := New(srv.URL + "/").Upcoming(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 1)
	require.Equal(t, "m1", movies[0].ID)
	require.Equal(t, CategoryMovies, movies[0].Category)
	require.Equal(t, []string{"netflix"}, movies[0].Platforms)

	release, ok := movies[0].Release()
	require.True(t, ok)
	require.Equal(t, 6, release.Day())
}

func TestMoviesUnsuccessfulMeta(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"meta":{"success":false,"error":"catalog offline"},"data":null}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Movies(context.Background())
	require.ErrorContains(t, err, "catalog offline")
}

func TestMoviesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Movies(context.Background())
	var se *StatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusBadGateway, se.Status)
}

func TestCreateReminderStatuses(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{name: "created", status: http.StatusCreated},
		{name: "ok", status: http.StatusOK},
		{name: "conflict", status: http.StatusConflict, body: `{"error":"duplicate"}`, wantErr: ErrConflict},
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"mailer down"}`, wantMsg: "mailer down"},
		{name: "no body", status: http.StatusBadRequest, wantMsg: DefaultReminderError},
		{name: "garbage body", status: http.StatusBadRequest, body: `<html>`, wantMsg: DefaultReminderError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got ReminderRequest
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/reminders", r.URL.Path)
				require.Equal(t, "application/json", r.Header.Get("Content-Type"))
				require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))
			defer srv.Close()

			req := ReminderRequest{MovieID: "m1", Email: "me@example.com", RemindAt: "2026-03-06T00:00:00Z"}
			err := New(srv.URL).CreateReminder(context.Background(), req)
			require.Equal(t, req, got)

			switch {
			case tc.wantErr != nil:
				require.ErrorIs(t, err, tc.wantErr)
			case tc.wantMsg != "":
				var se *StatusError
				require.True(t, errors.As(err, &se))
				require.Equal(t, tc.status, se.Status)
				require.Equal(t, tc.wantMsg, se.Error())
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestCreateReminderNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := New(url).CreateReminder(context.Background(), ReminderRequest{MovieID: "m1"})
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrConflict))
}
