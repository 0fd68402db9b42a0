// Package mockapi is an in-memory stand-in for the catalog and reminder
// service, for local development and tests.
package mockapi

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"tableflip.dev/cinetime/pkg/api"
	"tableflip.dev/cinetime/pkg/clock"
	"tableflip.dev/cinetime/pkg/logging"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var validate = validator.New()

// Reminder is one accepted POST /reminders.
type Reminder struct {
	ID        string
	MovieID   string
	Email     string
	RemindAt  string
	CreatedAt time.Time
}

type failure struct {
	status  int
	message string
}

// Server serves GET /movies, GET /movies/upcoming and POST /reminders.
type Server struct {
	clock  clock.Clock
	log    *zap.SugaredLogger
	router chi.Router

	mu        sync.Mutex
	movies    []api.Movie
	reminders []Reminder
	byKey     map[string]int
	failures  []failure
}

// New returns a Server over movies. A nil clock uses real time.
func New(movies []api.Movie, c clock.Clock, log *zap.SugaredLogger) *Server {
	if c == nil {
		c = clock.Real()
	}
	s := &Server{
		clock:  c,
		log:    logging.OrNop(log),
		movies: append([]api.Movie(nil), movies...),
		byKey:  make(map[string]int),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/movies", s.handleMovies)
	r.Get("/movies/upcoming", s.handleUpcoming)
	r.Post("/reminders", s.handleCreateReminder)

	s.router = r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Infow("mock api listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Reminders returns the accepted reminders in arrival order.
func (s *Server) Reminders() []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Reminder(nil), s.reminders...)
}

// FailNext makes the next POST /reminders answer status with message.
// Calls queue up.
func (s *Server) FailNext(status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{status: status, message: message})
}

func (s *Server) handleMovies(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	movies := append([]api.Movie{}, s.movies...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, api.Envelope[[]api.Movie]{Meta: api.Meta{Success: true}, Data: movies})
}

func (s *Server) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	now := s.clock.Now()
	s.mu.Lock()
	movies := []api.Movie{}
	for _, m := range s.movies {
		if at, ok := m.Release(); ok && at.After(now) {
			movies = append(movies, m)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, api.Envelope[[]api.Movie]{Meta: api.Meta{Success: true}, Data: movies})
}

func (s *Server) handleCreateReminder(w http.ResponseWriter, r *http.Request) {
	var req api.ReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "movie_id, a valid email and remind_at are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.failures) > 0 {
		f := s.failures[0]
		s.failures = s.failures[1:]
		writeError(w, f.status, f.message)
		return
	}
	if !s.knownLocked(req.MovieID) {
		writeError(w, http.StatusNotFound, "Movie not found")
		return
	}
	key := req.MovieID + "\x00" + req.Email
	if _, ok := s.byKey[key]; ok {
		writeError(w, http.StatusConflict, "Reminder already set")
		return
	}
	rem := Reminder{
		ID:        uuid.NewString(),
		MovieID:   req.MovieID,
		Email:     req.Email,
		RemindAt:  req.RemindAt,
		CreatedAt: s.clock.Now(),
	}
	s.byKey[key] = len(s.reminders)
	s.reminders = append(s.reminders, rem)
	s.log.Infow("reminder created", "id", rem.ID, "movie_id", rem.MovieID)

	writeJSON(w, http.StatusCreated, map[string]string{"id": rem.ID})
}

func (s *Server) knownLocked(id string) bool {
	for _, m := range s.movies {
		if m.ID == id {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, api.ErrorBody{Error: msg})
}
