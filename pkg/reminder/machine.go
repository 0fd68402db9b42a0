package reminder

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"tableflip.dev/cinetime/pkg/api"
	"tableflip.dev/cinetime/pkg/logging"
)

//go:generate mockgen -destination=mocks/mock_remote.go -package=mocks tableflip.dev/cinetime/pkg/reminder Remote

// Remote is the reminder service. api.Client implements it.
type Remote interface {
	CreateReminder(ctx context.Context, r api.ReminderRequest) error
}

var (
	// ErrBusy is returned when a submission is already in flight.
	ErrBusy = errors.New("reminder: request already in progress")
	// ErrDone is returned when the reminder is already confirmed.
	ErrDone = errors.New("reminder: already set")
	// ErrInvalidContact is returned for a malformed contact address. The
	// machine state is left untouched.
	ErrInvalidContact = errors.New("reminder: please enter a valid email address")
)

var validate = validator.New()

// Target identifies what the reminder is for.
type Target struct {
	MovieID string
	// RemindAt is the release instant, passed through to the service.
	RemindAt string
}

// Snapshot is the observable state of a Machine.
type Snapshot struct {
	MovieID string
	State   State
	// Message is the human readable failure in the Error state.
	Message string
}

// Deps are the collaborators shared by every Machine.
type Deps struct {
	Remote    Remote
	Confirmed *ConfirmedCache
	Contact   *ContactCache
	Logger    *zap.SugaredLogger
}

// Machine is the reminder state machine for one movie. At most one remote
// request is in flight per Machine; machines for different movies are
// independent.
type Machine struct {
	target Target
	deps   Deps
	log    *zap.SugaredLogger

	mu       sync.Mutex
	state    State
	message  string
	onChange []func(Snapshot)
}

// NewMachine creates the machine for target. If the confirmed cache already
// lists the movie the machine starts in Existing without contacting the
// service.
func NewMachine(target Target, deps Deps) *Machine {
	m := &Machine{
		target: target,
		deps:   deps,
		log:    logging.OrNop(deps.Logger).With("movie_id", target.MovieID),
		state:  Idle,
	}
	if deps.Confirmed != nil && deps.Confirmed.Has(target.MovieID) {
		m.state = Existing
	}
	return m
}

// Snapshot returns the current state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// State is shorthand for Snapshot().State.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// OnChange registers fn to observe every transition.
func (m *Machine) OnChange(fn func(Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = append(m.onChange, fn)
}

// DefaultContact returns the last address used successfully, for pre-filling
// a prompt.
func (m *Machine) DefaultContact() string {
	return m.deps.Contact.Get()
}

// Subscribe asks the service to remind contact when the movie releases. It
// returns nil once the reminder is confirmed (Success or Existing) and the
// failure otherwise; the failure is also kept in the Error state message.
func (m *Machine) Subscribe(ctx context.Context, contact string) error {
	contact = strings.TrimSpace(contact)
	if err := validate.Var(contact, "required,email"); err != nil {
		return ErrInvalidContact
	}

	m.mu.Lock()
	switch {
	case m.state == Loading:
		m.mu.Unlock()
		return ErrBusy
	case m.state.Terminal():
		m.mu.Unlock()
		return ErrDone
	}
	if err := m.transitionLocked(Loading, ""); err != nil {
		m.mu.Unlock()
		return err
	}
	fns, snap := m.listenersLocked()
	m.mu.Unlock()
	emit(fns, snap)

	if m.deps.Remote == nil {
		return m.finish(Error, errors.New("reminder service not configured"))
	}
	err := m.deps.Remote.CreateReminder(ctx, api.ReminderRequest{
		MovieID:  m.target.MovieID,
		Email:    contact,
		RemindAt: m.target.RemindAt,
	})

	switch {
	case err == nil:
		m.confirm(contact)
		return m.finish(Success, nil)
	case errors.Is(err, api.ErrConflict):
		m.confirm(contact)
		return m.finish(Existing, nil)
	default:
		m.log.Infow("reminder: request failed", "error", err)
		return m.finish(Error, err)
	}
}

// Invalidate forgets a confirmed reminder locally so the user can submit
// again, for example after unsubscribing through an email link.
func (m *Machine) Invalidate() error {
	m.mu.Lock()
	if err := m.transitionLocked(Idle, ""); err != nil {
		m.mu.Unlock()
		return err
	}
	fns, snap := m.listenersLocked()
	m.mu.Unlock()

	if m.deps.Confirmed != nil {
		m.deps.Confirmed.Remove(m.target.MovieID)
	}
	emit(fns, snap)
	return nil
}

func (m *Machine) confirm(contact string) {
	if m.deps.Confirmed != nil {
		m.deps.Confirmed.Add(m.target.MovieID)
	}
	m.deps.Contact.Set(contact)
}

func (m *Machine) finish(next State, cause error) error {
	msg := ""
	if cause != nil {
		msg = Message(cause)
	}
	m.mu.Lock()
	if err := m.transitionLocked(next, msg); err != nil {
		m.mu.Unlock()
		return err
	}
	fns, snap := m.listenersLocked()
	m.mu.Unlock()
	emit(fns, snap)
	if cause != nil {
		return fmt.Errorf("reminder: %s", msg)
	}
	return nil
}

func (m *Machine) transitionLocked(next State, msg string) error {
	if !m.state.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.state, next)
	}
	m.state = next
	m.message = msg
	return nil
}

func (m *Machine) snapshotLocked() Snapshot {
	return Snapshot{MovieID: m.target.MovieID, State: m.state, Message: m.message}
}

func (m *Machine) listenersLocked() ([]func(Snapshot), Snapshot) {
	return slices.Clone(m.onChange), m.snapshotLocked()
}

func emit(fns []func(Snapshot), snap Snapshot) {
	for _, fn := range fns {
		fn(snap)
	}
}

// Message turns a remote failure into text fit for the user.
func Message(err error) string {
	var se *api.StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	if errors.Is(err, context.Canceled) {
		return "Request cancelled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "Request timed out"
	}
	if err == nil || err.Error() == "" {
		return api.DefaultReminderError
	}
	return err.Error()
}
