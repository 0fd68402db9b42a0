package watch

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/cinetime/pkg/api"
	"tableflip.dev/cinetime/pkg/app"
	"tableflip.dev/cinetime/pkg/catalog"
	"tableflip.dev/cinetime/pkg/clock"
	"tableflip.dev/cinetime/pkg/mylist"
	"tableflip.dev/cinetime/pkg/query"
	"tableflip.dev/cinetime/pkg/reminder"
)

type tab int

const (
	tabCatalog tab = iota
	tabSaved
)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeRemind
)

// messages
type tickMsg struct{ now time.Time }
type queryMsg struct{ q string }
type listChangedMsg struct{}
type nextMsg struct{ left clock.RemainingTime }
type moviesMsg struct {
	movies []api.Movie
	err    error
}
type reminderMsg struct {
	snap reminder.Snapshot
	err  error
}

// busMsg carries a message from a background subscription into Update.
type busMsg struct{ inner tea.Msg }

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	tabOnStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	tabOffStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	urgentStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	releasedStyle = lipgloss.NewStyle().Faint(true)
	unknownStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("178"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

const helpText = "j/k move · tab switch · / search · s save · r remind · R refresh · q quit"

// Model is the live countdown view. Every displayed countdown is driven by
// one shared Ticker subscription.
type Model struct {
	svc    *app.Service
	ctx    context.Context
	ticker *clock.Ticker
	search *query.Broadcaster

	events    chan tea.Msg
	done      chan struct{}
	closeOnce sync.Once
	unsubs    []func()

	movies  []api.Movie
	query   string
	now     time.Time
	cursor  int
	tab     tab
	mode    mode
	input   textinput.Model
	email   textinput.Model
	status  string
	failed  bool
	loading bool

	next      *clock.Countdown
	nextTitle string
	nextLeft  clock.RemainingTime

	width int
}

// New creates the model. Subscriptions start in Init and end in Close.
func New(ctx context.Context, svc *app.Service, ticker *clock.Ticker, search *query.Broadcaster) *Model {
	in := textinput.New()
	in.Placeholder = "search titles"
	in.Prompt = "/ "
	in.CharLimit = 128

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = "email: "
	email.CharLimit = 254

	return &Model{
		svc:     svc,
		ctx:     ctx,
		ticker:  ticker,
		search:  search,
		events:  make(chan tea.Msg, 16),
		done:    make(chan struct{}),
		now:     ticker.Now(),
		input:   in,
		email:   email,
		status:  helpText,
		loading: true,
		width:   100,
	}
}

// Init subscribes to the ticker, the search box and the saved list, and
// loads the catalog.
func (m *Model) Init() tea.Cmd {
	m.unsubs = append(m.unsubs,
		m.ticker.Subscribe(func(now time.Time) { m.send(tickMsg{now: now}) }),
		m.search.Subscribe(func(q string) { m.send(queryMsg{q: q}) }),
		m.svc.List.Subscribe(func() { m.send(listChangedMsg{}) }),
	)
	return tea.Batch(m.loadMovies(), m.waitForEvent())
}

// Close stops every subscription. It is safe to call more than once.
func (m *Model) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
		for _, unsub := range m.unsubs {
			unsub()
		}
		m.unsubs = nil
		if m.next != nil {
			m.next.Stop()
		}
		m.search.Close()
	})
}

func (m *Model) send(msg tea.Msg) {
	select {
	case m.events <- msg:
	case <-m.done:
	}
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.events:
			return busMsg{inner: msg}
		case <-m.done:
			return nil
		}
	}
}

func (m *Model) loadMovies() tea.Cmd {
	return func() tea.Msg {
		movies, err := m.svc.Movies(m.ctx, app.MovieQuery{})
		return moviesMsg{movies: movies, err: err}
	}
}

// Update handles messages and keybindings.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case busMsg:
		_, cmd := m.Update(msg.inner)
		return m, tea.Batch(cmd, m.waitForEvent())
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tickMsg:
		m.now = msg.now
	case queryMsg:
		m.query = msg.q
		m.cursor = 0
	case listChangedMsg:
		m.clampCursor()
	case nextMsg:
		m.nextLeft = msg.left
	case moviesMsg:
		m.loading = false
		if msg.err != nil {
			m.setError("Unable to load movies: " + msg.err.Error())
			break
		}
		m.movies = msg.movies
		m.clampCursor()
		m.trackNext()
	case reminderMsg:
		if msg.err != nil {
			if msg.snap.State == reminder.Error && msg.snap.Message != "" {
				m.setError(msg.snap.Message)
			} else {
				m.setError(msg.err.Error())
			}
		} else if msg.snap.State == reminder.Existing {
			m.setStatus("Reminder was already set")
		} else {
			m.setStatus("Reminder set")
		}
	case tea.KeyPressMsg:
		switch m.mode {
		case modeSearch:
			cmds = append(cmds, m.updateSearch(msg))
		case modeRemind:
			cmds = append(cmds, m.updateRemind(msg))
		default:
			cmds = append(cmds, m.updateNormal(msg))
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) updateNormal(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		m.Close()
		return tea.Quit
	case "tab":
		if m.tab == tabCatalog {
			m.tab = tabSaved
		} else {
			m.tab = tabCatalog
		}
		m.cursor = 0
	case "j", "down":
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "/":
		m.mode = modeSearch
		return m.input.Focus()
	case "s":
		if r, ok := m.selected(); ok {
			if m.svc.List.Toggle(mylist.FromMovie(r.movie)) {
				m.setStatus("Saved " + r.movie.Title)
			} else {
				m.setStatus("Removed " + r.movie.Title)
			}
		}
	case "r":
		if r, ok := m.selected(); ok {
			machine := m.svc.Reminder(r.movie)
			if state := machine.State(); !state.CanSubmit() {
				if state.Terminal() {
					m.setStatus("Reminder already set for " + r.movie.Title)
				} else {
					m.setStatus("Reminder is being set for " + r.movie.Title + "…")
				}
				return nil
			}
			m.mode = modeRemind
			m.email.SetValue(machine.DefaultContact())
			m.email.CursorEnd()
			return m.email.Focus()
		}
	case "R":
		m.loading = true
		return m.loadMovies()
	}
	return nil
}

func (m *Model) updateSearch(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.mode = modeNormal
		m.input.Blur()
		m.search.Flush()
		return nil
	case "esc":
		m.mode = modeNormal
		m.input.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.search.Input(m.input.Value())
	return cmd
}

func (m *Model) updateRemind(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.email.Blur()
		m.setStatus("Reminder cancelled")
		return nil
	case "enter":
		r, ok := m.selected()
		if !ok {
			m.mode = modeNormal
			return nil
		}
		contact := strings.TrimSpace(m.email.Value())
		machine := m.svc.Reminder(r.movie)
		m.mode = modeNormal
		m.email.Blur()
		m.setStatus("Setting reminder for " + r.movie.Title + "…")
		ctx := m.ctx
		return func() tea.Msg {
			err := machine.Subscribe(ctx, contact)
			return reminderMsg{snap: machine.Snapshot(), err: err}
		}
	}
	var cmd tea.Cmd
	m.email, cmd = m.email.Update(msg)
	return cmd
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.failed = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.failed = true
}

// trackNext points the banner countdown at the soonest unreleased movie.
func (m *Model) trackNext() {
	if m.next != nil {
		m.next.Stop()
		m.next = nil
	}
	now := m.ticker.Now()
	var best api.Movie
	var bestAt time.Time
	for _, mv := range m.movies {
		at, ok := mv.Release()
		if !ok || !at.After(now) {
			continue
		}
		if bestAt.IsZero() || at.Before(bestAt) {
			best, bestAt = mv, at
		}
	}
	if bestAt.IsZero() {
		m.nextTitle = ""
		return
	}
	m.nextTitle = best.Title
	m.next = clock.NewCountdown(m.ticker, bestAt, func(left clock.RemainingTime) {
		m.send(nextMsg{left: left})
	})
	m.nextLeft = m.next.Remaining()
	m.next.Start()
}

type row struct {
	movie api.Movie
	saved bool
}

func (m *Model) rows() []row {
	var out []row
	switch m.tab {
	case tabSaved:
		for _, it := range m.svc.Saved(mylist.View{Sort: mylist.ByRelease, Filter: mylist.All}) {
			if catalog.MatchTitle(it.Title, m.query) {
				out = append(out, row{
					movie: api.Movie{ID: it.ItemID, Title: it.Title, PosterURL: it.ImageRef, ReleaseAt: it.TargetInstant},
					saved: true,
				})
			}
		}
	default:
		movies := catalog.Search(m.movies, m.query)
		catalog.SortByRelease(movies)
		for _, mv := range movies {
			out = append(out, row{movie: mv, saved: m.svc.List.Contains(mv.ID)})
		}
	}
	return out
}

func (m *Model) selected() (row, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return row{}, false
	}
	return rows[m.cursor], true
}

func (m *Model) clampCursor() {
	if n := len(m.rows()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

// View renders the header, the countdown table and the status line.
func (m *Model) View() string {
	var b strings.Builder

	tabs := []string{"Catalog", "My List"}
	for i, name := range tabs {
		if tab(i) == m.tab {
			tabs[i] = tabOnStyle.Render(name)
		} else {
			tabs[i] = tabOffStyle.Render(name)
		}
	}
	b.WriteString(titleStyle.Render("cinetime") + "  " + strings.Join(tabs, " | "))
	if m.nextTitle != "" {
		b.WriteString(fmt.Sprintf("   next: %s in %s", m.nextTitle, m.nextLeft))
	}
	b.WriteString("\n")

	switch {
	case m.mode == modeSearch:
		b.WriteString(m.input.View())
	case m.query != "":
		b.WriteString(statusStyle.Render("filter: " + m.query))
	}
	b.WriteString("\n\n")

	rows := m.rows()
	switch {
	case m.loading && len(rows) == 0:
		b.WriteString(statusStyle.Render("loading…") + "\n")
	case len(rows) == 0:
		b.WriteString(statusStyle.Render("no movies") + "\n")
	}
	titleWidth := max(m.width-40, 12)
	for i, r := range rows {
		line := fmt.Sprintf("%s %s %-*s  %s",
			savedMark(r.saved),
			m.reminderMark(r.movie),
			titleWidth,
			truncate.StringWithTail(r.movie.Title, uint(titleWidth), "…"),
			m.countdown(r.movie.ReleaseAt),
		)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	if m.mode == modeRemind {
		b.WriteString(m.email.View() + "\n")
	}
	if m.failed {
		b.WriteString(errorStyle.Render(m.status))
	} else {
		b.WriteString(statusStyle.Render(m.status))
	}
	return b.String()
}

func (m *Model) countdown(raw string) string {
	left := clock.ProjectString(m.now, raw)
	switch {
	case !left.Known:
		return unknownStyle.Render(left.String())
	case left.Released():
		return releasedStyle.Render("OUT NOW")
	case left.Urgent():
		return urgentStyle.Render(left.String())
	}
	return left.String()
}

func (m *Model) reminderMark(mv api.Movie) string {
	switch m.svc.ReminderState(mv.ID) {
	case reminder.Success, reminder.Existing:
		return "✉"
	case reminder.Loading:
		return "…"
	case reminder.Error:
		return "!"
	}
	return " "
}

func savedMark(saved bool) string {
	if saved {
		return "★"
	}
	return " "
}
