// Package tui implements the Bubble Tea terminal user interface for
// interactive sample review.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tessellate-ai/samplerev/internal/model"
	"github.com/tessellate-ai/samplerev/internal/review"
)

const toastDuration = 3 * time.Second

// SampleSource fetches sample details for the detail pane.
type SampleSource interface {
	GetSample(ctx context.Context, id string) (*model.Sample, error)
}

// toast is one transient status line message.
type toast struct {
	text  string
	isErr bool
}

// Messages.
type (
	sampleLoadedMsg struct {
		id     review.ItemID
		sample *model.Sample
		err    error
	}
	toastMsg      toast
	clearToastMsg struct{ seq int }
)

// chanNotifier bridges session notifications into the Bubble Tea
// message loop. Safe for concurrent use; overflow drops the oldest
// pending behavior by dropping the new message instead of blocking a
// remote-call goroutine.
type chanNotifier struct {
	ch chan toastMsg
}

func (n *chanNotifier) Notify(msg string) {
	select {
	case n.ch <- toastMsg{text: msg}:
	default:
	}
}

func (n *chanNotifier) NotifyError(msg string) {
	select {
	case n.ch <- toastMsg{text: msg, isErr: true}:
	default:
	}
}

// Model is the top-level Bubble Tea model for a review session.
type Model struct {
	session    *review.Session
	dispatcher *review.Dispatcher
	source     SampleSource
	dataset    model.Dataset
	ctx        context.Context

	// Fetched sample details, keyed by item. Shared across model
	// copies; only Update mutates it.
	samples map[review.ItemID]*model.Sample

	search textinput.Model
	spin   spinner.Model

	toastCh  chan toastMsg
	toast    *toast
	toastSeq int

	width    int
	height   int
	showHelp bool
	quitting bool
}

// New builds a review TUI over the dataset's item list. The session
// owns cursor and log; the dispatcher routes review shortcuts to it.
func New(ctx context.Context, dataset model.Dataset, items []review.ItemID, remote review.Remote, source SampleSource) (Model, error) {
	toastCh := make(chan toastMsg, 16)

	session, err := review.NewSession(ctx, items, remote, &chanNotifier{ch: toastCh})
	if err != nil {
		return Model{}, err
	}

	dispatcher := review.NewDispatcher()
	dispatcher.Attach(review.Handlers{
		Prev:   func() { session.Prev() },
		Next:   func() { session.Next() },
		Keep:   func() { _ = session.Decide(review.DecisionKeep) },
		Remove: func() { _ = session.Decide(review.DecisionRemove) },
		Skip:   func() { _ = session.Decide(review.DecisionSkip) },
		Undo:   func() { session.Undo() },
	})

	search := textinput.New()
	search.Placeholder = "file name or id"
	search.Prompt = "/"
	search.CharLimit = 128

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		session:    session,
		dispatcher: dispatcher,
		source:     source,
		dataset:    dataset,
		ctx:        ctx,
		samples:    make(map[review.ItemID]*model.Sample),
		search:     search,
		spin:       spin,
		toastCh:    toastCh,
	}, nil
}

// Session exposes the underlying review session for summaries.
func (m Model) Session() *review.Session { return m.session }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.loadCurrent(), m.waitToast())
}

// waitToast delivers the next session notification as a message and
// re-arms itself from Update.
func (m Model) waitToast() tea.Cmd {
	ch := m.toastCh
	return func() tea.Msg {
		return <-ch
	}
}

// loadCurrent fetches the detail of the item under the cursor unless
// it is already cached.
func (m Model) loadCurrent() tea.Cmd {
	id, err := m.session.Current()
	if err != nil {
		return nil
	}
	if _, ok := m.samples[id]; ok {
		return nil
	}
	source, ctx := m.source, m.ctx
	return func() tea.Msg {
		s, err := source.GetSample(ctx, string(id))
		return sampleLoadedMsg{id: id, sample: s, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case sampleLoadedMsg:
		if msg.err != nil {
			return m.showToast(toast{text: "loading " + string(msg.id) + ": " + msg.err.Error(), isErr: true}, nil)
		}
		m.samples[msg.id] = msg.sample
		return m, nil

	case toastMsg:
		return m.showToast(toast(msg), m.waitToast())

	case clearToastMsg:
		if msg.seq == m.toastSeq {
			m.toast = nil
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

// showToast replaces the visible toast and schedules its expiry.
func (m Model) showToast(t toast, extra tea.Cmd) (tea.Model, tea.Cmd) {
	m.toast = &t
	m.toastSeq++
	seq := m.toastSeq
	expire := tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return clearToastMsg{seq: seq}
	})
	if extra != nil {
		return m, tea.Batch(extra, expire)
	}
	return m, expire
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Review shortcuts go through the dispatcher first; it suppresses
	// itself while the search input is focused or help is open.
	if m.dispatcher.Dispatch(keyEventFrom(msg, m.search.Focused())) {
		return m, m.loadCurrent()
	}

	if m.search.Focused() {
		switch msg.String() {
		case "enter":
			query := m.search.Value()
			m.search.Blur()
			m.search.SetValue("")
			return m.jumpToMatch(query)
		case "esc":
			m.search.Blur()
			m.search.SetValue("")
			return m, nil
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		m.dispatcher.Detach()
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		m.dispatcher.SetEnabled(!m.showHelp)
		return m, nil

	case key.Matches(msg, keys.Search):
		if m.showHelp {
			return m, nil
		}
		m.search.Focus()
		return m, textinput.Blink
	}

	return m, nil
}

// jumpToMatch moves the cursor to the first item whose ID or loaded
// file name contains the query.
func (m Model) jumpToMatch(query string) (tea.Model, tea.Cmd) {
	if query == "" {
		return m, nil
	}
	idx := m.findMatch(query)
	if idx < 0 {
		return m.showToast(toast{text: "no match for " + query}, nil)
	}
	if err := m.session.JumpTo(idx); err != nil {
		return m.showToast(toast{text: err.Error(), isErr: true}, nil)
	}
	return m, m.loadCurrent()
}

// Run starts the review TUI and returns the completed session. start
// is the initial cursor position; an out-of-range start is ignored and
// the session begins at 0.
func Run(ctx context.Context, dataset model.Dataset, items []review.ItemID, start int, remote review.Remote, source SampleSource) (*review.Session, error) {
	m, err := New(ctx, dataset, items, remote, source)
	if err != nil {
		return nil, err
	}
	if start != 0 {
		// Recoverable by design: a stale bookmark just starts over.
		_ = m.session.JumpTo(start)
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	fm := final.(Model)
	return fm.session, nil
}
