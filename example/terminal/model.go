package main

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"git.sr.ht/~gioverse/scroll/async"
	"git.sr.ht/~gioverse/scroll/list"
)

// frameInterval paces the processing of posted scroll positions.
const frameInterval = 16 * time.Millisecond

type keyMap struct {
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c")),
	Up:       key.NewBinding(key.WithKeys("up", "k")),
	Down:     key.NewBinding(key.WithKeys("down", "j")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "b")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", " ", "f")),
	Top:      key.NewBinding(key.WithKeys("home", "g")),
}

// fetchedMsg signals that a page result is ready to be applied.
type fetchedMsg struct{}

// frameMsg paces scroll processing.
type frameMsg struct{}

// model is the bubbletea model of the terminal list.
type model struct {
	ctx       context.Context
	cfg       list.Config
	source    list.PageSource
	scheduler async.Scheduler
	log       zerolog.Logger
	// send delivers messages to the running program from other goroutines.
	send func(tea.Msg)

	surface   surface
	ctrl      *list.ScrollController
	scrollTop int
	width     int
	height    int
	// dragging is set while the left button is held over a row.
	dragging bool
}

func newModel(cfg list.Config, src list.PageSource, logger zerolog.Logger) *model {
	return &model{
		ctx:     context.Background(),
		cfg:     cfg,
		source:  src,
		log:     logger,
		send:    func(tea.Msg) {},
		surface: surface{now: time.Now},
	}
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

func (m *model) Init() tea.Cmd {
	return tick()
}

// start creates the controller once the terminal size is known. The
// measurements depend on the width, so the list is not resized afterwards.
func (m *model) start() {
	m.surface.width = m.width
	m.ctrl = list.NewScrollController(m.cfg, list.Hooks{
		Surface:     &m.surface,
		Source:      m.source,
		Scheduler:   m.scheduler,
		Invalidator: func() { m.send(fetchedMsg{}) },
		Logger:      &m.log,
	})
	m.ctrl.Start(m.ctx, m.height)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.ctrl == nil {
			m.start()
		}
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			m.scroll(-1)
		case key.Matches(msg, keys.Down):
			m.scroll(1)
		case key.Matches(msg, keys.PageUp):
			m.scroll(-m.height)
		case key.Matches(msg, keys.PageDown):
			m.scroll(m.height)
		case key.Matches(msg, keys.Top):
			m.scroll(-m.scrollTop)
		}
	case tea.MouseMsg:
		m.mouse(msg)
	case fetchedMsg:
		if m.ctrl != nil {
			m.ctrl.Update()
			m.clamp()
		}
	case frameMsg:
		if m.ctrl != nil {
			m.ctrl.Frame(m.ctx)
		}
		return m, tick()
	}
	return m, nil
}

func (m *model) scroll(delta int) {
	if m.ctrl == nil || delta == 0 {
		return
	}
	m.scrollTop += delta
	m.clamp()
	m.ctrl.Post(list.Viewport{ScrollTop: m.scrollTop, Height: m.height})
}

func (m *model) clamp() {
	if max := m.ctrl.ContentHeight() - m.height; m.scrollTop > max {
		m.scrollTop = max
	}
	if m.scrollTop < 0 {
		m.scrollTop = 0
	}
}

// mouse scrolls with the wheel and swipes rows with left button drags.
func (m *model) mouse(msg tea.MouseMsg) {
	if m.ctrl == nil {
		return
	}
	sc := m.ctrl.Swipe()
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scroll(-3)
	case msg.Button == tea.MouseButtonWheelDown:
		m.scroll(3)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.dragging = sc.StartAt(float32(msg.X), msg.Y+m.scrollTop)
	case msg.Action == tea.MouseActionMotion && m.dragging:
		if sc.Move(float32(msg.X)) != list.Dragging {
			m.dragging = false
		}
	case msg.Action == tea.MouseActionRelease && m.dragging:
		sc.End(float32(msg.X))
		m.dragging = false
	}
}

// View renders the rows and placeholders intersecting the viewport.
func (m *model) View() string {
	if m.ctrl == nil || m.height == 0 {
		return "Loading..."
	}
	lines := make([]string, m.height)
	paint := func(top int, rendered []string) {
		for i, l := range rendered {
			if y := top - m.scrollTop + i; y >= 0 && y < m.height {
				lines[y] = l
			}
		}
	}
	for _, p := range m.surface.placeholders {
		if p.opacity > 0 && p.offset.Y+placeholderLines > m.scrollTop && p.offset.Y < m.scrollTop+m.height {
			paint(p.offset.Y, m.surface.renderPlaceholder())
		}
	}
	m.ctrl.Window().Each(func(pos int, s list.Slot) {
		r, ok := s.Element.(*row)
		if !ok || r.opacity <= 0 || s.Bottom() <= m.scrollTop || s.Top >= m.scrollTop+m.height {
			return
		}
		paint(r.offset.Y, m.surface.renderRow(r))
	})
	return strings.Join(lines, "\n")
}
