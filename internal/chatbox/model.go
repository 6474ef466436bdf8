package chatbox

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nanami9426/officerchat/internal/models"
	"github.com/nanami9426/officerchat/internal/push"
)

var (
	appStyle      = lipgloss.NewStyle().Padding(0, 1)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5A5A5A"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
	headerStyle   = lipgloss.NewStyle().Bold(true)
	timeStyle     = lipgloss.NewStyle().Faint(true)
	hoverStyle    = lipgloss.NewStyle().Faint(true).PaddingLeft(2)
	ownStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#1E3A8A")).Padding(0, 1)
	otherStyle    = lipgloss.NewStyle().Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("#7D56F4"))
	inputStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
	launcherStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#1E3A8A")).Padding(0, 2)
	badgeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#EF4444")).Padding(0, 1)
)

// API is what the widget needs from the server.
type API interface {
	ActiveOfficer(ctx context.Context) (*models.Unit, error)
	ListMessages(ctx context.Context) ([]*models.OfficerChatView, error)
	CreateMessage(ctx context.Context, text string) (*models.OfficerChatView, error)
	DeleteMessage(ctx context.Context, id int64) (bool, error)
}

type keyMap struct {
	Submit   key.Binding
	Focus    key.Binding
	Up       key.Binding
	Down     key.Binding
	Delete   key.Binding
	Minimize key.Binding
	Quit     key.Binding
}

// ctrl+enter reaches the program as ctrl+j in most terminals
var keys = keyMap{
	Submit:   key.NewBinding(key.WithKeys("ctrl+j", "ctrl+s"), key.WithHelp("ctrl+enter", "send")),
	Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "messages/input")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "prev")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "next")),
	Delete:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete own")),
	Minimize: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "minimize")),
	Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

type (
	viewerMsg struct {
		unit *models.Unit
		err  error
	}
	historyMsg struct {
		list []*models.OfficerChatView
		err  error
	}
	createdMsg struct {
		view *models.OfficerChatView
		err  error
	}
	deletedMsg struct {
		id  int64
		ok  bool
		err error
	}
	eventMsg    struct{ event *push.Event }
	pollTickMsg struct{}
)

type Options struct {
	Templates    CallsignTemplates
	PollInterval time.Duration
}

type Model struct {
	ctx    context.Context
	api    API
	events <-chan *push.Event
	opts   Options

	state     State
	textarea  textarea.Model
	viewport  viewport.Model
	listFocus bool
	selected  int
	sending   bool
	status    string
	width     int
	ready     bool
}

// New builds the widget. Commands started by the model stop once ctx is done.
func New(ctx context.Context, api API, events <-chan *push.Event, opts Options) Model {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 5 * time.Second
	}
	if opts.Templates == (CallsignTemplates{}) {
		opts.Templates = DefaultCallsignTemplates()
	}

	ta := textarea.New()
	ta.Placeholder = "Message"
	ta.Prompt = "│ "
	ta.ShowLineNumbers = false
	ta.CharLimit = 1000
	ta.SetHeight(3)
	ta.Focus()

	return Model{
		ctx:      ctx,
		api:      api,
		events:   events,
		opts:     opts,
		textarea: ta,
		viewport: viewport.New(60, 15),
		selected: -1,
	}
}

func (m Model) State() State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.fetchViewer(), m.waitForEvent())
}

func (m Model) fetchViewer() tea.Cmd {
	return func() tea.Msg {
		u, err := m.api.ActiveOfficer(m.ctx)
		if m.ctx.Err() != nil {
			return nil
		}
		return viewerMsg{unit: u, err: err}
	}
}

func (m Model) loadHistory() tea.Cmd {
	return func() tea.Msg {
		list, err := m.api.ListMessages(m.ctx)
		if m.ctx.Err() != nil {
			return nil
		}
		return historyMsg{list: list, err: err}
	}
}

func (m Model) submit(text string) tea.Cmd {
	return func() tea.Msg {
		view, err := m.api.CreateMessage(m.ctx, text)
		if m.ctx.Err() != nil {
			return nil
		}
		return createdMsg{view: view, err: err}
	}
}

func (m Model) remove(id int64) tea.Cmd {
	return func() tea.Msg {
		ok, err := m.api.DeleteMessage(m.ctx, id)
		if m.ctx.Err() != nil {
			return nil
		}
		return deletedMsg{id: id, ok: ok, err: err}
	}
}

func (m Model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e, ok := <-m.events:
			if !ok {
				return nil
			}
			return eventMsg{event: e}
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m Model) schedulePoll() tea.Cmd {
	return tea.Tick(m.opts.PollInterval, func(time.Time) tea.Msg {
		return pollTickMsg{}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = max(msg.Height-10, 3)
		m.textarea.SetWidth(msg.Width - 6)
		m.ready = true
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case viewerMsg:
		if msg.err != nil {
			m.status = "duty state: " + msg.err.Error()
			return m, m.schedulePoll()
		}
		cmds := []tea.Cmd{m.schedulePoll()}
		if m.state.SetViewer(msg.unit) {
			m.state.Loading = true
			cmds = append(cmds, m.loadHistory())
		}
		m.refresh()
		return m, tea.Batch(cmds...)

	case pollTickMsg:
		return m, m.fetchViewer()

	case historyMsg:
		m.state.Loading = false
		if msg.err != nil {
			m.status = "load failed: " + msg.err.Error()
			return m, nil
		}
		m.state.ReplaceMessages(msg.list)
		m.status = ""
		m.refresh()
		return m, nil

	case createdMsg:
		m.sending = false
		if msg.err != nil {
			m.status = "send failed: " + msg.err.Error()
			return m, nil
		}
		m.textarea.Reset()
		m.status = ""
		if m.state.ApplyCreated(msg.view) {
			m.refresh()
		}
		return m, nil

	case deletedMsg:
		if msg.err != nil {
			m.status = "delete failed: " + msg.err.Error()
			return m, nil
		}
		if msg.ok && m.state.RemoveLocal(msg.id) {
			m.refresh()
		}
		return m, nil

	case eventMsg:
		changed, err := m.state.ApplyEvent(msg.event)
		if err != nil {
			m.status = err.Error()
		}
		if changed {
			m.refresh()
		}
		return m, m.waitForEvent()
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return m, tea.Quit
	}
	if !m.state.Eligible() {
		return m, nil
	}
	if key.Matches(msg, keys.Minimize) {
		m.state.Minimized = !m.state.Minimized
		if !m.state.Minimized {
			m.refresh()
		}
		return m, nil
	}
	if m.state.Minimized {
		return m, nil
	}
	if key.Matches(msg, keys.Focus) {
		m.listFocus = !m.listFocus
		if m.listFocus {
			m.textarea.Blur()
			m.selected = len(m.state.Messages) - 1
		} else {
			m.selected = -1
			m.textarea.Focus()
		}
		m.refresh()
		return m, nil
	}

	if m.listFocus {
		switch {
		case key.Matches(msg, keys.Up):
			if m.selected > 0 {
				m.selected--
			}
			m.refresh()
		case key.Matches(msg, keys.Down):
			if m.selected < len(m.state.Messages)-1 {
				m.selected++
			}
			m.refresh()
		case key.Matches(msg, keys.Delete):
			if m.selected >= 0 && m.selected < len(m.state.Messages) {
				target := m.state.Messages[m.selected]
				if m.state.IsOwn(target) {
					return m, m.remove(target.ID)
				}
				m.status = "canOnlyDeleteOwnMessages"
			}
		}
		return m, nil
	}

	if key.Matches(msg, keys.Submit) {
		text := m.textarea.Value()
		if m.sending || strings.TrimSpace(text) == "" {
			return m, nil
		}
		m.sending = true
		return m, m.submit(text)
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// refresh re-renders the message list and scrolls to the newest message, or
// keeps the selection visible while browsing.
func (m *Model) refresh() {
	if m.selected >= len(m.state.Messages) {
		m.selected = len(m.state.Messages) - 1
	}
	m.viewport.SetContent(m.renderMessages())
	if !m.listFocus {
		m.viewport.GotoBottom()
	}
}

func (m Model) renderMessages() string {
	if m.state.Loading {
		return statusStyle.Render("Loading...")
	}
	if len(m.state.Messages) == 0 {
		return statusStyle.Render("No messages")
	}
	width := max(m.viewport.Width-2, 20)
	var b strings.Builder
	for i, msg := range m.state.Messages {
		d, ok := Describe(msg, m.state.Viewer, m.opts.Templates)
		if !ok {
			continue
		}
		header := headerStyle.Render(d.Header()) + " " + timeStyle.Render(d.Time.Local().Format("15:04:05"))
		body := lipgloss.NewStyle().Width(width).Render(d.Text)
		style := otherStyle
		if d.Own {
			style = ownStyle
		}
		block := style.Render(header + "\n" + body)
		if i == m.selected {
			block = selectedStyle.Render(block)
			if lines := d.HoverLines(); len(lines) > 0 {
				block += "\n" + hoverStyle.Render(strings.Join(lines, "\n"))
			}
		}
		b.WriteString(block)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) View() string {
	if !m.state.Eligible() {
		return ""
	}
	if m.state.Minimized {
		launcher := launcherStyle.Render("Officer Chat")
		if badge := m.state.Badge(); badge != "" {
			launcher += badgeStyle.Render(badge)
		}
		return launcher
	}

	help := "ctrl+enter send • tab messages • esc minimize • ctrl+c quit"
	if m.listFocus {
		help = "↑/↓ select • d delete own • tab input • esc minimize"
	}
	status := statusStyle.Render(help)
	if m.status != "" {
		status = errorStyle.Render(m.status)
	} else if m.sending {
		status = statusStyle.Render("Sending...")
	}

	return appStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Officer Chat"),
		m.viewport.View(),
		inputStyle.Render(m.textarea.View()),
		status,
	))
}

// Run starts the widget and blocks until the user quits. The push
// subscription reconnects until ctx is done.
func Run(ctx context.Context, client *Client, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan *push.Event, 64)
	go subscribeLoop(ctx, client, events)

	p := tea.NewProgram(New(ctx, client, events, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func subscribeLoop(ctx context.Context, client *Client, events chan<- *push.Event) {
	backoff := time.Second
	for ctx.Err() == nil {
		err := client.Subscribe(ctx, func(e *push.Event) {
			select {
			case events <- e:
			case <-ctx.Done():
			}
		})
		if err == nil {
			backoff = time.Second
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}
