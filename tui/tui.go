// Package tui implements the interactive terminal shell for the tutor.
//
// Layout follows the original two-column arrangement: the running
// transcript on the left, and the model picker, language picker, code
// editor and question box stacked on the right. Streaming snapshots from
// the router arrive over a channel that is bridged into bubbletea
// messages; every snapshot redraws the transcript whole, so the shell
// never patches text in place.
//
// Information Hiding:
//   - Hides: bubbletea wiring, focus management, markdown rendering,
//     and how router snapshot channels become UI messages.
//   - Exposes: New and the bubbletea Model contract (Init/Update/View).

package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/solonlabs/mentor/config"
	"github.com/solonlabs/mentor/model"
	"github.com/solonlabs/mentor/storage"
	"github.com/solonlabs/mentor/tutor"
)

type focusArea int

const (
	focusCode focusArea = iota
	focusQuestion
	focusNone
)

// snapshotMsg carries one full-conversation snapshot from the router.
type snapshotMsg struct {
	conversation model.Conversation
}

// streamDoneMsg marks the end of a streaming response.
type streamDoneMsg struct{}

// storeResultMsg reports the outcome of a background transcript store call.
type storeResultMsg struct {
	action string
	err    error
}

// Model is the bubbletea model for the tutor shell.
type Model struct {
	router *tutor.Router
	store  storage.TranscriptStore

	sessionID    string
	conversation model.Conversation

	backends     []string
	backendIndex int
	languages    []string
	langIndex    int

	streaming bool
	inbound   chan tea.Msg
	cancel    context.CancelFunc

	focus      focusArea
	transcript viewport.Model
	code       textarea.Model
	question   textinput.Model
	spinner    spinner.Model

	markdown   *markdownRenderer
	theme      theme
	statusLine string
	statusWarn bool

	width  int
	height int
}

// New builds the shell around a router and an optional transcript store.
// A nil store disables persistence but leaves everything else working.
func New(router *tutor.Router, store storage.TranscriptStore) Model {
	th := newTheme()

	code := textarea.New()
	code.CharLimit = 0
	code.ShowLineNumbers = true
	code.Focus()

	question := textinput.New()
	question.Placeholder = "Ask follow-up questions, request examples, discuss the code"
	question.Prompt = "> "
	question.CharLimit = 2048

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = th.status

	transcript := viewport.New(0, 0)
	transcript.MouseWheelEnabled = true

	return Model{
		router:     router,
		store:      store,
		sessionID:  uuid.NewString(),
		backends:   config.Backends(),
		languages:  config.Languages(),
		focus:      focusCode,
		transcript: transcript,
		code:       code,
		question:   question,
		spinner:    sp,
		markdown:   newMarkdownRenderer(72),
		theme:      th,
		statusLine: "ready",
	}
}

// WithBackend preselects a backend label. Unknown labels leave the
// default in place.
func (m Model) WithBackend(label string) Model {
	for i, b := range m.backends {
		if b == label {
			m.backendIndex = i
		}
	}
	return m
}

// WithLanguage preselects a code language. Unknown names leave the
// default in place.
func (m Model) WithLanguage(name string) Model {
	for i, l := range m.languages {
		if l == name {
			m.langIndex = i
		}
	}
	return m
}

// SessionID reports the transcript key this shell saves under.
func (m Model) SessionID() string {
	return m.sessionID
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.renderTranscript()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case snapshotMsg:
		m.conversation = msg.conversation
		m.renderTranscript()
		cmds = append(cmds, waitStreamMsg(m.inbound))

	case streamDoneMsg:
		m.streaming = false
		m.cancel = nil
		m.inbound = nil
		m.setStatus("ready", false)
		cmds = append(cmds, m.saveTranscriptCmd())

	case storeResultMsg:
		if msg.err != nil {
			m.setStatus(msg.action+" failed: "+msg.err.Error(), true)
		}

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		return m.handleKey(msg, cmds)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()

	case "ctrl+s":
		return m.submit(cmds)

	case "ctrl+l":
		return m.clear(cmds)

	case "ctrl+p":
		m.backendIndex = (m.backendIndex + 1) % len(m.backends)
		return m, tea.Batch(cmds...)

	case "ctrl+g":
		m.langIndex = (m.langIndex + 1) % len(m.languages)
		return m, tea.Batch(cmds...)

	case "tab":
		cmds = append(cmds, m.cycleFocus())
		return m, tea.Batch(cmds...)

	case "esc":
		m.setFocus(focusNone)
		return m, tea.Batch(cmds...)

	case "enter":
		if m.focus == focusQuestion {
			return m.submit(cmds)
		}

	case "q":
		if m.focus == focusNone {
			return m.quit()
		}
	}

	// Everything else feeds the focused widget, or scrolls the
	// transcript when nothing is focused.
	var cmd tea.Cmd
	switch m.focus {
	case focusCode:
		m.code, cmd = m.code.Update(msg)
	case focusQuestion:
		m.question, cmd = m.question.Update(msg)
	case focusNone:
		m.transcript, cmd = m.transcript.Update(msg)
	}
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// submit snapshots the current inputs into a request and starts streaming.
// Empty inputs are a no-op so a stray keypress never produces a turn.
func (m Model) submit(cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	if m.streaming {
		m.setStatus("a response is already streaming", true)
		return m, tea.Batch(cmds...)
	}

	code := m.code.Value()
	question := m.question.Value()
	if code == "" && question == "" {
		m.setStatus("paste some code or ask a question first", true)
		return m, tea.Batch(cmds...)
	}

	req := tutor.Request{
		Code:     code,
		Question: question,
		Language: m.languages[m.langIndex],
		Backend:  m.backends[m.backendIndex],
		History:  m.conversation.Clone(),
	}

	// Inputs clear as soon as the request is on its way.
	m.code.Reset()
	m.question.Reset()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.streaming = true
	m.setStatus("asking "+req.Backend, false)

	inbound := make(chan tea.Msg, 16)
	m.inbound = inbound
	go bridgeSnapshots(m.router.Route(ctx, req), inbound)

	cmds = append(cmds, waitStreamMsg(inbound))
	return m, tea.Batch(cmds...)
}

// clear resets the conversation and both inputs, and drops the stored
// transcript for this session.
func (m Model) clear(cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	if m.streaming {
		m.setStatus("wait for the stream to finish", true)
		return m, tea.Batch(cmds...)
	}

	m.conversation = nil
	m.code.Reset()
	m.question.Reset()
	m.renderTranscript()
	m.setStatus("conversation cleared", false)

	cmds = append(cmds, m.deleteTranscriptCmd())
	return m, tea.Batch(cmds...)
}

// quit cancels any in-flight stream and drains its channel so the router
// pipeline can unwind before the program exits.
func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
	}
	if m.inbound != nil {
		ch := m.inbound
		go func() {
			for range ch {
			}
		}()
	}
	return m, tea.Quit
}

// bridgeSnapshots forwards router snapshots into the bubbletea message
// channel and closes it once the stream is over.
func bridgeSnapshots(snapshots <-chan model.Conversation, inbound chan<- tea.Msg) {
	defer close(inbound)
	for snap := range snapshots {
		inbound <- snapshotMsg{conversation: snap}
	}
	inbound <- streamDoneMsg{}
}

// waitStreamMsg returns a command that delivers the next stream message.
// It must be re-armed after every message it delivers.
func waitStreamMsg(ch <-chan tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func (m Model) saveTranscriptCmd() tea.Cmd {
	if m.store == nil {
		return nil
	}
	store, sessionID := m.store, m.sessionID
	conversation := m.conversation.Clone()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return storeResultMsg{action: "save", err: store.Save(ctx, sessionID, conversation)}
	}
}

func (m Model) deleteTranscriptCmd() tea.Cmd {
	if m.store == nil {
		return nil
	}
	store, sessionID := m.store, m.sessionID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return storeResultMsg{action: "clear", err: store.Delete(ctx, sessionID)}
	}
}

func (m *Model) setStatus(line string, warn bool) {
	m.statusLine = line
	m.statusWarn = warn
}

func (m *Model) setFocus(area focusArea) tea.Cmd {
	m.focus = area
	m.code.Blur()
	m.question.Blur()
	switch area {
	case focusCode:
		return m.code.Focus()
	case focusQuestion:
		return m.question.Focus()
	}
	return nil
}

func (m *Model) cycleFocus() tea.Cmd {
	switch m.focus {
	case focusCode:
		return m.setFocus(focusQuestion)
	case focusQuestion:
		return m.setFocus(focusNone)
	default:
		return m.setFocus(focusCode)
	}
}

// resize splits the window between the transcript pane and the input
// column and rebuilds the markdown renderer at the new wrap width.
func (m *Model) resize() {
	contentWidth := max(60, m.width-2)
	contentHeight := max(16, m.height-6)

	rightWidth := max(40, contentWidth/3)
	leftWidth := max(30, contentWidth-rightWidth-2)

	m.transcript.Width = max(24, leftWidth-4)
	m.transcript.Height = max(8, contentHeight-2)

	m.code.SetWidth(max(24, rightWidth-6))
	m.code.SetHeight(max(6, contentHeight-12))
	m.question.Width = max(24, rightWidth-8)

	m.markdown = newMarkdownRenderer(max(24, m.transcript.Width-2))
}

// renderTranscript redraws the transcript pane. The scroll position is
// kept unless the reader was at the bottom or a stream is in flight, so
// live responses stay in view.
func (m *Model) renderTranscript() {
	atBottom := m.transcript.AtBottom()
	yOffset := m.transcript.YOffset

	m.transcript.SetContent(m.transcriptContent())

	if atBottom || m.streaming {
		m.transcript.GotoBottom()
	} else {
		m.transcript.SetYOffset(yOffset)
	}
}

func (m *Model) transcriptContent() string {
	if len(m.conversation) == 0 {
		return m.theme.helpText.Render("No conversation yet. Paste code on the right and press ctrl+s.")
	}

	bodyWidth := max(20, m.transcript.Width-2)
	var b strings.Builder
	for i, turn := range m.conversation {
		if i > 0 {
			b.WriteString("\n")
		}
		switch turn.Role {
		case model.RoleUser:
			b.WriteString(m.theme.userLabel.Render("You"))
			b.WriteString("\n")
			b.WriteString(m.theme.userBody.Width(bodyWidth).Render(turn.Body))
			b.WriteString("\n")
		case model.RoleAssistant:
			b.WriteString(m.theme.assistantLabel.Render("Tutor"))
			b.WriteString("\n")
			b.WriteString(m.markdown.Render(turn.Body))
		}
	}
	return b.String()
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "starting..."
	}

	header := m.renderHeader()
	left := m.renderTranscriptPanel()
	right := m.renderInputColumn()
	content := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	footer := m.renderFooter()

	return m.theme.root.Render(lipgloss.JoinVertical(lipgloss.Left, header, content, footer))
}

func (m Model) renderHeader() string {
	title := m.theme.headerTitle.Render("AI Code Tutor")
	sub := m.theme.headerSub.Render("Multi-Model Code Explanation")
	tag := m.theme.headerSub.Render("Choose between GPT-4, Claude, or Llama to explain your code with real-time streaming.")
	return m.theme.header.Render(title + "  " + sub + "\n" + tag)
}

func (m Model) renderTranscriptPanel() string {
	style := m.theme.panel
	if m.focus == focusNone {
		style = m.theme.panelFocused
	}
	body := m.theme.panelTitle.Render("AI Tutor") + "\n" + m.transcript.View()
	return style.Render(body)
}

func (m Model) renderInputColumn() string {
	pickers := m.renderPickers()

	codeStyle := m.theme.panel
	if m.focus == focusCode {
		codeStyle = m.theme.panelFocused
	}
	codePanel := codeStyle.Render(
		m.theme.panelTitle.Render("Paste your code here") + "\n" + m.code.View())

	questionStyle := m.theme.panel
	if m.focus == focusQuestion {
		questionStyle = m.theme.panelFocused
	}
	questionPanel := questionStyle.Render(
		m.theme.panelTitle.Render("Chat with the tutor (optional)") + "\n" + m.question.View())

	return lipgloss.JoinVertical(lipgloss.Left, pickers, codePanel, questionPanel)
}

func (m Model) renderPickers() string {
	backend := m.theme.pickerLabel.Render("Choose AI Model: ") +
		m.theme.pickerValue.Render("< "+m.backends[m.backendIndex]+" >")
	language := m.theme.pickerLabel.Render("Choose Programming Language: ") +
		m.theme.pickerValue.Render("< "+m.languages[m.langIndex]+" >")
	return m.theme.panel.Render(backend + "\n" + language)
}

func (m Model) renderFooter() string {
	status := m.statusLine
	if m.streaming {
		status = m.spinner.View() + " " + status
	}
	statusStyle := m.theme.status
	if m.statusWarn {
		statusStyle = m.theme.warnStatus
	}
	help := "ctrl+s explain  ctrl+l clear  ctrl+p model  ctrl+g language  tab focus  esc scroll  ctrl+c quit"
	return statusStyle.Render(status) + "\n" + m.theme.helpText.Render(help)
}
