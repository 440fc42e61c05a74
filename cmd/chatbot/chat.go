package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iambharathh/chatbot/client"
	"github.com/iambharathh/chatbot/models"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

type ChatCommand struct {
	ServerURL string `help:"The URL of the chat relay server." env:"CHAT_SERVER_URL" default:"http://localhost:8000"`
}

func (c ChatCommand) Run(ctx context.Context) (err error) {
	p := tea.NewProgram(newModel(ctx, client.New(c.ServerURL)))
	if _, err = p.Run(); err != nil {
		return err
	}
	return nil
}

// Dracula color scheme.
var (
	Background  = lipgloss.Color("#282a36")
	CurrentLine = lipgloss.Color("#44475a")
	Comment     = lipgloss.Color("#6272a4")
	Cyan        = lipgloss.Color("#8be9fd")
	Green       = lipgloss.Color("#50fa7b")
	Pink        = lipgloss.Color("#ff79c6")
	Purple      = lipgloss.Color("#bd93f9")
	Red         = lipgloss.Color("#ff5555")
)

var headerStyle = lipgloss.NewStyle().Background(CurrentLine).Foreground(Purple).Bold(true).Margin(10).Padding(1).PaddingTop(0)

var header = `
 _______  __   __  _______  _______  _______  _______  _______
|       ||  | |  ||   _   ||       ||  _    ||       ||       |
|       ||  |_|  ||  |_|  ||_     _|| |_|   ||   _   ||_     _|
|       ||       ||       |  |   |  |       ||  | |  |  |   |
|      _||       ||       |  |   |  |  _   | |  |_|  |  |   |
|     |_ |   _   ||   _   |  |   |  | |_|   ||       |  |   |
|_______||__| |__||__| |__|  |___|  |_______||_______|  |___|
`

const (
	connectionErrorText = "Could not connect to the chat server. Please make sure the server is running."
	sendErrorText       = "Failed to send message. Please try again."
)

type sender string

const (
	senderSystem sender = "system"
	senderUser   sender = "user"
	senderBot    sender = "bot"
)

type chatMessage struct {
	id     int
	sender sender
	text   string
	sentAt time.Time
}

// Messages produced by commands.
type (
	connectionTestedMsg struct {
		resp models.TestGetResponse
		err  error
	}
	replyMsg struct {
		text string
	}
	sendFailedMsg struct {
		id  int
		err error
	}
)

type model struct {
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model
	err      error
	ctx      context.Context
	client   client.Client

	messages []chatMessage
	nextID   int
	pending  bool
}

func newModel(ctx context.Context, c client.Client) model {
	ta := textarea.New()
	ta.Placeholder = "Type a message..."
	ta.Focus()

	ta.Prompt = "┃ "
	ta.CharLimit = 280

	ta.SetHeight(3)

	// Remove cursor line styling
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()

	ta.ShowLineNumbers = false

	vp := viewport.New(80, 20)
	vp.SetContent(headerStyle.Render(header))

	ta.KeyMap.InsertNewline.SetEnabled(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(Purple)

	return model{
		ctx:      ctx,
		client:   c,
		textarea: ta,
		viewport: vp,
		spinner:  sp,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.testConnection(),
	)
}

func (m model) testConnection() tea.Cmd {
	return func() tea.Msg {
		resp, err := m.client.TestGet(m.ctx)
		return connectionTestedMsg{resp: resp, err: err}
	}
}

func (m model) send(id int, text string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.client.ChatPost(m.ctx, models.ChatPostRequest{UserMessage: text})
		if err != nil {
			return sendFailedMsg{id: id, err: err}
		}
		return replyMsg{text: resp.Response}
	}
}

func (m model) addMessage(s sender, text string) (model, int) {
	id := m.nextID
	m.nextID++
	m.messages = append(m.messages, chatMessage{
		id:     id,
		sender: s,
		text:   text,
		sentAt: time.Now(),
	})
	return m, id
}

func (m model) remove(id int) model {
	msgs := make([]chatMessage, 0, len(m.messages))
	for _, cm := range m.messages {
		if cm.id != id {
			msgs = append(msgs, cm)
		}
	}
	m.messages = msgs
	return m
}

var senderToStyle = map[sender]lipgloss.Style{
	senderSystem: lipgloss.NewStyle().Padding(1).Margin(1).MarginBottom(0).MaxWidth(90).Background(Background).Foreground(Green),
	senderUser:   lipgloss.NewStyle().Padding(1).Margin(1).MarginBottom(0).Background(Background).Foreground(Pink),
	senderBot:    lipgloss.NewStyle().Padding(1).Margin(1).MarginBottom(0).Background(Background).Foreground(Cyan),
}

var senderToIcon = map[sender]string{
	senderSystem: "🤖",
	senderUser:   "🥷",
	senderBot:    "✨",
}

var timeStyle = lipgloss.NewStyle().Foreground(Comment)

func formatMessage(msg chatMessage) string {
	style, ok := senderToStyle[msg.sender]
	if !ok {
		return msg.text
	}
	icon, ok := senderToIcon[msg.sender]
	if !ok {
		icon = "🤷"
	}
	wrapped := wordwrap.String(strings.TrimSpace(icon+" "+msg.text), 80)
	return style.Render(wrapped) + " " + timeStyle.Render(msg.sentAt.Format("15:04"))
}

// errorText returns the server's explanation of the failure when there is one.
func errorText(err error) string {
	var ce client.Error
	if errors.As(err, &ce) {
		return ce.Detail
	}
	return sendErrorText
}

func (m model) render() model {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(header))
	sb.WriteString("\n")
	for _, cm := range m.messages {
		sb.WriteString(formatMessage(cm))
		sb.WriteString("\n")
	}
	m.viewport.SetContent(sb.String())
	m.viewport.GotoBottom()
	return m
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case connectionTestedMsg:
		switch {
		case msg.err != nil:
			m.err = errors.New(connectionErrorText)
		case msg.resp.Status == models.TestStatusSuccess:
			m, _ = m.addMessage(senderSystem, msg.resp.Message)
		default:
			m, _ = m.addMessage(senderSystem, msg.resp.Message+": "+msg.resp.Detail)
		}
		return m.render(), nil
	case replyMsg:
		m.pending = false
		m, _ = m.addMessage(senderBot, msg.text)
		return m.render(), nil
	case sendFailedMsg:
		// The message wasn't answered, so drop it from the conversation.
		m.pending = false
		m.err = errors.New(errorText(msg.err))
		return m.remove(msg.id).render(), nil
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - m.textarea.Height() - 4
		m.textarea.SetWidth(msg.Width)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			v := strings.TrimSpace(m.textarea.Value())
			if v == "" || m.pending {
				return m, nil
			}
			m.textarea.Reset()
			m.err = nil
			m.pending = true
			var id int
			m, id = m.addMessage(senderUser, v)
			return m.render(), m.send(id, v)
		default:
			// Send all other keypresses to the textarea.
			var cmd tea.Cmd
			m.textarea, cmd = m.textarea.Update(msg)
			return m, cmd
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case cursor.BlinkMsg:
		// Textarea should also process cursor blinks.
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m model) status() string {
	if m.pending {
		return m.spinner.View() + " Thinking..."
	}
	if m.err != nil {
		return lipgloss.NewStyle().Foreground(Red).Render("Error: " + m.err.Error())
	}
	return ""
}

func (m model) View() string {
	return fmt.Sprintf("%s\n%s\n\n%s",
		m.viewport.View(),
		m.status(),
		m.textarea.View(),
	) + "\n\n"
}
