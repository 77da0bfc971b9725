// Package tui is the terminal front end for SupplyGenie. It renders the
// screen selected by the client router and drives the optimistic send
// protocol through Bubble Tea commands.
package tui

import (
	"context"
	"strings"
	"time"

	"supplygenie/backend/client"
	"supplygenie/backend/supplier"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Authenticator is the identity provider boundary. The real provider lives
// outside this repo; DevAuthenticator stands in for local use.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*client.User, error)
	SignUp(ctx context.Context, name, email, password string) (*client.User, error)
}

// DevAuthenticator accepts any credentials and derives a stable uid from
// the email. Local development only.
type DevAuthenticator struct{}

func (DevAuthenticator) SignIn(_ context.Context, email, _ string) (*client.User, error) {
	return &client.User{UID: uidFromEmail(email), Name: email, Email: email}, nil
}

func (DevAuthenticator) SignUp(_ context.Context, name, email, _ string) (*client.User, error) {
	return &client.User{UID: uidFromEmail(email), Name: name, Email: email}, nil
}

func uidFromEmail(email string) string {
	uid := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, email)
	return "user_" + uid
}

// inputMode says what the chat screen's input line is editing
type inputMode int

const (
	modeMessage inputMode = iota
	modeSearch
	modeRename
)

// defaultChatName is the title given to a freshly created chat
const defaultChatName = "New Supplier Search"

// Model is the Bubble Tea model for the whole application
type Model struct {
	router      *client.Router
	state       *client.State
	api         *client.HTTPChatAPI
	auth        Authenticator
	recommender supplier.Recommender
	replyDelay  time.Duration

	emailInput    textinput.Model
	passwordInput textinput.Model
	nameInput     textinput.Model
	chatInput     textinput.Model
	focusIndex    int

	mode     inputMode
	selected int
	typing   bool
	width    int
	height   int
	errText  string
}

// New creates the application model
func New(api *client.HTTPChatAPI, auth Authenticator, recommender supplier.Recommender, replyDelay time.Duration) Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword

	name := textinput.New()
	name.Placeholder = "name"

	chat := textinput.New()
	chat.Placeholder = "Describe the supplier you need..."
	chat.CharLimit = 2000

	return Model{
		router:        client.NewRouter(),
		api:           api,
		auth:          auth,
		recommender:   recommender,
		replyDelay:    replyDelay,
		emailInput:    email,
		passwordInput: password,
		nameInput:     name,
		chatInput:     chat,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Messages delivered by commands

type authResultMsg struct {
	user *client.User
	err  error
}

type chatsLoadedMsg struct{ err error }

type chatCreatedMsg struct{ err error }

type sendResultMsg struct {
	chatID    string
	messageID string
	err       error
}

type assistantTurnMsg struct {
	chatID string
	query  string
}

type assistantDoneMsg struct{ err error }

type renameSavedMsg struct{ err error }

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case authResultMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.router.HandleAuthChange(msg.user)
		m.state = client.NewState(m.api, m.recommender, msg.user.UID)
		m.chatInput.Focus()
		return m, m.loadChatsCmd()

	case chatsLoadedMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
		}
		return m, nil

	case chatCreatedMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
		}
		m.selected = 0
		return m, nil

	case sendResultMsg:
		if msg.err != nil {
			m.errText = "message not delivered; ctrl+y to retry"
		}
		return m, nil

	case assistantTurnMsg:
		return m, m.assistantReplyCmd(msg.chatID, msg.query)

	case assistantDoneMsg:
		m.typing = false
		if msg.err != nil {
			m.errText = msg.err.Error()
		}
		return m, nil

	case renameSavedMsg:
		// Fire-and-forget: the local title stands either way
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.router.View() {
	case client.ViewLanding:
		return m.handleLandingKey(msg)
	case client.ViewLogin, client.ViewSignup:
		return m.handleAuthKey(msg)
	case client.ViewChat:
		return m.handleChatKey(msg)
	}
	return m, nil
}

func (m Model) handleLandingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "l", "enter":
		m.router.Navigate(client.ViewLogin)
		m.focusIndex = 0
		m.emailInput.Focus()
	case "s":
		m.router.Navigate(client.ViewSignup)
		m.focusIndex = 0
		m.nameInput.Focus()
	}
	return m, nil
}

func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	signup := m.router.View() == client.ViewSignup

	switch msg.Type {
	case tea.KeyEsc:
		m.router.Navigate(client.ViewLanding)
		return m, nil
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyDown, tea.KeyUp:
		fields := 2
		if signup {
			fields = 3
		}
		if msg.Type == tea.KeyShiftTab || msg.Type == tea.KeyUp {
			m.focusIndex = (m.focusIndex + fields - 1) % fields
		} else {
			m.focusIndex = (m.focusIndex + 1) % fields
		}
		m.syncAuthFocus(signup)
		return m, nil
	case tea.KeyEnter:
		return m, m.authenticateCmd(signup)
	}

	return m.updateInputs(msg)
}

func (m *Model) syncAuthFocus(signup bool) {
	inputs := []*textinput.Model{&m.emailInput, &m.passwordInput}
	if signup {
		inputs = []*textinput.Model{&m.nameInput, &m.emailInput, &m.passwordInput}
	}
	for i, input := range inputs {
		if i == m.focusIndex {
			input.Focus()
		} else {
			input.Blur()
		}
	}
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		switch m.mode {
		case modeRename:
			m.state.SetRenameValue(m.chatInput.Value())
			m.mode = modeMessage
			m.resetChatInput()
			return m, m.saveRenameCmd()
		case modeSearch:
			m.state.SetSearch(m.chatInput.Value())
			m.mode = modeMessage
			m.resetChatInput()
			return m, nil
		default:
			return m.send()
		}
	case tea.KeyEsc:
		if m.mode == modeRename {
			m.state.CancelRename()
		}
		m.mode = modeMessage
		m.resetChatInput()
		return m, nil
	}

	switch msg.String() {
	case "ctrl+n":
		return m, m.createChatCmd()
	case "ctrl+r":
		if chats := m.state.Chats(); m.selected < len(chats) {
			m.state.StartRename(chats[m.selected].ID)
			m.mode = modeRename
			m.chatInput.SetValue(chats[m.selected].Title)
		}
		return m, nil
	case "ctrl+f":
		m.mode = modeSearch
		m.chatInput.SetValue("")
		return m, nil
	case "ctrl+y":
		return m, m.retryCmd()
	case "ctrl+k":
		if m.selected > 0 {
			m.selected--
			m.activateSelected()
		}
		return m, nil
	case "ctrl+j":
		if m.selected < len(m.state.Chats())-1 {
			m.selected++
			m.activateSelected()
		}
		return m, nil
	case "ctrl+l":
		m.router.SignOut()
		m.state = nil
		m.typing = false
		m.selected = 0
		m.resetChatInput()
		return m, nil
	}

	return m.updateInputs(msg)
}

func (m *Model) activateSelected() {
	chats := m.state.Chats()
	if m.selected < len(chats) {
		m.state.SelectChat(chats[m.selected].ID)
	}
}

func (m *Model) resetChatInput() {
	m.chatInput.SetValue("")
	m.chatInput.Focus()
}

// send runs the optimistic protocol: the message appears immediately and
// the persistence call plus the assistant turn happen in the background.
func (m Model) send() (tea.Model, tea.Cmd) {
	m.state.SetDraft(m.chatInput.Value())
	msg := m.state.BeginSend()
	if msg == nil {
		return m, nil
	}
	m.chatInput.SetValue("")
	m.typing = true

	chatID := m.state.ActiveChat()
	query := msg.Content
	return m, tea.Batch(
		m.confirmSendCmd(chatID, msg.ID),
		tea.Tick(m.replyDelay, func(time.Time) tea.Msg {
			return assistantTurnMsg{chatID: chatID, query: query}
		}),
	)
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch m.router.View() {
	case client.ViewLogin, client.ViewSignup:
		m.nameInput, cmd = m.nameInput.Update(msg)
		cmds = append(cmds, cmd)
		m.emailInput, cmd = m.emailInput.Update(msg)
		cmds = append(cmds, cmd)
		m.passwordInput, cmd = m.passwordInput.Update(msg)
		cmds = append(cmds, cmd)
	case client.ViewChat:
		m.chatInput, cmd = m.chatInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// Commands

func (m Model) authenticateCmd(signup bool) tea.Cmd {
	name := m.nameInput.Value()
	email := m.emailInput.Value()
	password := m.passwordInput.Value()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var user *client.User
		var err error
		if signup {
			user, err = m.auth.SignUp(ctx, name, email, password)
		} else {
			user, err = m.auth.SignIn(ctx, email, password)
		}
		return authResultMsg{user: user, err: err}
	}
}

func (m Model) loadChatsCmd() tea.Cmd {
	state := m.state
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return chatsLoadedMsg{err: state.Load(ctx)}
	}
}

func (m Model) createChatCmd() tea.Cmd {
	state := m.state
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_, err := state.NewChat(ctx, defaultChatName)
		return chatCreatedMsg{err: err}
	}
}

func (m Model) confirmSendCmd(chatID, messageID string) tea.Cmd {
	state := m.state
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		err := state.ConfirmSend(ctx, chatID, messageID)
		return sendResultMsg{chatID: chatID, messageID: messageID, err: err}
	}
}

func (m Model) retryCmd() tea.Cmd {
	state := m.state
	chatID := state.ActiveChat()
	var failedID string
	for _, msg := range state.ActiveMessages() {
		if msg.Delivery == client.DeliveryFailed {
			failedID = msg.ID
		}
	}
	if failedID == "" {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		err := state.Retry(ctx, chatID, failedID)
		return sendResultMsg{chatID: chatID, messageID: failedID, err: err}
	}
}

func (m Model) assistantReplyCmd(chatID, query string) tea.Cmd {
	state := m.state
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_, err := state.AssistantReply(ctx, chatID, query)
		return assistantDoneMsg{err: err}
	}
}

func (m Model) saveRenameCmd() tea.Cmd {
	state := m.state
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return renameSavedMsg{err: state.SaveRename(ctx)}
	}
}
