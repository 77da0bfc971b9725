package tui

import (
	"fmt"
	"strings"

	"supplygenie/backend/client"
	"supplygenie/backend/supplier"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	sidebarStyle = lipgloss.NewStyle().
			Width(28).
			PaddingRight(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(lipgloss.Color("238"))

	activeChatStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	userMsgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	assistantMsgStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	failedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("63")).
			Padding(0, 1)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// View implements tea.Model
func (m Model) View() string {
	switch m.router.View() {
	case client.ViewLanding:
		return m.viewLanding()
	case client.ViewLogin:
		return m.viewAuth(false)
	case client.ViewSignup:
		return m.viewAuth(true)
	case client.ViewChat:
		return m.viewChat()
	}
	return ""
}

func (m Model) viewLanding() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("SupplyGenie"))
	b.WriteString("\n\n")
	b.WriteString("Find the right suppliers through conversation.\n\n")
	b.WriteString(subtleStyle.Render("l: log in   s: sign up   q: quit"))
	if m.errText != "" {
		b.WriteString("\n\n" + errStyle.Render(m.errText))
	}
	return b.String()
}

func (m Model) viewAuth(signup bool) string {
	var b strings.Builder
	if signup {
		b.WriteString(titleStyle.Render("Sign up"))
		b.WriteString("\n\n")
		b.WriteString(m.nameInput.View() + "\n")
	} else {
		b.WriteString(titleStyle.Render("Log in"))
		b.WriteString("\n\n")
	}
	b.WriteString(m.emailInput.View() + "\n")
	b.WriteString(m.passwordInput.View() + "\n\n")
	b.WriteString(subtleStyle.Render("enter: submit   tab: next field   esc: back"))
	if m.errText != "" {
		b.WriteString("\n\n" + errStyle.Render(m.errText))
	}
	return b.String()
}

func (m Model) viewChat() string {
	sidebar := m.renderSidebar()
	main := m.renderMessages()

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebarStyle.Render(sidebar), " "+main)

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.renderInputLine())
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("ctrl+n: new chat  ctrl+r: rename  ctrl+f: filter  ctrl+j/k: switch  ctrl+y: retry  ctrl+l: log out"))
	if m.errText != "" {
		b.WriteString("\n" + errStyle.Render(m.errText))
	}
	return b.String()
}

func (m Model) renderSidebar() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Chats"))
	b.WriteString("\n")

	chats := m.state.Chats()
	if len(chats) == 0 {
		b.WriteString(subtleStyle.Render("no chats yet"))
		return b.String()
	}

	renamingID, renameValue := m.state.RenamingChat()
	active := m.state.ActiveChat()
	for i, chat := range chats {
		title := chat.Title
		if chat.ID == renamingID && m.mode == modeRename {
			title = renameValue + "▌"
		}
		line := fmt.Sprintf("%d. %s", i+1, title)
		if chat.ID == active {
			line = activeChatStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) renderMessages() string {
	var b strings.Builder
	for _, msg := range m.state.ActiveMessages() {
		switch msg.Role {
		case client.RoleUser:
			line := userMsgStyle.Render("you: ") + msg.Content
			switch msg.Delivery {
			case client.DeliveryPending:
				line += subtleStyle.Render("  (sending)")
			case client.DeliveryFailed:
				line += failedStyle.Render("  (not delivered)")
			}
			b.WriteString(line + "\n")
		default:
			b.WriteString(assistantMsgStyle.Render("genie: ") + msg.Content + "\n")
			for _, s := range msg.Suppliers {
				b.WriteString(m.renderSupplierCard(s) + "\n")
			}
		}
	}
	if m.typing {
		b.WriteString(subtleStyle.Render("genie is thinking...") + "\n")
	}
	return b.String()
}

func (m Model) renderSupplierCard(s supplier.Supplier) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(s.Name))
	for _, field := range s.Fields {
		b.WriteString("\n" + subtleStyle.Render(field.Label+": ") + renderFieldValue(field))
	}
	return cardStyle.Render(b.String())
}

func renderFieldValue(f supplier.Field) string {
	switch f.Type {
	case supplier.FieldBadge:
		return badgeStyle.Render(f.Value)
	case supplier.FieldRating:
		return "★ " + f.Value
	case supplier.FieldLocation:
		return "⚲ " + f.Value
	default:
		return f.Value
	}
}

func (m Model) renderInputLine() string {
	switch m.mode {
	case modeRename:
		return "rename: " + m.chatInput.View()
	case modeSearch:
		return "filter: " + m.chatInput.View()
	default:
		return m.chatInput.View()
	}
}
