package client

import (
	"context"
	"strings"
	"sync"
	"time"

	"supplygenie/backend/chat/models"
	"supplygenie/backend/supplier"

	"github.com/google/uuid"
)

// DeliveryState tracks whether an optimistically shown message has been
// durably persisted. A failed message stays visible but is marked, so the
// user can retry instead of silently losing it.
type DeliveryState int

const (
	DeliveryPending DeliveryState = iota
	DeliveryConfirmed
	DeliveryFailed
)

// Display roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// LocalMessage is a message as held in client state, which may be ahead of
// the server while a send is in flight
type LocalMessage struct {
	ID        string
	Role      string
	Content   string
	Timestamp time.Time
	Suppliers []supplier.Supplier
	Order     int
	Delivery  DeliveryState
}

// Chat mirrors one server session plus local-only delivery tags
type Chat struct {
	ID       string
	Title    string
	Messages []LocalMessage
}

// State is the in-memory mirror of the signed-in user's chats. All methods
// are safe for concurrent use; the terminal front end mutates from its
// update loop while sends confirm from background goroutines.
type State struct {
	mu sync.Mutex

	api         ChatAPI
	recommender supplier.Recommender
	userID      string

	chats      []Chat
	activeChat string

	draft          string
	search         string
	renamingChatID string
	renameValue    string
}

// NewState creates client chat state for the given user
func NewState(api ChatAPI, recommender supplier.Recommender, userID string) *State {
	return &State{
		api:         api,
		recommender: recommender,
		userID:      userID,
	}
}

// Load fetches the user's chats and replaces local state wholesale. If no
// chat is active the first returned chat becomes active.
func (s *State) Load(ctx context.Context) error {
	sessions, err := s.api.ListChats(ctx, s.userID)
	if err != nil {
		return err
	}

	chats := make([]Chat, 0, len(sessions))
	for _, session := range sessions {
		chat := Chat{
			ID:    session.ChatID,
			Title: session.ChatName,
		}
		for _, m := range session.Messages {
			chat.Messages = append(chat.Messages, LocalMessage{
				ID:        session.ChatID + "_" + uuid.NewString(),
				Role:      normalizeRole(m.Sender),
				Content:   m.Message,
				Order:     m.Order,
				Delivery:  DeliveryConfirmed,
				Timestamp: time.Now(),
			})
		}
		chats = append(chats, chat)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats = chats
	if s.activeChat == "" && len(chats) > 0 {
		s.activeChat = chats[0].ID
	}
	return nil
}

// NewChat creates a chat on the server, prepends it locally and makes it
// active. Unlike sends, creation is not optimistic: the id comes from the
// server.
func (s *State) NewChat(ctx context.Context, name string) (*Chat, error) {
	session, err := s.api.CreateChat(ctx, s.userID, name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	chat := Chat{ID: session.ChatID, Title: session.ChatName}
	s.chats = append([]Chat{chat}, s.chats...)
	s.activeChat = chat.ID
	return &chat, nil
}

// BeginSend synthesizes a pending message from the draft, appends it to the
// active chat and clears the draft. The caller then persists it with
// ConfirmSend. Returns nil when there is nothing to send.
func (s *State) BeginSend() *LocalMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	content := strings.TrimSpace(s.draft)
	if content == "" || s.activeChat == "" {
		return nil
	}
	chat := s.chat(s.activeChat)
	if chat == nil {
		return nil
	}

	msg := LocalMessage{
		ID:        s.activeChat + "_" + uuid.NewString(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: time.Now(),
		Order:     len(chat.Messages) + 1,
		Delivery:  DeliveryPending,
	}
	chat.Messages = append(chat.Messages, msg)
	s.draft = ""
	return &msg
}

// ConfirmSend persists a pending message. On success it is marked
// confirmed; on failure it stays visible, marked failed, and can be
// retried.
func (s *State) ConfirmSend(ctx context.Context, chatID, messageID string) error {
	s.mu.Lock()
	msg := s.message(chatID, messageID)
	if msg == nil {
		s.mu.Unlock()
		return nil
	}
	wire := models.Message{
		Order:   msg.Order,
		Sender:  models.SenderUser,
		Message: msg.Content,
	}
	s.mu.Unlock()

	_, err := s.api.AppendMessage(ctx, s.userID, chatID, wire)

	s.mu.Lock()
	defer s.mu.Unlock()
	if msg := s.message(chatID, messageID); msg != nil {
		if err != nil {
			msg.Delivery = DeliveryFailed
		} else {
			msg.Delivery = DeliveryConfirmed
		}
	}
	return err
}

// Retry re-issues a failed message
func (s *State) Retry(ctx context.Context, chatID, messageID string) error {
	s.mu.Lock()
	msg := s.message(chatID, messageID)
	if msg == nil || msg.Delivery != DeliveryFailed {
		s.mu.Unlock()
		return nil
	}
	msg.Delivery = DeliveryPending
	s.mu.Unlock()

	return s.ConfirmSend(ctx, chatID, messageID)
}

// AssistantReply asks the recommender for matches, appends the assistant
// message locally and persists it. Callers schedule this after the reply
// delay to simulate the assistant thinking.
func (s *State) AssistantReply(ctx context.Context, chatID, query string) (*LocalMessage, error) {
	resp, err := s.recommender.Recommend(ctx, query, s.history(chatID))
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	chat := s.chat(chatID)
	if chat == nil {
		s.mu.Unlock()
		return nil, nil
	}
	msg := LocalMessage{
		ID:        chatID + "_" + uuid.NewString(),
		Role:      RoleAssistant,
		Content:   supplier.CannedReply,
		Suppliers: supplier.TransformAll(resp),
		Timestamp: time.Now(),
		Order:     len(chat.Messages) + 1,
		Delivery:  DeliveryPending,
	}
	chat.Messages = append(chat.Messages, msg)
	s.mu.Unlock()

	wire := models.Message{Order: msg.Order, Sender: models.SenderBot, Message: msg.Content}
	_, err = s.api.AppendMessage(ctx, s.userID, chatID, wire)

	s.mu.Lock()
	defer s.mu.Unlock()
	if m := s.message(chatID, msg.ID); m != nil {
		if err != nil {
			m.Delivery = DeliveryFailed
		} else {
			m.Delivery = DeliveryConfirmed
		}
	}
	return &msg, err
}

// StartRename begins a rename of the given chat
func (s *State) StartRename(chatID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if chat := s.chat(chatID); chat != nil {
		s.renamingChatID = chatID
		s.renameValue = chat.Title
	}
}

// SetRenameValue updates the rename-in-progress text
func (s *State) SetRenameValue(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renameValue = value
}

// CancelRename abandons a rename in progress
func (s *State) CancelRename() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renamingChatID = ""
	s.renameValue = ""
}

// SaveRename applies the rename locally and persists it. The server call is
// fire-and-forget from the UI's point of view: a failure is logged by the
// caller but the local title stands.
func (s *State) SaveRename(ctx context.Context) error {
	s.mu.Lock()
	chatID := s.renamingChatID
	newName := strings.TrimSpace(s.renameValue)
	s.renamingChatID = ""
	s.renameValue = ""
	if chatID == "" || newName == "" {
		s.mu.Unlock()
		return nil
	}
	if chat := s.chat(chatID); chat != nil {
		chat.Title = newName
	}
	s.mu.Unlock()

	_, err := s.api.RenameChat(ctx, s.userID, chatID, newName)
	return err
}

// RenamingChat returns the chat id being renamed and the current value
func (s *State) RenamingChat() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renamingChatID, s.renameValue
}

// SetDraft updates the message draft
func (s *State) SetDraft(draft string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = draft
}

// Draft returns the current message draft
func (s *State) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// SetSearch updates the chat title filter
func (s *State) SetSearch(search string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = search
}

// SelectChat makes the given chat active
func (s *State) SelectChat(chatID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chat(chatID) != nil {
		s.activeChat = chatID
	}
}

// ActiveChat returns the active chat id, empty if none
func (s *State) ActiveChat() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeChat
}

// Chats returns the chats whose titles match the search filter,
// case-insensitively. An empty filter returns everything.
func (s *State) Chats() []Chat {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.search == "" {
		return append([]Chat(nil), s.chats...)
	}
	needle := strings.ToLower(s.search)
	var filtered []Chat
	for _, chat := range s.chats {
		if strings.Contains(strings.ToLower(chat.Title), needle) {
			filtered = append(filtered, chat)
		}
	}
	return filtered
}

// ActiveMessages returns the active chat's messages
func (s *State) ActiveMessages() []LocalMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat := s.chat(s.activeChat)
	if chat == nil {
		return nil
	}
	return append([]LocalMessage(nil), chat.Messages...)
}

// history builds the conversation context sent to the recommender
func (s *State) history(chatID string) []supplier.ChatHistoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat := s.chat(chatID)
	if chat == nil {
		return nil
	}
	items := make([]supplier.ChatHistoryItem, 0, len(chat.Messages))
	for _, m := range chat.Messages {
		items = append(items, supplier.ChatHistoryItem{Role: m.Role, Content: m.Content})
	}
	return items
}

// chat and message require s.mu to be held

func (s *State) chat(chatID string) *Chat {
	for i := range s.chats {
		if s.chats[i].ID == chatID {
			return &s.chats[i]
		}
	}
	return nil
}

func (s *State) message(chatID, messageID string) *LocalMessage {
	chat := s.chat(chatID)
	if chat == nil {
		return nil
	}
	for i := range chat.Messages {
		if chat.Messages[i].ID == messageID {
			return &chat.Messages[i]
		}
	}
	return nil
}

func normalizeRole(sender string) string {
	switch sender {
	case models.SenderUser:
		return RoleUser
	case models.SenderBot:
		return RoleAssistant
	default:
		return sender
	}
}
