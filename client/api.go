// Package client holds the client-side chat state: a local mirror of the
// server's sessions, the optimistic send protocol, and the screen router.
// The terminal front end renders this state; it never talks to the server
// directly.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"supplygenie/backend/chat/models"
)

// ChatAPI is the client's view of the chat store operations
type ChatAPI interface {
	ListChats(ctx context.Context, userID string) ([]models.ChatSession, error)
	CreateChat(ctx context.Context, userID, chatName string) (*models.ChatSession, error)
	AppendMessage(ctx context.Context, userID, chatID string, msg models.Message) (*models.ChatSession, error)
	RenameChat(ctx context.Context, userID, chatID, newName string) (*models.ChatSession, error)
}

// HTTPChatAPI talks to the chat endpoints over HTTP
type HTTPChatAPI struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPChatAPI creates a client for the server at baseURL
func NewHTTPChatAPI(baseURL string, timeout time.Duration) *HTTPChatAPI {
	return &HTTPChatAPI{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// SetToken attaches an identity token to subsequent requests
func (a *HTTPChatAPI) SetToken(token string) {
	a.token = token
}

type chatEnvelope struct {
	Chat  *models.ChatSession  `json:"chat"`
	Chats []models.ChatSession `json:"chats"`
	Error string               `json:"error"`
}

// ListChats fetches the user's sessions
func (a *HTTPChatAPI) ListChats(ctx context.Context, userID string) ([]models.ChatSession, error) {
	query := url.Values{"user_id": {userID}}
	env, err := a.do(ctx, http.MethodGet, "/chats?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return env.Chats, nil
}

// CreateChat creates a new named session
func (a *HTTPChatAPI) CreateChat(ctx context.Context, userID, chatName string) (*models.ChatSession, error) {
	body := map[string]string{"user_id": userID, "chat_name": chatName}
	env, err := a.do(ctx, http.MethodPost, "/chats", body)
	if err != nil {
		return nil, err
	}
	return env.Chat, nil
}

// AppendMessage appends a message to a session
func (a *HTTPChatAPI) AppendMessage(ctx context.Context, userID, chatID string, msg models.Message) (*models.ChatSession, error) {
	body := map[string]any{"user_id": userID, "chat_id": chatID, "message": msg}
	env, err := a.do(ctx, http.MethodPatch, "/chats", body)
	if err != nil {
		return nil, err
	}
	return env.Chat, nil
}

// RenameChat retitles a session
func (a *HTTPChatAPI) RenameChat(ctx context.Context, userID, chatID, newName string) (*models.ChatSession, error) {
	body := map[string]string{"user_id": userID, "chat_id": chatID, "new_chat_name": newName}
	env, err := a.do(ctx, http.MethodPut, "/chats", body)
	if err != nil {
		return nil, err
	}
	return env.Chat, nil
}

func (a *HTTPChatAPI) do(ctx context.Context, method, path string, body any) (*chatEnvelope, error) {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env chatEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if env.Error != "" {
			return nil, fmt.Errorf("chat api: %s", env.Error)
		}
		return nil, fmt.Errorf("chat api: status %d", resp.StatusCode)
	}
	return &env, nil
}
