package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message senders as stored on the wire. The terminal client normalizes
// "bot" to an assistant role for display.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message is a single chat message embedded in a session. Messages are
// append-only: there is no edit or delete operation.
type Message struct {
	Order   int    `json:"order" bson:"order"`
	Sender  string `json:"sender" bson:"sender"`
	Message string `json:"message" bson:"message"`
}

// ChatSession is one conversation owned by a user, embedded in the user's
// chat document. Chat ids are unique within a user's document.
type ChatSession struct {
	ChatID   string    `json:"chat_id" bson:"chat_id"`
	ChatName string    `json:"chat_name" bson:"chat_name"`
	Messages []Message `json:"messages" bson:"messages"`
}

// UserChatDocument is the persisted aggregate: one document per user
// holding all of that user's sessions.
type UserChatDocument struct {
	ID          primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	UserID      string             `json:"user_id" bson:"user_id"`
	ChatHistory []ChatSession      `json:"chat_history" bson:"chat_history"`
}

// Session returns the session with the given id, or nil
func (d *UserChatDocument) Session(chatID string) *ChatSession {
	for i := range d.ChatHistory {
		if d.ChatHistory[i].ChatID == chatID {
			return &d.ChatHistory[i]
		}
	}
	return nil
}
