package repository

import (
	"context"
	"errors"
	"time"

	"supplygenie/backend/chat/models"
	"supplygenie/backend/pkg/observability"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrChatNotFound is returned when no user/chat pair matches a request
var ErrChatNotFound = errors.New("chat not found")

// ChatRepository is the persistence contract for user chat documents
type ChatRepository interface {
	List(ctx context.Context, userID string) ([]models.ChatSession, error)
	CreateChat(ctx context.Context, userID, chatName string) (*models.ChatSession, error)
	AppendMessage(ctx context.Context, userID, chatID string, msg models.Message) (*models.ChatSession, error)
	RenameChat(ctx context.Context, userID, chatID, newName string) (*models.ChatSession, error)
}

// CollectionProvider resolves the user-chats collection on the shared
// client. Indirection keeps the lazy connection out of this package.
type CollectionProvider func(ctx context.Context) (*mongo.Collection, error)

// MongoChatRepository implements ChatRepository on a Mongo collection
// holding one document per user. Every operation is a single round trip.
type MongoChatRepository struct {
	collection CollectionProvider
}

// NewMongoChatRepository creates a Mongo-backed chat repository
func NewMongoChatRepository(provider CollectionProvider) *MongoChatRepository {
	return &MongoChatRepository{collection: provider}
}

// NewChatID generates a collision-resistant chat id. Ids were previously
// derived from a millisecond timestamp, which collides under concurrent
// creation; a UUID suffix keeps the external chat_<token> shape without
// that gap.
func NewChatID() string {
	return "chat_" + uuid.NewString()
}

// List returns all sessions for a user, oldest first. A user with no
// document has an empty chat list, not an error.
func (r *MongoChatRepository) List(ctx context.Context, userID string) ([]models.ChatSession, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	defer observe("list")()

	var doc models.UserChatDocument
	err = coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []models.ChatSession{}, nil
		}
		return nil, err
	}
	if doc.ChatHistory == nil {
		return []models.ChatSession{}, nil
	}
	return doc.ChatHistory, nil
}

// CreateChat appends a new empty session to the user's document, creating
// the document if this is the user's first chat.
func (r *MongoChatRepository) CreateChat(ctx context.Context, userID, chatName string) (*models.ChatSession, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	defer observe("create_chat")()

	newChat := models.ChatSession{
		ChatID:   NewChatID(),
		ChatName: chatName,
		Messages: []models.Message{},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc models.UserChatDocument
	err = coll.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{"$push": bson.M{"chat_history": newChat}},
		opts,
	).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return &newChat, nil
}

// AppendMessage pushes a message onto the matching session's message array
// and returns the updated session. The store's array append is atomic per
// document; two concurrent appends both land, in unspecified order.
func (r *MongoChatRepository) AppendMessage(ctx context.Context, userID, chatID string, msg models.Message) (*models.ChatSession, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	defer observe("append_message")()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc models.UserChatDocument
	err = coll.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID, "chat_history.chat_id": chatID},
		bson.M{"$push": bson.M{"chat_history.$.messages": msg}},
		opts,
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}

	session := doc.Session(chatID)
	if session == nil {
		return nil, ErrChatNotFound
	}
	return session, nil
}

// RenameChat overwrites the matching session's title and returns the
// updated session. The overwrite is blind: a concurrent rename of the same
// chat is last-write-wins.
func (r *MongoChatRepository) RenameChat(ctx context.Context, userID, chatID, newName string) (*models.ChatSession, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	defer observe("rename_chat")()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc models.UserChatDocument
	err = coll.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID, "chat_history.chat_id": chatID},
		bson.M{"$set": bson.M{"chat_history.$.chat_name": newName}},
		opts,
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}

	session := doc.Session(chatID)
	if session == nil {
		return nil, ErrChatNotFound
	}
	return session, nil
}

// observe times a store round trip for the latency histogram
func observe(operation string) func() {
	start := time.Now()
	return func() {
		observability.StoreLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}
