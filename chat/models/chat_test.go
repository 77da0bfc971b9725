package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLookup(t *testing.T) {
	doc := UserChatDocument{
		UserID: "u1",
		ChatHistory: []ChatSession{
			{ChatID: "chat_a", ChatName: "A"},
			{ChatID: "chat_b", ChatName: "B"},
		},
	}

	session := doc.Session("chat_b")
	require.NotNil(t, session)
	assert.Equal(t, "B", session.ChatName)

	assert.Nil(t, doc.Session("chat_missing"))
}

func TestEmptySessionMarshalsMessagesAsArray(t *testing.T) {
	session := ChatSession{ChatID: "chat_a", ChatName: "A", Messages: []Message{}}

	out, err := json.Marshal(session)
	require.NoError(t, err)
	assert.JSONEq(t, `{"chat_id":"chat_a","chat_name":"A","messages":[]}`, string(out))
}
