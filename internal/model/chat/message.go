package chat

import "time"

// Message is one turn of a chat session, authored either by the visitor or by
// the bot.
type Message struct {
	ID        int64          `json:"id"`
	SessionID string         `json:"sessionId"`
	Content   string         `json:"content"`
	IsBot     Flag           `json:"isBot"`
	Mode      string         `json:"mode"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt time.Time      `json:"createdAt"`
}

// NewMessage carries the caller-supplied fields of a Message.
type NewMessage struct {
	SessionID string
	Content   string
	IsBot     Flag
	Mode      string
	Metadata  map[string]any
}
