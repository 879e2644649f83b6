// Package queue defines the payloads exchanged over the message
// broker and the background consumer that turns them into a
// notification trail.
package queue

// MessageSentEvent is published after a message is stored. It carries
// enough for downstream consumers (notification senders, analytics)
// to act without touching the primary database.
type MessageSentEvent struct {
	MessageID     string `json:"message_id"`
	PropertyID    string `json:"property_id"`
	PropertyTitle string `json:"property_title"`
	SenderID      string `json:"sender_id"`
	SenderName    string `json:"sender_name"`
	OwnerID       string `json:"owner_id"`
	SentAt        string `json:"sent_at"`
}
