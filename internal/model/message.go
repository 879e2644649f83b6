package model

import "time"

// Message mirrors the `messages` table. Messages are append-only:
// there is no update or delete path. A user who has sent at least one
// message on a property becomes a participant and may read the whole
// thread; the property owner always may.
type Message struct {
	ID         string        `json:"id"`
	Content    string        `json:"content"`
	SenderID   string        `json:"senderId"`
	PropertyID string        `json:"propertyId"`
	Sender     *UserPart     `json:"sender,omitempty"`
	Property   *PropertyPart `json:"property,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// PropertyPart is the minimal property projection embedded in a
// freshly created message response.
type PropertyPart struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
