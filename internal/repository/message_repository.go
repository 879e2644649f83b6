package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/mviller/propnest/internal/model"
)

// MessageRepo persists the append-only message threads attached to
// properties. There is deliberately no update or delete.
type MessageRepo struct{ DB *sql.DB }

func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{DB: db} }

// Create appends a message and returns it with the sender and the
// property title embedded, matching the shape the client renders
// straight into the thread.
func (r *MessageRepo) Create(ctx context.Context, senderID, propertyID, content string) (model.Message, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO messages (id, content, sender_id, property_id) VALUES (?,?,?,?)",
		id, content, senderID, propertyID)
	if err != nil {
		return model.Message{}, err
	}
	var m model.Message
	var sender model.UserPart
	var prop model.PropertyPart
	err = r.DB.QueryRowContext(ctx,
		`SELECT m.id, m.content, m.sender_id, m.property_id, m.created_at,
			u.id, u.name, u.avatar, p.id, p.title
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		JOIN properties p ON p.id = m.property_id
		WHERE m.id = ? LIMIT 1`, id).Scan(
		&m.ID, &m.Content, &m.SenderID, &m.PropertyID, &m.CreatedAt,
		&sender.ID, &sender.Name, &sender.Avatar, &prop.ID, &prop.Title)
	if err != nil {
		return model.Message{}, err
	}
	m.Sender = &sender
	m.Property = &prop
	return m, nil
}

// ListByProperty returns the full thread for a property in insertion
// order (oldest first), each message with its sender embedded. Access
// control happens in the handler before this runs.
func (r *MessageRepo) ListByProperty(ctx context.Context, propertyID string) ([]model.Message, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT m.id, m.content, m.sender_id, m.property_id, m.created_at,
			u.id, u.name, u.avatar
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.property_id = ?
		ORDER BY m.created_at ASC`, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Message{}
	for rows.Next() {
		var m model.Message
		var sender model.UserPart
		if err := rows.Scan(
			&m.ID, &m.Content, &m.SenderID, &m.PropertyID, &m.CreatedAt,
			&sender.ID, &sender.Name, &sender.Avatar); err != nil {
			return nil, err
		}
		m.Sender = &sender
		out = append(out, m)
	}
	return out, rows.Err()
}

// HasSenderMessage reports whether userID has previously sent a
// message on the property, i.e. whether they are a participant in its
// thread.
func (r *MessageRepo) HasSenderMessage(ctx context.Context, propertyID, userID string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM messages WHERE property_id = ? AND sender_id = ? LIMIT 1",
		propertyID, userID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
