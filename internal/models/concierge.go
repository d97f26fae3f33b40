package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ConciergeColName = "concierge_sessions"

	SessionActive   = "active"
	SessionArchived = "archived"
)

var MessageRoles = map[string]bool{
	"user":      true,
	"assistant": true,
	"system":    true,
}

type ConciergeMessage struct {
	ID        primitive.ObjectID `bson:"id" json:"id"`
	Role      string             `bson:"role" json:"role"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// ConciergeSession keeps its messages embedded in insertion order.
type ConciergeSession struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	UserID       string             `bson:"user_id" json:"user_id"`
	Title        string             `bson:"title" json:"title"`
	Status       string             `bson:"status" json:"status"`
	Messages     []ConciergeMessage `bson:"messages" json:"messages"`
	MessageCount int                `bson:"message_count" json:"message_count"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

type ConciergeRepo interface {
	CreateSession(ctx context.Context, session *ConciergeSession) (*ConciergeSession, error)
	// ListSessions omits messages.
	ListSessions(ctx context.Context, userID string) ([]*ConciergeSession, error)
	GetSession(ctx context.Context, id primitive.ObjectID) (*ConciergeSession, error)
	UpdateSession(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*ConciergeSession, error)
	// AppendMessages pushes messages and bumps updated_at in one update.
	AppendMessages(ctx context.Context, id primitive.ObjectID, messages ...ConciergeMessage) (*ConciergeSession, error)
}
