package entity

import "time"

// Conversation is the direct-message thread between exactly two users.
// PairKey is the sorted "a:b" of the participant ids so the same pair
// always resolves to the same document.
type Conversation struct {
	Id            string    `bson:"_id" json:"id"`
	PairKey       string    `bson:"pairKey" json:"-"`
	Participants  []string  `bson:"participants" json:"participants"`
	LastMessageAt time.Time `bson:"lastMessageAt" json:"lastMessageAt"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

type Message struct {
	Id             string     `bson:"_id" json:"id"`
	ConversationId string     `bson:"conversationId" json:"conversationId"`
	SenderId       string     `bson:"senderId" json:"senderId"`
	Body           string     `bson:"body" json:"body"`
	SentAt         time.Time  `bson:"sentAt" json:"sentAt"`
	ReadAt         *time.Time `bson:"readAt,omitempty" json:"readAt,omitempty"`
}

type SendMessageRequest struct {
	RecipientId string `json:"recipientId" validate:"required"`
	Body        string `json:"body" validate:"required,max=5000"`
}
