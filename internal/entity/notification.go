package entity

import "time"

type NotificationType string

const (
	NotificationFriendRequest NotificationType = "friend_request"
	NotificationFriendAccept  NotificationType = "friend_accept"
	NotificationLike          NotificationType = "like"
	NotificationComment       NotificationType = "comment"
	NotificationMessage       NotificationType = "message"
	NotificationPost          NotificationType = "post"
	NotificationEvent         NotificationType = "event"
	NotificationInvestment    NotificationType = "investment"
	NotificationChallenge     NotificationType = "challenge_application"
)

// Notification documents carry a TTL index on createdAt so the store purges
// them 30 days after creation.
type Notification struct {
	Id          string           `bson:"_id" json:"id"`
	RecipientId string           `bson:"recipientId" json:"recipientId"`
	ActorId     string           `bson:"actorId" json:"actorId"`
	Type        NotificationType `bson:"type" json:"type"`
	RelatedId   string           `bson:"relatedId,omitempty" json:"relatedId,omitempty"`
	Read        bool             `bson:"read" json:"read"`
	CreatedAt   time.Time        `bson:"createdAt" json:"createdAt"`
}
