package entity

import "time"

type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
	FriendRequestRejected FriendRequestStatus = "rejected"
)

// FriendRequest transitions only pending -> accepted or pending -> rejected,
// never back.
type FriendRequest struct {
	Id         string              `bson:"_id" json:"id"`
	SenderId   string              `bson:"senderId" json:"senderId"`
	ReceiverId string              `bson:"receiverId" json:"receiverId"`
	Status     FriendRequestStatus `bson:"status" json:"status"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time           `bson:"updatedAt" json:"updatedAt"`
}

type SendFriendRequestRequest struct {
	ReceiverId string `json:"receiverId" validate:"required"`
}
