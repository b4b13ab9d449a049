package entity

import "time"

type Investment struct {
	UserId     string    `bson:"userId" json:"userId"`
	Amount     int64     `bson:"amount" json:"amount"`
	InvestedAt time.Time `bson:"investedAt" json:"investedAt"`
}

type Project struct {
	Id           string       `bson:"_id" json:"id"`
	OwnerId      string       `bson:"ownerId" json:"ownerId"`
	Title        string       `bson:"title" json:"title"`
	Pitch        string       `bson:"pitch" json:"pitch"`
	FundingGoal  int64        `bson:"fundingGoal" json:"fundingGoal"`
	RaisedAmount int64        `bson:"raisedAmount" json:"raisedAmount"`
	Investors    []Investment `bson:"investors" json:"investors"`
	CreatedAt    time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time    `bson:"updatedAt" json:"updatedAt"`
}

type CreateProjectRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Pitch       string `json:"pitch" validate:"required,max=10000"`
	FundingGoal int64  `json:"fundingGoal" validate:"required,gt=0"`
}

type InvestRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}
