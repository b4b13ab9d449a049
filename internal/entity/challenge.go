package entity

import "time"

type ChallengeApplication struct {
	UserId    string    `bson:"userId" json:"userId"`
	Proposal  string    `bson:"proposal" json:"proposal"`
	AppliedAt time.Time `bson:"appliedAt" json:"appliedAt"`
}

type Challenge struct {
	Id             string                 `bson:"_id" json:"id"`
	CreatorId      string                 `bson:"creatorId" json:"creatorId"`
	Title          string                 `bson:"title" json:"title"`
	Description    string                 `bson:"description" json:"description"`
	Deadline       time.Time              `bson:"deadline" json:"deadline"`
	Applicants     []ChallengeApplication `bson:"applicants" json:"applicants"`
	ApplicantCount int                    `bson:"applicantCount" json:"applicantCount"`
	CreatedAt      time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time              `bson:"updatedAt" json:"updatedAt"`
}

type CreateChallengeRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"required,max=10000"`
	Deadline    time.Time `json:"deadline" validate:"required"`
}

type ApplyChallengeRequest struct {
	Proposal string `json:"proposal" validate:"required,max=5000"`
}
