package entity

import "time"

type Post struct {
	Id        string    `bson:"_id" json:"id"`
	AuthorId  string    `bson:"authorId" json:"authorId"`
	Content   string    `bson:"content" json:"content"`
	MediaURL  string    `bson:"mediaUrl,omitempty" json:"mediaUrl,omitempty"`
	Likes     []string  `bson:"likes" json:"likes"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (p *Post) LikedBy(userId string) bool {
	for _, id := range p.Likes {
		if id == userId {
			return true
		}
	}
	return false
}

type CreatePostRequest struct {
	Content  string `json:"content" validate:"required,max=5000"`
	MediaURL string `json:"mediaUrl,omitempty" validate:"omitempty,url"`
}

type UpdatePostRequest struct {
	Content  string `json:"content" validate:"required,max=5000"`
	MediaURL string `json:"mediaUrl,omitempty" validate:"omitempty,url"`
}

// LikeResult reports the state after a like toggle.
type LikeResult struct {
	IsLiked   bool `json:"isLiked"`
	LikeCount int  `json:"likeCount"`
}
