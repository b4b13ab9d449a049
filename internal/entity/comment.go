package entity

import "time"

type Reply struct {
	Id        string    `bson:"_id" json:"id"`
	AuthorId  string    `bson:"authorId" json:"authorId"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type Comment struct {
	Id        string    `bson:"_id" json:"id"`
	PostId    string    `bson:"postId" json:"postId"`
	AuthorId  string    `bson:"authorId" json:"authorId"`
	Content   string    `bson:"content" json:"content"`
	Likes     []string  `bson:"likes" json:"likes"`
	Replies   []Reply   `bson:"replies" json:"replies"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

type CreateReplyRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}
