package model

import "time"

type Article struct {
	ID          string        `json:"id,omitempty" bson:"_id,omitempty"`
	Title       MultiLangText `json:"title" bson:"title" validate:"multilang"`
	Description MultiLangText `json:"description" bson:"description" validate:"multilang"`
	CoverImage  string        `json:"cover_image" bson:"cover_image" validate:"omitempty,url"`
	Likes       int           `json:"likes" bson:"likes" validate:"min=0"`
	Views       int           `json:"views" bson:"views" validate:"min=0"`
	AuthorID    string        `json:"author_id" bson:"author_id"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at"`
}

type ArticleInput struct {
	Title       TextInput `json:"title" validate:"text_required"`
	Description TextInput `json:"description" validate:"text_required"`
	CoverImage  string    `json:"cover_image" validate:"omitempty,url"`
	Likes       int       `json:"likes" validate:"min=0"`
	Views       int       `json:"views" validate:"min=0"`
	AuthorID    string    `json:"author_id"`
}

func (a *Article) SearchText() []string {
	return a.Title.Values()
}
