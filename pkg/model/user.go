package model

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type User struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	Email     string    `json:"email" bson:"email" validate:"required,email"`
	Name      string    `json:"name" bson:"name"`
	Avatar    string    `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Role      Role      `json:"role" bson:"role" validate:"required,oneof=admin user"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

func (u *User) SearchText() []string {
	return []string{u.Name, u.Email}
}

// Admin is an allow-list entry keyed by the identity provider's user id.
type Admin struct {
	ID        string    `json:"id" bson:"_id"`
	Email     string    `json:"email" bson:"email"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
