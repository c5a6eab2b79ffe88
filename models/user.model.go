package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role determines the privilege level of a user. Authorization today is
// ownership-based; the role is persisted but not consulted by any guard.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered account
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password,omitempty" json:"-"`
	Role     Role               `bson:"role" json:"role"`
}
