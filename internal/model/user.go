package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role is the access level of a user.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

// SelfAssignable reports whether r may be chosen at registration.
// Admin is only granted through a role update.
func (r Role) SelfAssignable() bool {
	return r == RoleStudent || r == RoleInstructor
}

// User represents a signed-in camp member. Email is the natural key.
type User struct {
	ID    primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name  string             `json:"name,omitempty" bson:"name,omitempty"`
	Email string             `json:"email" bson:"email" validate:"required,email"`
	Image string             `json:"image,omitempty" bson:"image,omitempty"`
	Role  Role               `json:"role" bson:"role"`
}
