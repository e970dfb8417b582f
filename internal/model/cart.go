package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// CartItem links a user (by email) to a course they intend to buy.
// The (CourseID, User) pair is unique.
type CartItem struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	CourseID   primitive.ObjectID `json:"courseId" bson:"courseId" validate:"required"`
	User       string             `json:"user" bson:"user" validate:"required,email"`
	Name       string             `json:"name,omitempty" bson:"name,omitempty"`
	Image      string             `json:"image,omitempty" bson:"image,omitempty"`
	Price      float64            `json:"price" bson:"price" validate:"gte=0"`
	Instructor *Instructor        `json:"instructor,omitempty" bson:"instructor,omitempty"`
}
