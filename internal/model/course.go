package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// CourseStatus represents the review state of a course.
type CourseStatus string

const (
	CourseStatusPending  CourseStatus = "pending"
	CourseStatusApproved CourseStatus = "approved"
	CourseStatusDenied   CourseStatus = "denied"
)

// Instructor is the teacher reference embedded in a course, keyed by email.
type Instructor struct {
	Name  string `json:"name,omitempty" bson:"name,omitempty"`
	Email string `json:"email" bson:"email"`
}

// Course represents a summer camp class offered by an instructor.
type Course struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name" validate:"required"`
	Image         string             `json:"image,omitempty" bson:"image,omitempty"`
	Price         float64            `json:"price" bson:"price" validate:"gte=0"`
	Seats         int                `json:"seats" bson:"seats" validate:"gte=0"`
	StudentEnroll int                `json:"student_enroll" bson:"student_enroll" validate:"gte=0"`
	Status        CourseStatus       `json:"status" bson:"status"`
	Feedback      string             `json:"feedback,omitempty" bson:"feedback,omitempty"`
	Instructor    Instructor         `json:"instructor" bson:"instructor"`
}

// CourseReview carries the admin-only fields of a course.
// Nil fields are left untouched.
type CourseReview struct {
	Status   *CourseStatus `json:"status" validate:"omitempty,oneof=pending approved denied"`
	Feedback *string       `json:"feedback"`
}

// CourseUpdate carries the instructor-editable fields of a course.
// Nil fields are left untouched.
type CourseUpdate struct {
	Name          *string  `json:"name" validate:"omitempty,min=1"`
	Image         *string  `json:"image"`
	Price         *float64 `json:"price" validate:"omitempty,gte=0"`
	Seats         *int     `json:"seats" validate:"omitempty,gte=0"`
	StudentEnroll *int     `json:"student_enroll" validate:"omitempty,gte=0"`
}

// Fields returns the present fields keyed by their document name.
func (r CourseReview) Fields() map[string]interface{} {
	set := map[string]interface{}{}
	if r.Status != nil {
		set["status"] = *r.Status
	}
	if r.Feedback != nil {
		set["feedback"] = *r.Feedback
	}
	return set
}

// Fields returns the present fields keyed by their document name.
func (u CourseUpdate) Fields() map[string]interface{} {
	set := map[string]interface{}{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Image != nil {
		set["image"] = *u.Image
	}
	if u.Price != nil {
		set["price"] = *u.Price
	}
	if u.Seats != nil {
		set["seats"] = *u.Seats
	}
	if u.StudentEnroll != nil {
		set["student_enroll"] = *u.StudentEnroll
	}
	return set
}
