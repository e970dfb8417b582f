// Package repotest provides in-memory repositories for handler and router tests.
package repotest

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/Santo1997/summer-sage-server/internal/errors"
	"github.com/Santo1997/summer-sage-server/internal/model"
	"github.com/Santo1997/summer-sage-server/internal/repository"
)

var (
	_ repository.CourseRepository  = (*Courses)(nil)
	_ repository.UserRepository    = (*Users)(nil)
	_ repository.CartRepository    = (*Carts)(nil)
	_ repository.PaymentRepository = (*Payments)(nil)
)

// Store keeps every collection in memory. Its zero value is not usable; use New.
type Store struct {
	mu       sync.Mutex
	courses  []model.Course
	users    []model.User
	carts    []model.CartItem
	payments []model.Payment

	Inserts int
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Courses returns a CourseRepository view of the store.
func (s *Store) Courses() *Courses { return &Courses{s: s} }

// Users returns a UserRepository view of the store.
func (s *Store) Users() *Users { return &Users{s: s} }

// Carts returns a CartRepository view of the store.
func (s *Store) Carts() *Carts { return &Carts{s: s} }

// Payments returns a PaymentRepository view of the store.
func (s *Store) Payments() *Payments { return &Payments{s: s} }

// Courses is an in-memory CourseRepository.
type Courses struct{ s *Store }

// Seed appends courses as-is.
func (r *Courses) Seed(courses ...model.Course) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range courses {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		r.s.courses = append(r.s.courses, c)
	}
}

func (r *Courses) ListApproved(_ context.Context) ([]model.Course, error) {
	out := r.filter(func(c model.Course) bool { return c.Status == model.CourseStatusApproved })
	sort.SliceStable(out, func(i, j int) bool { return out[i].StudentEnroll > out[j].StudentEnroll })
	return out, nil
}

func (r *Courses) List(_ context.Context) ([]model.Course, error) {
	return r.filter(func(model.Course) bool { return true }), nil
}

func (r *Courses) ListByInstructor(_ context.Context, email string) ([]model.Course, error) {
	return r.filter(func(c model.Course) bool { return c.Instructor.Email == email }), nil
}

func (r *Courses) FindByID(_ context.Context, id primitive.ObjectID) (*model.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.courses {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *Courses) InsertIfAbsent(_ context.Context, course *model.Course) (*model.Course, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.courses {
		if c.Name == course.Name {
			c := c
			return &c, false, nil
		}
	}
	if course.ID.IsZero() {
		course.ID = primitive.NewObjectID()
	}
	r.s.courses = append(r.s.courses, *course)
	r.s.Inserts++
	return course, true, nil
}

func (r *Courses) Update(_ context.Context, id primitive.ObjectID, fields map[string]interface{}) (*model.UpdateResult, error) {
	if len(fields) == 0 {
		return nil, apperrors.ErrNoFields
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.courses {
		if r.s.courses[i].ID == id {
			applyCourse(&r.s.courses[i], fields)
			return &model.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	c := model.Course{ID: id}
	applyCourse(&c, fields)
	r.s.courses = append(r.s.courses, c)
	return &model.UpdateResult{UpsertedID: &id}, nil
}

func (r *Courses) filter(keep func(model.Course) bool) []model.Course {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.Course, 0)
	for _, c := range r.s.courses {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

func applyCourse(c *model.Course, fields map[string]interface{}) {
	for k, v := range fields {
		switch k {
		case "name":
			c.Name = v.(string)
		case "image":
			c.Image = v.(string)
		case "price":
			c.Price = v.(float64)
		case "seats":
			c.Seats = v.(int)
		case "student_enroll":
			c.StudentEnroll = v.(int)
		case "status":
			c.Status = v.(model.CourseStatus)
		case "feedback":
			c.Feedback = v.(string)
		}
	}
}

// Users is an in-memory UserRepository.
type Users struct{ s *Store }

// Seed appends users as-is.
func (r *Users) Seed(users ...model.User) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		r.s.users = append(r.s.users, u)
	}
}

func (r *Users) InsertIfAbsent(_ context.Context, user *model.User) (*model.User, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			u := u
			return &u, false, nil
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.s.users = append(r.s.users, *user)
	r.s.Inserts++
	return user, true, nil
}

func (r *Users) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *Users) ListByRole(_ context.Context, role model.Role) ([]model.User, error) {
	return r.filter(func(u model.User) bool { return u.Role == role }), nil
}

func (r *Users) ListByEmail(_ context.Context, email string) ([]model.User, error) {
	return r.filter(func(u model.User) bool { return email == "" || u.Email == email }), nil
}

func (r *Users) List(_ context.Context) ([]model.User, error) {
	return r.filter(func(model.User) bool { return true }), nil
}

func (r *Users) UpdateRole(_ context.Context, id primitive.ObjectID, role model.Role) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.users {
		if r.s.users[i].ID == id {
			r.s.users[i].Role = role
			u := r.s.users[i]
			return &u, nil
		}
	}
	u := model.User{ID: id, Role: role}
	r.s.users = append(r.s.users, u)
	return &u, nil
}

func (r *Users) filter(keep func(model.User) bool) []model.User {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.User, 0)
	for _, u := range r.s.users {
		if keep(u) {
			out = append(out, u)
		}
	}
	return out
}

// Carts is an in-memory CartRepository.
type Carts struct{ s *Store }

func (r *Carts) InsertIfAbsent(_ context.Context, item *model.CartItem) (*model.CartItem, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.carts {
		if c.CourseID == item.CourseID && c.User == item.User {
			c := c
			return &c, false, nil
		}
	}
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	r.s.carts = append(r.s.carts, *item)
	r.s.Inserts++
	return item, true, nil
}

func (r *Carts) ListByUser(_ context.Context, email string) ([]model.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.CartItem, 0)
	for _, c := range r.s.carts {
		if c.User == email {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *Carts) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, c := range r.s.carts {
		if c.ID == id {
			r.s.carts = append(r.s.carts[:i], r.s.carts[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// Len reports the number of cart entries.
func (r *Carts) Len() int {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.carts)
}

// Payments is an in-memory PaymentRepository.
type Payments struct{ s *Store }

func (r *Payments) Insert(_ context.Context, payment *model.Payment) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if payment.ID.IsZero() {
		payment.ID = primitive.NewObjectID()
	}
	r.s.payments = append(r.s.payments, *payment)
	return payment.ID, nil
}

func (r *Payments) List(_ context.Context, email string) ([]model.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.Payment, 0)
	for _, p := range r.s.payments {
		if email == "" || p.Email == email {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}
