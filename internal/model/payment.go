package model

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentStatus represents the status of a recorded payment.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
)

// Payment represents a completed checkout as reported by the client.
// Records are immutable once inserted. Fields the client sends beyond the
// typed ones are kept in Extra and stored alongside them.
type Payment struct {
	ID            primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Email         string               `json:"email" bson:"email" validate:"required,email"`
	TransactionID string               `json:"transactionId" bson:"transactionId" validate:"required"`
	Price         float64              `json:"price" bson:"price" validate:"gte=0"`
	Quantity      int                  `json:"quantity,omitempty" bson:"quantity,omitempty"`
	Date          time.Time            `json:"date" bson:"date"`
	CartItems     []primitive.ObjectID `json:"cartItems,omitempty" bson:"cartItems,omitempty"`
	CourseItems   []primitive.ObjectID `json:"courseItems,omitempty" bson:"courseItems,omitempty"`
	CourseNames   []string             `json:"courseNames,omitempty" bson:"courseNames,omitempty"`
	Status        PaymentStatus        `json:"status,omitempty" bson:"status,omitempty"`

	Extra map[string]interface{} `json:"-" bson:",inline" swaggerignore:"true"`
}

// paymentKeys are the document keys owned by the typed Payment fields.
var paymentKeys = []string{
	"_id", "email", "transactionId", "price", "quantity", "date",
	"cartItems", "courseItems", "courseNames", "status",
}

type paymentFields Payment

// UnmarshalJSON decodes the typed fields and collects every other key into Extra.
func (p *Payment) UnmarshalJSON(data []byte) error {
	var fields paymentFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var all map[string]interface{}
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, k := range paymentKeys {
		delete(all, k)
	}
	fields.Extra = nil
	if len(all) > 0 {
		fields.Extra = all
	}
	*p = Payment(fields)
	return nil
}

// MarshalJSON writes Extra back next to the typed fields. Typed fields win on conflict.
func (p Payment) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(paymentFields(p))
	if err != nil || len(p.Extra) == 0 {
		return raw, err
	}
	var typed map[string]json.RawMessage
	if err := json.Unmarshal(raw, &typed); err != nil {
		return nil, err
	}
	out := make(map[string]interface{}, len(p.Extra)+len(typed))
	for k, v := range p.Extra {
		out[k] = v
	}
	for k, v := range typed {
		out[k] = v
	}
	return json.Marshal(out)
}

// InsertResult mirrors the acknowledgement of a single insert.
type InsertResult struct {
	InsertedID primitive.ObjectID `json:"insertedId"`
}

// DeleteResult mirrors the acknowledgement of a delete.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// UpdateResult mirrors the acknowledgement of an update or upsert.
type UpdateResult struct {
	MatchedCount  int64               `json:"matchedCount"`
	ModifiedCount int64               `json:"modifiedCount"`
	UpsertedID    *primitive.ObjectID `json:"upsertedId,omitempty"`
}
