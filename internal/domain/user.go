package domain

import "time"

// User statuses. Erasure is a one-way transition from active to erased.
const (
	UserStatusActive = "active"
	UserStatusErased = "erased"
)

// User represents a registered shopper. Once Status is erased, the personal
// fields hold the anonymized label and AnonymizedTime/AnonTag are set.
type User struct {
	ID             int64      `json:"id"`
	FirstName      string     `json:"firstName,omitempty"`
	LastName       string     `json:"lastName,omitempty"`
	Username       string     `json:"username,omitempty"`
	Email          string     `json:"email,omitempty"`
	PasswordHash   string     `json:"-"`
	Status         string     `json:"status"`
	AnonymizedTime *time.Time `json:"anonymizedTime,omitempty"`
	AnonTag        *string    `json:"anonTag,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// ShippingAddress belongs to exactly one user. City/State/Zip are pointers
// because erasure nulls them out rather than replacing them.
type ShippingAddress struct {
	ID     int64   `json:"id"`
	UserID int64   `json:"userId"`
	Street string  `json:"street,omitempty"`
	City   *string `json:"city,omitempty"`
	Zip    *string `json:"zip,omitempty"`
	State  *string `json:"state,omitempty"`
	Phone  string  `json:"phone,omitempty"`
}
