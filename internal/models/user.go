package models

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleDriver   Role = "driver"
	RoleCustomer Role = "customer"
)

// Earnings is reported for drivers only.
type Earnings struct {
	Daily   float64 `json:"daily"`
	Monthly float64 `json:"monthly"`
	Total   float64 `json:"total"`
}

// User is the platform user record as the upstream API serves it. Field
// names follow the upstream wire format, not this service's conventions.
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name,omitempty"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Username  string    `json:"username,omitempty"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      Role      `json:"role"`
	Wallet    float64   `json:"wallet,omitempty"`
	IsBanned  bool      `json:"isBanned,omitempty"`
	IsOnline  bool      `json:"isOnline,omitempty"`
	Earnings  *Earnings `json:"earnings,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// DisplayName prefers the combined name field, falling back to
// first/last and finally the email address.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full != "" {
		return full
	}
	return u.Email
}

// Profile holds the editable admin profile fields on the settings page.
type Profile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}
