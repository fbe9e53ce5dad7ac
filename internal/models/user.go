// Package models defines the data types exchanged with the Hygieia backend
// and persisted locally by the stores.
package models

import "time"

type Role string

const (
	RoleUser   Role = "user"
	RoleDoctor Role = "doctor"
	RolePharma Role = "pharma"
	RoleLab    Role = "lab"
)

// User is the identity record returned by the auth endpoints.
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      Role      `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	Address   *Address  `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserPatch carries the fields of a profile update. Nil pointers mean
// "leave unchanged"; UpdateUser merges them shallowly.
type UserPatch struct {
	Name    *string  `json:"name,omitempty"`
	Phone   *string  `json:"phone,omitempty"`
	Avatar  *string  `json:"avatar,omitempty"`
	Address *Address `json:"address,omitempty"`
}

type Address struct {
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
	Landmark string `json:"landmark,omitempty"`
}

// Apply returns a copy of u with the patch's non-nil fields merged in.
func (p UserPatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Address != nil {
		addr := *p.Address
		u.Address = &addr
	}
	return u
}
