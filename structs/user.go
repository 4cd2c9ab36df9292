package structs

import (
	"fmt"
	"strings"
)

// Role of a dashboard user
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleEditor     Role = "EDITOR"
	RoleJournalist Role = "JOURNALIST"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleJournalist:
		return true
	}
	return false
}

// User is the account returned by the auth and user operations
type User struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Role               Role   `json:"role"`
	RegistrationSource string `json:"registrationSource,omitempty"`
	CreatedAt          string `json:"createdAt,omitempty"`
	UpdatedAt          string `json:"updatedAt,omitempty"`
}

// AuthPayload is the login / registration response
type AuthPayload struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// LoginInput body
type LoginInput struct {
	Email    string `json:"email" label:"Email" validate:"required,email"`
	Password string `json:"password" label:"Password" validate:"required"`
}

// RegisterUserInput body
type RegisterUserInput struct {
	Name     string `json:"name" label:"Name" validate:"required"`
	Email    string `json:"email" label:"Email" validate:"required,email"`
	Password string `json:"password" label:"Password" validate:"required,min=6"`
	Role     Role   `json:"role,omitempty" label:"Role" validate:"omitempty,oneof=ADMIN EDITOR JOURNALIST"`
}

// UpdateUserInput body. Password fields are only sent on a password change.
type UpdateUserInput struct {
	Name            string `json:"name" label:"Name" validate:"required"`
	Email           string `json:"email" label:"Email" validate:"required,email"`
	CurrentPassword string `json:"currentPassword,omitempty"`
	Password        string `json:"password,omitempty" label:"New password" validate:"omitempty,min=6"`
}

// Normalize trims the text fields in place
func (in *LoginInput) Normalize() {
	in.Email = strings.TrimSpace(in.Email)
}

// Normalize trims the text fields in place
func (in *RegisterUserInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
}

// String returns "name <email>"
func (u *User) String() string {
	if u == nil {
		return ""
	}
	return fmt.Sprintf("%s <%s>", u.Name, u.Email)
}
