// Package models defines the records exchanged with the academy API.
package models

// Role is the account role. Only RoleAdmin grants access to admin routes.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// User is the account record returned by the auth endpoints and persisted
// locally next to the token.
type User struct {
	ID      ID     `json:"id"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
	Name    string `json:"name,omitempty"`
	College string `json:"college,omitempty"`
	Course  string `json:"course,omitempty"`
	Year    string `json:"year,omitempty"`
	Phone   string `json:"phone,omitempty"`
	City    string `json:"city,omitempty"`
}

// Valid reports whether the record carries the fields a session needs.
func (u *User) Valid() bool {
	return u != nil && u.ID != "" && u.Email != ""
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Clone returns a copy so callers cannot mutate session state through it.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// Registration is the payload of POST /api/auth/register.
type Registration struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"-" validate:"required,eqfield=Password"`
	Name            string `json:"name,omitempty"`
	College         string `json:"college,omitempty"`
	Year            string `json:"year,omitempty"`
	Phone           string `json:"phone,omitempty" validate:"omitempty,min=7,max=15,numeric"`
	City            string `json:"city,omitempty"`
}

// Credentials is the payload of POST /api/auth/login.
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ProfileUpdate is a partial user record. Nil fields are left untouched;
// non-nil fields replace the stored value, including with "".
type ProfileUpdate struct {
	Name    *string `json:"name,omitempty"`
	College *string `json:"college,omitempty"`
	Course  *string `json:"course,omitempty"`
	Year    *string `json:"year,omitempty"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=15"`
	City    *string `json:"city,omitempty"`
}

// Empty reports whether the update would change nothing.
func (p ProfileUpdate) Empty() bool {
	return p.Name == nil && p.College == nil && p.Course == nil &&
		p.Year == nil && p.Phone == nil && p.City == nil
}

// Apply returns u with every set field of p replaced. u itself is not modified.
func (p ProfileUpdate) Apply(u User) User {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&u.Name, p.Name)
	set(&u.College, p.College)
	set(&u.Course, p.Course)
	set(&u.Year, p.Year)
	set(&u.Phone, p.Phone)
	set(&u.City, p.City)
	return u
}

// UserEcho is a user record as echoed by the profile endpoint. Only the
// fields present in the body are set.
type UserEcho struct {
	ID      *ID     `json:"id,omitempty"`
	Email   *string `json:"email,omitempty"`
	Role    *Role   `json:"role,omitempty"`
	Name    *string `json:"name,omitempty"`
	College *string `json:"college,omitempty"`
	Course  *string `json:"course,omitempty"`
	Year    *string `json:"year,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	City    *string `json:"city,omitempty"`
}

// Empty reports whether the echo carries no field at all.
func (e UserEcho) Empty() bool {
	return e.ID == nil && e.Email == nil && e.Role == nil &&
		ProfileUpdate{Name: e.Name, College: e.College, Course: e.Course, Year: e.Year, Phone: e.Phone, City: e.City}.Empty()
}

// Apply overlays the fields present in e onto u. Identity fields (id, email,
// role) are only taken when present and non-empty.
func (e UserEcho) Apply(u User) User {
	if e.ID != nil && *e.ID != "" {
		u.ID = *e.ID
	}
	if e.Email != nil && *e.Email != "" {
		u.Email = *e.Email
	}
	if e.Role != nil && *e.Role != "" {
		u.Role = *e.Role
	}
	return ProfileUpdate{Name: e.Name, College: e.College, Course: e.Course, Year: e.Year, Phone: e.Phone, City: e.City}.Apply(u)
}

// AuthResponse is the body of a successful login.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
