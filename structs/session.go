package structs

// Session is the authenticated identity held by the client
type Session struct {
	UserID    string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	Token     string `json:"-"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// NewSession builds a session from a user and token
func NewSession(u *User, token string) Session {
	s := Session{Token: token}
	if u != nil {
		s.UserID = u.ID
		s.Name = u.Name
		s.Email = u.Email
		s.Role = u.Role
		s.CreatedAt = u.CreatedAt
		s.UpdatedAt = u.UpdatedAt
	}
	return s
}

// Authenticated reports whether the session carries a token
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// User returns the identity part of the session
func (s Session) User() *User {
	if s.UserID == "" && s.Email == "" {
		return nil
	}
	return &User{
		ID:        s.UserID,
		Name:      s.Name,
		Email:     s.Email,
		Role:      s.Role,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
