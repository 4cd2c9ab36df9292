package screen

import (
	"context"
	"strings"

	"github.com/ncobase/newsdesk/ecode"
	"github.com/ncobase/newsdesk/structs"
	"github.com/ncobase/newsdesk/validator"
)

const (
	msgPasswordMismatch = "New passwords don't match"
	msgCurrentPassword  = "Current password is required to set a new password"
	msgProfileUpdated   = "Profile updated successfully"
)

// ProfileForm is the editable profile
type ProfileForm struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	CurrentPassword string `json:"currentPassword,omitempty"`
	NewPassword     string `json:"newPassword,omitempty"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
}

// Profile edits the signed-in user
type Profile struct {
	Machine
	api  UserAPI
	sess Session
	form ProfileForm
}

// NewProfile creates the profile screen
func NewProfile(api UserAPI, sess Session) *Profile {
	return &Profile{api: api, sess: sess}
}

// Mount fills the form from the session
func (s *Profile) Mount(ctx context.Context) ProfileForm {
	cur := s.sess.Current(ctx)
	s.form = ProfileForm{Name: cur.Name, Email: cur.Email}
	return s.form
}

// Form returns the current form
func (s *Profile) Form() ProfileForm {
	return s.form
}

// Submit saves f. A password change needs the current password and a
// matching confirmation, checked before any request. On success the session
// is refreshed and the password fields are reset.
func (s *Profile) Submit(ctx context.Context, f ProfileForm) error {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	s.form = f

	cur := s.sess.Current(ctx)
	if !cur.Authenticated() || cur.UserID == "" {
		return s.reject(ecode.Authorization(ecode.NoLogin, ""))
	}

	in := structs.UpdateUserInput{Name: f.Name, Email: f.Email}
	if f.NewPassword != "" || f.ConfirmPassword != "" {
		if f.NewPassword != f.ConfirmPassword {
			return s.reject(ecode.Validation(msgPasswordMismatch, map[string]string{"confirmPassword": msgPasswordMismatch}))
		}
		if f.CurrentPassword == "" {
			return s.reject(ecode.FieldRequired("currentPassword", msgCurrentPassword))
		}
		in.CurrentPassword = f.CurrentPassword
		in.Password = f.NewPassword
	}
	if err := validator.Validate(in); err != nil {
		return s.reject(err)
	}
	if err := s.begin(); err != nil {
		return err
	}

	user, err := s.api.UpdateUser(ctx, cur.UserID, in)
	if err != nil {
		return s.fail(err)
	}
	if err := s.sess.Update(ctx, user); err != nil {
		return s.fail(err)
	}

	s.form = ProfileForm{Name: user.Name, Email: user.Email}
	s.succeed(msgProfileUpdated)
	return nil
}
