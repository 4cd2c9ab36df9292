package validator

import (
	"testing"

	"github.com/ncobase/newsdesk/ecode"
)

type signup struct {
	Name     string `json:"name" label:"Name" validate:"required"`
	Email    string `json:"email" label:"Email" validate:"required,email"`
	Password string `json:"password" label:"Password" validate:"required,min=6"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name   string
		input  *signup
		fields map[string]string
	}{
		{
			name:   "valid",
			input:  &signup{Name: "Ada", Email: "ada@example.com", Password: "secret1"},
			fields: map[string]string{},
		},
		{
			name:  "missing name and bad email",
			input: &signup{Email: "nope", Password: "secret1"},
			fields: map[string]string{
				"name":  "Name is required",
				"email": "Email must be a valid email address",
			},
		},
		{
			name:  "short password",
			input: &signup{Name: "Ada", Email: "ada@example.com", Password: "abc"},
			fields: map[string]string{
				"password": "Password must be at least 6 characters long",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateStruct(tt.input)
			if len(got) != len(tt.fields) {
				t.Fatalf("expected %d errors, got %v", len(tt.fields), got)
			}
			for k, want := range tt.fields {
				if got[k] != want {
					t.Errorf("field %s: expected %q, got %q", k, want, got[k])
				}
			}
		})
	}
}

func TestValidateReturnsFirstFieldInOrder(t *testing.T) {
	err := Validate(&signup{Password: "abc"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !ecode.IsValidation(err) {
		t.Fatalf("expected validation kind, got %v", err)
	}
	if ecode.Message(err) != "Name is required" {
		t.Errorf("expected first message for name, got %q", ecode.Message(err))
	}
	e, _ := ecode.As(err)
	if len(e.Fields) != 3 {
		t.Errorf("expected 3 field errors, got %v", e.Fields)
	}
}

func TestValidateNil(t *testing.T) {
	if err := Validate(&signup{Name: "Ada", Email: "ada@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
