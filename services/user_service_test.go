package services

import (
	"context"
	"os"
	"testing"

	"github.com/Tariq-Monowar/timetree/errs"
)

func TestRegisterAndLogin(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	service := NewUserService(newFakeUserStore())

	user, err := service.Register(context.Background(), RegisterInput{
		Name:     "Ada",
		Email:    "Ada@Example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Errorf("email should be normalized, got %s", user.Email)
	}
	if user.Password == "hunter22" {
		t.Errorf("password must be stored hashed")
	}

	token, logged, err := service.Login(context.Background(), "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Errorf("expected a bearer token")
	}
	if logged.ID != user.ID {
		t.Errorf("login resolved the wrong user")
	}

	// Wrong password and unknown user both collapse to Unauthorized.
	if _, _, err := service.Login(context.Background(), "ada@example.com", "nope"); !errs.Is(err, errs.CodeUnauthorized) {
		t.Errorf("expected Unauthorized for wrong password, got %v", err)
	}
	if _, _, err := service.Login(context.Background(), "ghost@example.com", "nope"); !errs.Is(err, errs.CodeUnauthorized) {
		t.Errorf("expected Unauthorized for unknown user, got %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	service := NewUserService(newFakeUserStore())

	cases := []struct {
		name  string
		input RegisterInput
	}{
		{"missing name", RegisterInput{Email: "a@b.c", Password: "longenough"}},
		{"bad email", RegisterInput{Name: "A", Email: "not-an-email", Password: "longenough"}},
		{"short password", RegisterInput{Name: "A", Email: "a@b.c", Password: "srt"}},
	}
	for _, tc := range cases {
		if _, err := service.Register(context.Background(), tc.input); !errs.Is(err, errs.CodeInvalidInput) {
			t.Errorf("%s: expected InvalidInput, got %v", tc.name, err)
		}
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	service := NewUserService(newFakeUserStore())

	input := RegisterInput{Name: "A", Email: "a@b.c", Password: "longenough"}
	if _, err := service.Register(context.Background(), input); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := service.Register(context.Background(), input); !errs.Is(err, errs.CodeConflict) {
		t.Errorf("expected Conflict, got %v", err)
	}
}
