package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("Ada Lovelace", "Ada@Example.com", "password123")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if user.Name != "Ada Lovelace" {
		t.Errorf("Expected name Ada Lovelace, got %s", user.Name)
	}

	// Email is normalized to lowercase
	if user.Email != "ada@example.com" {
		t.Errorf("Expected lowercased email, got %s", user.Email)
	}

	if user.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Test empty name
	_, err = NewUser("", "ada@example.com", "password123")
	if !errors.Is(err, ErrEmptyName) {
		t.Errorf("Expected error %v, got %v", ErrEmptyName, err)
	}

	// Test invalid email
	_, err = NewUser("Ada", "invalidemail", "password123")
	if !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	// Test short password
	_, err = NewUser("Ada", "ada@example.com", "short")
	if !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooShort, err)
	}

	// Test over-long password (bcrypt limit)
	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	_, err = NewUser("Ada", "ada@example.com", string(long))
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooLong, err)
	}
}

func TestUserValidate(t *testing.T) {
	validUser := User{
		ID:             uuid.New(),
		Name:           "Ada",
		Email:          "ada@example.com",
		HashedPassword: "hashedpassword123",
	}

	if err := validUser.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	invalidUser := validUser
	invalidUser.ID = uuid.Nil
	if err := invalidUser.Validate(); !errors.Is(err, ErrEmptyUserID) {
		t.Errorf("Expected error %v, got %v", ErrEmptyUserID, err)
	}

	invalidUser = validUser
	invalidUser.Email = ""
	if err := invalidUser.Validate(); !errors.Is(err, ErrEmptyEmail) {
		t.Errorf("Expected error %v, got %v", ErrEmptyEmail, err)
	}

	// A stored user with neither plaintext nor hash is invalid
	invalidUser = validUser
	invalidUser.HashedPassword = ""
	if err := invalidUser.Validate(); !errors.Is(err, ErrEmptyPassword) {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}
}

func TestUserSummary(t *testing.T) {
	user := User{
		ID:             uuid.New(),
		Name:           "Ada",
		Email:          "ada@example.com",
		HashedPassword: "secret-hash",
	}

	summary := user.Summary()
	if summary.ID != user.ID || summary.Name != user.Name || summary.Email != user.Email {
		t.Errorf("Summary fields do not match user: %+v", summary)
	}
}
