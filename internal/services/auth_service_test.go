package services_test

import (
	"errors"
	"testing"

	"github.com/Mofathy183/beggy-sub000/internal/models"
	"github.com/Mofathy183/beggy-sub000/internal/services"
	"github.com/Mofathy183/beggy-sub000/internal/types"
)

func TestSignupAndSignin(t *testing.T) {
	db := setupTestDB(t)

	user, err := services.Signup(db, services.SignupInput{
		Name:     "Mona",
		Email:    "mona@example.com",
		Password: "correct-horse-42",
		Gender:   "female",
	})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if user.Role != models.RoleUser {
		t.Errorf("Expected default role USER, got %s", user.Role)
	}
	if user.Gender != models.GenderFemale {
		t.Errorf("Expected gender normalized to FEMALE, got %s", user.Gender)
	}
	if user.Password == "correct-horse-42" {
		t.Error("Password stored in plain text")
	}

	signedIn, err := services.Signin(db, services.SigninInput{
		Email:    "mona@example.com",
		Password: "correct-horse-42",
	})
	if err != nil {
		t.Fatalf("Signin failed: %v", err)
	}
	if signedIn.ID != user.ID {
		t.Errorf("Signin returned wrong user: %s != %s", signedIn.ID, user.ID)
	}
}

func TestSigninWrongCredentials(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.Signup(db, services.SignupInput{
		Name:     "Mona",
		Email:    "mona@example.com",
		Password: "correct-horse-42",
	})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	// Wrong password and unknown email must be indistinguishable.
	_, err = services.Signin(db, services.SigninInput{
		Email:    "mona@example.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, types.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for wrong password, got %v", err)
	}

	_, err = services.Signin(db, services.SigninInput{
		Email:    "nobody@example.com",
		Password: "correct-horse-42",
	})
	if !errors.Is(err, types.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for unknown email, got %v", err)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)

	input := services.SignupInput{
		Name:     "Mona",
		Email:    "mona@example.com",
		Password: "correct-horse-42",
	}
	if _, err := services.Signup(db, input); err != nil {
		t.Fatalf("First signup failed: %v", err)
	}

	_, err := services.Signup(db, input)
	if !errors.Is(err, types.ErrUniqueConstraint) {
		t.Errorf("Expected ErrUniqueConstraint, got %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()

	user, err := services.Signup(db, services.SignupInput{
		Name:     "Mona",
		Email:    "mona@example.com",
		Password: "correct-horse-42",
	})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	token, err := services.IssueToken(cfg, user)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	claims, err := services.ValidateToken(cfg, token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != user.ID.String() {
		t.Errorf("Claims carry wrong user id: %s", claims.UserID)
	}
	if claims.Role != string(models.RoleUser) {
		t.Errorf("Claims carry wrong role: %s", claims.Role)
	}

	// A token signed with another secret must be rejected.
	otherCfg := testConfig()
	otherCfg.JWTSecret = "another-secret"
	if _, err := services.ValidateToken(otherCfg, token); !errors.Is(err, types.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for wrong secret, got %v", err)
	}
}

func TestSignupValidation(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.Signup(db, services.SignupInput{
		Name:     "M",
		Email:    "not-an-email",
		Password: "short",
	})
	if !errors.Is(err, types.ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}
}
