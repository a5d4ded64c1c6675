package helpers

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func randInt(max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64())
}

// GeneratePassword generates a 10 character password with a capital and
// special char.
func GeneratePassword() string {
	const (
		lower   = "abcdefghijklmnopqrstuvwxyz"
		upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
		special = "!@#$%^&*"
		numbers = "0123456789"
		all     = lower + upper + special + numbers
	)

	password := make([]byte, 10)
	password[0] = upper[randInt(len(upper))]
	password[1] = special[randInt(len(special))]
	password[2] = numbers[randInt(len(numbers))]

	for i := 3; i < 10; i++ {
		password[i] = all[randInt(len(all))]
	}

	for i := range password {
		j := randInt(len(password))
		password[i], password[j] = password[j], password[i]
	}

	return string(password)
}

// AcquireAccount signs up and signs in through the app and returns the access
// token.
func AcquireAccount(t *testing.T, app *fiber.App, name, email, password string) string {
	t.Helper()

	signup := map[string]string{"name": name, "email": email, "password": password}
	resp := DoJSON(t, app, http.MethodPost, "/api/auth/signup", signup, "")
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusConflict {
		t.Fatalf("Signup failed with status %d", resp.StatusCode)
	}

	signin := map[string]string{"email": email, "password": password}
	resp = DoJSON(t, app, http.MethodPost, "/api/auth/signin", signin, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Signin failed with status %d", resp.StatusCode)
	}

	var envelope struct {
		Data struct {
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	ParseJSON(t, resp, &envelope)
	if envelope.Data.AccessToken == "" {
		t.Fatal("Signin returned no access token")
	}

	return envelope.Data.AccessToken
}

// DoJSON sends a JSON request through the in-process app, optionally with a
// bearer token.
func DoJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request %s %s failed: %v", method, path, err)
	}

	return resp
}
