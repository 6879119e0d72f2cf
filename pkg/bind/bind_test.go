package bind_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shashiranjanraj/plantnet/pkg/bind"
)

type tokenInput struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"omitempty,oneof=customer seller admin"`
}

func newReq(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestJSONValid(t *testing.T) {
	var in tokenInput
	errs, err := bind.JSON(newReq(`{"email":"a@b.com","role":"seller"}`), &in)
	if err != nil {
		t.Fatal(err)
	}
	if errs != nil {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
	if in.Email != "a@b.com" || in.Role != "seller" {
		t.Errorf("unexpected bind result: %+v", in)
	}
}

func TestJSONValidationErrorsKeyedByJSONName(t *testing.T) {
	var in tokenInput
	errs, err := bind.JSON(newReq(`{"role":"seller"}`), &in)
	if err != nil {
		t.Fatal(err)
	}
	if errs == nil {
		t.Fatal("expected validation errors")
	}
	if msg, ok := errs["email"]; !ok {
		t.Errorf("expected error under json key 'email', got %v", errs)
	} else if !strings.Contains(msg, "required") {
		t.Errorf("unexpected message: %s", msg)
	}
}

func TestJSONOneOf(t *testing.T) {
	var in tokenInput
	errs, err := bind.JSON(newReq(`{"email":"a@b.com","role":"superuser"}`), &in)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := errs["role"]; !ok {
		t.Errorf("expected oneof error for role, got %v", errs)
	}
}

func TestJSONMalformed(t *testing.T) {
	var in tokenInput
	_, err := bind.JSON(newReq(`{"email":`), &in)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if !strings.Contains(err.Error(), "invalid JSON") {
		t.Errorf("unexpected error: %v", err)
	}
}
