package http

import (
	"net/http/httptest"
	"testing"

	"entreprenapp/internal/entity"
	"entreprenapp/pkg/apperror"
)

func TestCheckStructReportsFields(t *testing.T) {
	err := checkStruct(entity.RegisterRequest{
		Username: "ab", // below min=3
		Email:    "not-an-email",
		Password: "secret-enough",
		Name:     "Alice",
		Role:     "entrepreneur",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := apperror.From(err)
	if apiErr.Status != 400 {
		t.Fatalf("status = %d, want 400", apiErr.Status)
	}

	byField := map[string]string{}
	for _, fe := range apiErr.Fields {
		byField[fe.Field] = fe.Message
	}
	if _, ok := byField["username"]; !ok {
		t.Fatalf("missing username field error, got %v", byField)
	}
	if got := byField["email"]; got != "must be a valid email address" {
		t.Fatalf("email message = %q", got)
	}
}

func TestCheckStructAcceptsValidInput(t *testing.T) {
	err := checkStruct(entity.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret-enough",
		Name:     "Alice",
		Role:     "entrepreneur",
	})
	if err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestPaginationClamps(t *testing.T) {
	limit, offset := pagination(httptest.NewRequest("GET", "/?limit=500&offset=40", nil))
	if limit != maxPageSize {
		t.Fatalf("limit = %d, want clamp to %d", limit, maxPageSize)
	}
	if offset != 40 {
		t.Fatalf("offset = %d, want 40", offset)
	}

	limit, offset = pagination(httptest.NewRequest("GET", "/", nil))
	if limit != defaultPageSize || offset != 0 {
		t.Fatalf("defaults = %d/%d, want %d/0", limit, offset, defaultPageSize)
	}

	limit, _ = pagination(httptest.NewRequest("GET", "/?limit=-5", nil))
	if limit != defaultPageSize {
		t.Fatalf("negative limit = %d, want default %d", limit, defaultPageSize)
	}
}
