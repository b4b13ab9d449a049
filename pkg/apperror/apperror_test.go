package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFromPassesThroughAppErrors(t *testing.T) {
	original := NotFound("post not found")

	got := From(fmt.Errorf("loading resource: %w", original))
	if got.Status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", got.Status)
	}
	if got.Message != "post not found" {
		t.Fatalf("message = %q", got.Message)
	}
}

func TestFromHidesUnknownErrors(t *testing.T) {
	got := From(errors.New("mongo: connection reset by peer"))

	if got.Status != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", got.Status)
	}
	if got.Message != "internal server error" {
		t.Fatalf("internal detail leaked: %q", got.Message)
	}
	if got.Unwrap() == nil {
		t.Fatal("cause must be preserved for logging")
	}
}

func TestValidationCarriesFields(t *testing.T) {
	err := Validation([]FieldError{{Field: "email", Message: "must be a valid email address"}})

	if err.Status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", err.Status)
	}
	if len(err.Fields) != 1 || err.Fields[0].Field != "email" {
		t.Fatalf("fields = %+v", err.Fields)
	}
}
