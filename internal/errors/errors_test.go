package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppErrorMessageIncludesCause(t *testing.T) {
	cause := errors.New("boom")
	err := NewValidationError("bad input", cause)

	if got := err.Error(); got != "validation: bad input (caused by: boom)" {
		t.Fatalf("Error() = %q", got)
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to find the wrapped cause via Unwrap")
	}
}

func TestAppErrorMessageWithoutCause(t *testing.T) {
	err := NewNotFoundError("missing run", nil)
	if got := err.Error(); got != "not_found: missing run" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestConstructorsSetExpectedStatusCodes(t *testing.T) {
	cases := []struct {
		err  *AppError
		want int
	}{
		{NewValidationError("x", nil), http.StatusBadRequest},
		{NewNetworkError("x", nil), http.StatusBadGateway},
		{NewProcessingError("x", nil), http.StatusUnprocessableEntity},
		{NewTimeoutError("x", nil), http.StatusGatewayTimeout},
		{NewInternalError("x", nil), http.StatusInternalServerError},
		{NewNotFoundError("x", nil), http.StatusNotFound},
	}
	for _, c := range cases {
		if c.err.StatusCode != c.want {
			t.Errorf("%s: StatusCode = %d, want %d", c.err.Type, c.err.StatusCode, c.want)
		}
		if GetStatusCode(c.err) != c.want {
			t.Errorf("GetStatusCode(%s) = %d, want %d", c.err.Type, GetStatusCode(c.err), c.want)
		}
	}
}

func TestIsTypeMatchesOnlyTheRequestedType(t *testing.T) {
	err := NewTimeoutError("slow", nil)
	if !IsType(err, ErrorTypeTimeout) {
		t.Fatal("expected IsType to report true for a matching type")
	}
	if IsType(err, ErrorTypeValidation) {
		t.Fatal("expected IsType to report false for a non-matching type")
	}
}

func TestIsTypeRejectsPlainError(t *testing.T) {
	if IsType(errors.New("plain"), ErrorTypeInternal) {
		t.Fatal("expected IsType to report false for a non-AppError")
	}
}

func TestGetStatusCodeDefaultsToInternalServerErrorForPlainError(t *testing.T) {
	if got := GetStatusCode(errors.New("plain")); got != http.StatusInternalServerError {
		t.Fatalf("GetStatusCode(plain error) = %d, want %d", got, http.StatusInternalServerError)
	}
}
