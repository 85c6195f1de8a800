package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	provider := &ProviderRequestError{Status: 403, Name: "RateLimitError"}
	transport := NewTransportError(errors.New("connection refused"))

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"provider", provider, KindProvider},
		{"wrapped provider", fmt.Errorf("search: %w", provider), KindProvider},
		{"transport", transport, KindTransport},
		{"wrapped transport", fmt.Errorf("languages: %w", transport), KindTransport},
		{"provider inside transport", &TransportError{Message: "x", Cause: provider}, KindProvider},
		{"plain error", errors.New("boom"), KindUnknown},
		{"context canceled", context.Canceled, KindUnknown},
		{"nil", nil, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if KindProvider.String() != "provider" {
		t.Errorf("KindProvider.String() = %q", KindProvider.String())
	}
	if KindTransport.String() != "transport" {
		t.Errorf("KindTransport.String() = %q", KindTransport.String())
	}
	if KindUnknown.String() != "unknown" {
		t.Errorf("KindUnknown.String() = %q", KindUnknown.String())
	}
}

func TestProviderRequestErrorMessage(t *testing.T) {
	err := &ProviderRequestError{
		Status:  422,
		Name:    "HttpError",
		Message: "Validation Failed",
		Errors: []FieldError{
			{Resource: "Search", Field: "q", Code: "invalid"},
			{Message: "The listed users cannot be searched"},
		},
	}

	want := "HttpError: status 422: Validation Failed [Search.q: invalid; The listed users cannot be searched]"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestProviderRequestErrorUnwrap(t *testing.T) {
	cause := errors.New("raw client error")
	err := &ProviderRequestError{Status: 404, Name: "HttpError", Cause: cause}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestTransportError(t *testing.T) {
	cause := context.DeadlineExceeded
	err := NewTransportError(cause)

	if err.Name != "context.deadlineExceededError" {
		t.Errorf("Name = %q, want %q", err.Name, "context.deadlineExceededError")
	}
	if err.Message != cause.Error() {
		t.Errorf("Message = %q, want %q", err.Message, cause.Error())
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("errors.Is(err, context.DeadlineExceeded) = false, want true")
	}
	if !strings.HasPrefix(err.Error(), "transport error: ") {
		t.Errorf("Error() = %q, want transport error prefix", err.Error())
	}

	stack := err.Stack()
	if !strings.Contains(stack, "TestTransportError") {
		t.Errorf("Stack() should include the creating test function, got:\n%s", stack)
	}
}

func TestTransportErrorWithoutStack(t *testing.T) {
	err := &TransportError{Message: "hand built"}
	if err.Stack() != "" {
		t.Errorf("Stack() = %q, want empty", err.Stack())
	}
}
