package errors

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Kind is the diagnostic class of a failed provider request.
type Kind int

const (
	// KindUnknown matches neither of the shapes below.
	KindUnknown Kind = iota
	// KindProvider is a structured error response from the provider.
	KindProvider
	// KindTransport is a failure raised while issuing a request.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindProvider:
		return "provider"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// FieldError is a single validation failure reported by the provider,
// e.g. an unparsable qualifier in a search query.
type FieldError struct {
	Resource string `json:"resource,omitempty"`
	Field    string `json:"field,omitempty"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message,omitempty"`
}

func (f FieldError) String() string {
	if f.Message != "" {
		return f.Message
	}
	return fmt.Sprintf("%s.%s: %s", f.Resource, f.Field, f.Code)
}

// ProviderRequestError is returned when the provider completed a request with
// an error response.
type ProviderRequestError struct {
	Status           int          // HTTP status code
	Name             string       // Machine-readable name, e.g. "HttpError", "RateLimitError"
	Message          string       // Provider message
	DocumentationURL string       // Link to the provider's documentation for this error
	Errors           []FieldError // Field-level validation errors (optional)
	Cause            error        // The original client error
}

// Error implements the error interface.
func (e *ProviderRequestError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: status %d", e.Name, e.Status)
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Errors) > 0 {
		msgs := make([]string, len(e.Errors))
		for i, fe := range e.Errors {
			msgs[i] = fe.String()
		}
		fmt.Fprintf(&b, " [%s]", strings.Join(msgs, "; "))
	}
	return b.String()
}

// Unwrap returns the original client error.
func (e *ProviderRequestError) Unwrap() error { return e.Cause }

// TransportError is returned when a request failed without a structured
// provider response.
type TransportError struct {
	Name    string // Go type of the cause, e.g. "*url.Error"
	Message string
	Cause   error
	traced  error
}

// NewTransportError wraps cause and records the current call stack.
func NewTransportError(cause error) *TransportError {
	return &TransportError{
		Name:    typeName(cause),
		Message: cause.Error(),
		Cause:   cause,
		traced:  pkgerrors.WithStack(cause),
	}
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return "transport error: " + e.Message
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error { return e.Cause }

// Stack returns the stack trace captured by [NewTransportError], one frame
// per line. Empty if the error was built by hand.
func (e *TransportError) Stack() string {
	if e.traced == nil {
		return ""
	}
	st, ok := e.traced.(interface{ StackTrace() pkgerrors.StackTrace })
	if !ok {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%+v", st.StackTrace()))
}

// Classify reports which kind of request failure err is. Provider errors win
// over transport errors when both are in the chain.
func Classify(err error) Kind {
	var pe *ProviderRequestError
	if errors.As(err, &pe) {
		return KindProvider
	}
	var te *TransportError
	if errors.As(err, &te) {
		return KindTransport
	}
	return KindUnknown
}

func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}
