package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormat(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeInvalidSort, "unknown sort %q", "updated"),
			want: `INVALID_SORT: unknown sort "updated"`,
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeInvalidConfig, errors.New("expected '='"), "parse %s", "config.toml"),
			want: "INVALID_CONFIG: parse config.toml: expected '='",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("toml: line 3")
	err := Wrap(ErrCodeInvalidConfig, cause, "github.api_url")

	if !errors.Is(err, cause) {
		t.Error("cause not reachable through errors.Is")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap() should return the cause")
	}
}

func TestCodeLookup(t *testing.T) {
	filter := New(ErrCodeInvalidFilter, "stars must be >= 0")

	tests := []struct {
		name     string
		err      error
		code     Code
		wantIs   bool
		wantCode Code
	}{
		{"direct", filter, ErrCodeInvalidFilter, true, ErrCodeInvalidFilter},
		{"other code", filter, ErrCodeInvalidSort, false, ErrCodeInvalidFilter},
		{"fmt wrapped", fmt.Errorf("search: %w", filter), ErrCodeInvalidFilter, true, ErrCodeInvalidFilter},
		{"outermost code wins", Wrap(ErrCodeInvalidConfig, filter, "config"), ErrCodeInvalidConfig, true, ErrCodeInvalidConfig},
		{"plain error", errors.New("dial tcp: refused"), ErrCodeInvalidFilter, false, ""},
		{"nil", nil, ErrCodeInvalidFilter, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.wantIs {
				t.Errorf("Is() = %v, want %v", got, tt.wantIs)
			}
			if got := GetCode(tt.err); got != tt.wantCode {
				t.Errorf("GetCode() = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded drops code", New(ErrCodeInvalidSort, "unknown sort %q", "updated"), `unknown sort "updated"`},
		{"provider with message", &ProviderRequestError{Status: 422, Name: "HttpError", Message: "Validation Failed"}, "GitHub returned 422: Validation Failed"},
		{"provider without message", &ProviderRequestError{Status: 503, Name: "HttpError"}, "GitHub returned 503"},
		{"wrapped provider", fmt.Errorf("search: %w", &ProviderRequestError{Status: 403, Message: "API rate limit exceeded"}), "GitHub returned 403: API rate limit exceeded"},
		{"plain", errors.New("dial tcp: refused"), "dial tcp: refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
