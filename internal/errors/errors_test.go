package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError(t *testing.T) {
	tests := []struct {
		name    string
		err     *AppError
		wantMsg string
	}{
		{
			name:    "validation error without cause",
			err:     NewValidationError("invalid input", nil),
			wantMsg: "[validation] invalid input",
		},
		{
			name:    "authentication error with cause",
			err:     NewAuthenticationError("auth failed", errors.New("token expired")),
			wantMsg: "[authentication] auth failed: token expired",
		},
		{
			name: "upstream error with details",
			err: NewUpstreamError("sync rejected", errors.New("status code: 400"), map[string]interface{}{
				"path":   "/applications/guestbook/sync",
				"status": 400,
			}),
			wantMsg: "[upstream] sync rejected: status code: 400",
		},
		{
			name:    "configuration error",
			err:     NewConfigurationError("ARGOCD_SERVER environment variable is required", nil),
			wantMsg: "[configuration] ARGOCD_SERVER environment variable is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.wantMsg)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := NewUpstreamError("wrapper", cause, nil)

	if got := err.Unwrap(); got != cause {
		t.Errorf("AppError.Unwrap() = %v, want %v", got, cause)
	}
}

func TestAppError_Is(t *testing.T) {
	err1 := NewValidationError("error1", nil)
	err2 := NewValidationError("error2", nil)
	err3 := NewUpstreamError("error3", nil, nil)

	if !err1.Is(err2) {
		t.Error("Two validation errors should match")
	}

	if err1.Is(err3) {
		t.Error("Validation error should not match upstream error")
	}

	wrapped := fmt.Errorf("get application: %w", NewNotFoundError("missing", nil))
	if !errors.Is(wrapped, NewNotFoundError("other", nil)) {
		t.Error("errors.Is should see through wrapping")
	}
}

func TestErrorTypeHelpers(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		checkFunc func(error) bool
		want      bool
	}{
		{
			name:      "IsValidationError with validation error",
			err:       NewValidationError("test", nil),
			checkFunc: IsValidationError,
			want:      true,
		},
		{
			name:      "IsValidationError with non-validation error",
			err:       NewUpstreamError("test", nil, nil),
			checkFunc: IsValidationError,
			want:      false,
		},
		{
			name:      "IsAuthenticationError with auth error",
			err:       NewAuthenticationError("test", nil),
			checkFunc: IsAuthenticationError,
			want:      true,
		},
		{
			name:      "IsUpstreamError with upstream error",
			err:       NewUpstreamError("test", nil, nil),
			checkFunc: IsUpstreamError,
			want:      true,
		},
		{
			name:      "IsNotFoundError with not found error",
			err:       NewNotFoundError("test", nil),
			checkFunc: IsNotFoundError,
			want:      true,
		},
		{
			name:      "IsTimeoutError with wrapped timeout",
			err:       fmt.Errorf("list: %w", NewTimeoutError("test", nil)),
			checkFunc: IsTimeoutError,
			want:      true,
		},
		{
			name:      "IsConfigurationError with configuration error",
			err:       NewConfigurationError("test", nil),
			checkFunc: IsConfigurationError,
			want:      true,
		},
		{
			name:      "Helper with standard error",
			err:       errors.New("standard error"),
			checkFunc: IsValidationError,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.checkFunc(tt.err); got != tt.want {
				t.Errorf("Error type check = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTypeOf(t *testing.T) {
	if got := TypeOf(NewTimeoutError("slow", nil)); got != ErrorTypeTimeout {
		t.Errorf("TypeOf() = %v, want %v", got, ErrorTypeTimeout)
	}
	if got := TypeOf(errors.New("plain")); got != ErrorTypeInternal {
		t.Errorf("TypeOf(plain) = %v, want %v", got, ErrorTypeInternal)
	}
}

func TestGetErrorDetails(t *testing.T) {
	details := map[string]interface{}{
		"field": "name",
		"value": "test",
	}

	err := NewValidationError("invalid", details)
	got := GetErrorDetails(err)

	if got["field"] != "name" || got["value"] != "test" {
		t.Errorf("GetErrorDetails() = %v, want %v", got, details)
	}

	// Test with non-AppError
	standardErr := errors.New("standard error")
	if got := GetErrorDetails(standardErr); got != nil {
		t.Errorf("GetErrorDetails(standardError) = %v, want nil", got)
	}
}

func TestAllErrorTypes(t *testing.T) {
	errs := []struct {
		name string
		err  *AppError
		typ  ErrorType
	}{
		{"configuration", NewConfigurationError("test", nil), ErrorTypeConfiguration},
		{"validation", NewValidationError("test", nil), ErrorTypeValidation},
		{"authentication", NewAuthenticationError("test", nil), ErrorTypeAuthentication},
		{"upstream", NewUpstreamError("test", nil, nil), ErrorTypeUpstream},
		{"parsing", NewParsingError("test", nil, nil), ErrorTypeParsing},
		{"not found", NewNotFoundError("test", nil), ErrorTypeNotFound},
		{"timeout", NewTimeoutError("test", nil), ErrorTypeTimeout},
		{"internal", NewInternalError("test", nil), ErrorTypeInternal},
	}

	for _, e := range errs {
		t.Run(e.name, func(t *testing.T) {
			if e.err.Type != e.typ {
				t.Errorf("Error type = %v, want %v", e.err.Type, e.typ)
			}
			if e.err.Message != "test" {
				t.Errorf("Error message = %v, want 'test'", e.err.Message)
			}
		})
	}
}
