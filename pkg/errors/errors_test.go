package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/stmdeploy/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "option_error",
			code:    errors.ErrOption,
			message: "board configuration object should be provided",
			wantStr: "[OPTION] board configuration object should be provided",
		},
		{
			name:    "tooling_error",
			code:    errors.ErrTooling,
			message: "unsupported builder: cmake",
			wantStr: "[TOOLING] unsupported builder: cmake",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}
			if err.Details == nil {
				t.Error("New() details should be initialized")
			}
			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("exit status 2")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrapf(baseErr, errors.ErrActionExecute, "command failed: %s", "make")

		if err.Code != errors.ErrActionExecute {
			t.Errorf("Wrapf() code = %v, want %v", err.Code, errors.ErrActionExecute)
		}
		if want := "[ACTION_EXECUTE] command failed: make: exit status 2"; err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
		if !stderrors.Is(err, baseErr) {
			t.Error("Wrapf() should preserve wrapped error")
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		if err := errors.Wrap(nil, errors.ErrInternal, "internal error"); err != nil {
			t.Error("Wrap(nil) should return nil")
		}
	})
}

func TestWithDetails(t *testing.T) {
	err := errors.New(errors.ErrPartialSync, "not all operations executed").
		WithDetail("executed", 2).
		WithDetails(map[string]interface{}{"total": 3})

	if err.Details["executed"] != 2 || err.Details["total"] != 3 {
		t.Errorf("unexpected details: %v", err.Details)
	}
	if got := errors.GetErrorDetails(err); got["total"] != 3 {
		t.Errorf("GetErrorDetails() = %v", got)
	}
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{"matching_code", errors.New(errors.ErrOption, "x"), errors.ErrOption, true},
		{"different_code", errors.New(errors.ErrOption, "x"), errors.ErrTooling, false},
		{"wrapped_error", errors.Wrap(stderrors.New("base"), errors.ErrFileWrite, "denied"), errors.ErrFileWrite, true},
		{"standard_error", stderrors.New("standard error"), errors.ErrOption, false},
		{"nil_error", nil, errors.ErrOption, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	fileErr := errors.Wrap(rootCause, errors.ErrFileAccess, "cannot read board file")
	configErr := errors.Wrap(fileErr, errors.ErrConfigLoad, "failed to load board")

	if got := errors.GetErrorCode(configErr); got != errors.ErrConfigLoad {
		t.Errorf("GetErrorCode() = %v, want %v", got, errors.ErrConfigLoad)
	}
	if got := errors.GetErrorCode(stderrors.New("plain")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode() = %v, want %v", got, errors.ErrUnknown)
	}

	var middle *errors.DeployError
	if !stderrors.As(configErr.Unwrap(), &middle) || middle.Code != errors.ErrFileAccess {
		t.Error("middle error should have ErrFileAccess code")
	}
	if !stderrors.Is(configErr, rootCause) {
		t.Error("should find root cause with errors.Is")
	}
	if !stderrors.Is(configErr, errors.New(errors.ErrConfigLoad, "")) {
		t.Error("errors.Is should match on code")
	}
}
