package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"
)

// ErrorType represents the category of error
type ErrorType string

const (
	ErrorTypeAuthentication ErrorType = "Authentication"
	ErrorTypeConfiguration  ErrorType = "Configuration"
	ErrorTypeNotFound       ErrorType = "NotFound"
	ErrorTypeNetwork        ErrorType = "Network"
	ErrorTypePermission     ErrorType = "Permission"
	ErrorTypeValidation     ErrorType = "Validation"
	ErrorTypeStorage        ErrorType = "Storage"
)

// Service names the remote system an error came from
type Service string

const (
	ServiceTagManager Service = "TagManager"
	ServiceSheets     Service = "Sheets"
	ServiceWorkbook   Service = "Workbook"
	ServiceUnknown    Service = "Unknown"
)

// Error is a user-facing error with actionable guidance
type Error struct {
	Type        ErrorType
	Service     Service
	Message     string
	Cause       string
	Solutions   []string
	Verify      string
	Help        string
	Environment string
	Err         error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause == "" {
		return e.Message
	}
	return e.Message + ": " + e.Cause
}

// Unwrap exposes the wrapped error to errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.Err
}

// Detailed renders the error with its guidance as plain text
func (e *Error) Detailed() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("\nError: %s\n", e.Message))
	if e.Cause != "" {
		sb.WriteString(fmt.Sprintf("Cause: %s\n", e.Cause))
	}
	if e.Environment != "" {
		sb.WriteString(fmt.Sprintf("Environment: %s\n", e.Environment))
	}
	if len(e.Solutions) > 0 {
		sb.WriteString("\nSolutions:\n")
		for _, solution := range e.Solutions {
			sb.WriteString(fmt.Sprintf("  %s\n", solution))
		}
	}
	if e.Verify != "" {
		sb.WriteString(fmt.Sprintf("\nVerify: %s\n", e.Verify))
	}
	if e.Help != "" {
		sb.WriteString(fmt.Sprintf("Help: %s\n", e.Help))
	}

	return sb.String()
}

// Format implements fmt.Formatter; %+v includes type and service
func (e *Error) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v':
		if f.Flag('+') {
			fmt.Fprintf(f, "[%s/%s] %s", e.Type, e.Service, e.Detailed())
			return
		}
		fmt.Fprint(f, e.Error())
	default:
		fmt.Fprint(f, e.Error())
	}
}

// New creates a new Error
func New(errType ErrorType, service Service, message string) *Error {
	return &Error{
		Type:        errType,
		Service:     service,
		Message:     message,
		Environment: detectEnvironment(),
	}
}

// Wrap creates a new Error carrying err as its cause
func Wrap(errType ErrorType, service Service, message string, err error) *Error {
	e := New(errType, service, message)
	e.Err = err
	if err != nil {
		e.Cause = err.Error()
	}
	return e
}

// WithCause adds cause information
func (e *Error) WithCause(cause string) *Error {
	e.Cause = cause
	return e
}

// WithSolutions adds solution steps
func (e *Error) WithSolutions(solutions ...string) *Error {
	e.Solutions = append(e.Solutions, solutions...)
	return e
}

// WithVerify adds verification command
func (e *Error) WithVerify(verify string) *Error {
	e.Verify = verify
	return e
}

// WithHelp adds help command
func (e *Error) WithHelp(help string) *Error {
	e.Help = help
	return e
}

// NotFound reports a name or id that did not resolve against a workspace
func NotFound(kind, name string) *Error {
	return New(ErrorTypeNotFound, ServiceTagManager, fmt.Sprintf("%s %q not found in workspace", kind, name))
}

// Validation reports malformed input
func Validation(message string) *Error {
	return New(ErrorTypeValidation, ServiceUnknown, message)
}

// Configuration reports an unusable configuration
func Configuration(message string) *Error {
	return New(ErrorTypeConfiguration, ServiceUnknown, message).
		WithHelp("tagsync --help")
}

// Is reports whether err is, or wraps, an Error of the given type
func Is(err error, errType ErrorType) bool {
	var target *Error
	if !stderrors.As(err, &target) {
		return false
	}
	return target.Type == errType
}

// detectEnvironment detects the current environment
func detectEnvironment() string {
	ciVars := []string{"CI", "CONTINUOUS_INTEGRATION", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_HOME"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return "CI/CD detected"
		}
	}

	if os.Getenv("CLOUD_SHELL") == "true" || os.Getenv("GOOGLE_CLOUD_SHELL") == "true" {
		return "Cloud Shell detected"
	}

	return ""
}

// IsUserError checks if error requires user action
func IsUserError(err error) bool {
	var target *Error
	return stderrors.As(err, &target)
}

// GetExitCode returns appropriate exit code for error type
func GetExitCode(err error) int {
	var target *Error
	if !stderrors.As(err, &target) {
		return 1
	}

	switch target.Type {
	case ErrorTypeAuthentication, ErrorTypePermission:
		return 77 // EX_NOPERM
	case ErrorTypeConfiguration:
		return 78 // EX_CONFIG
	case ErrorTypeStorage:
		return 74 // EX_IOERR
	case ErrorTypeNetwork:
		return 69 // EX_UNAVAILABLE
	case ErrorTypeValidation:
		return 65 // EX_DATAERR
	default:
		return 1
	}
}
