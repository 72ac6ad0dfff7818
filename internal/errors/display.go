package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/viper"
)

// DisplayError writes err to stderr with colored guidance
func DisplayError(err error) {
	configureColor()
	Fprint(os.Stderr, err)
}

// Fprint writes err to w; typed errors include their guidance
func Fprint(w io.Writer, err error) {
	var typed *Error
	if !stderrors.As(err, &typed) {
		fmt.Fprintln(w, color.RedString("Error: %v", err))
		return
	}

	colorFunc := getErrorStyle(typed.Type)

	fmt.Fprintf(w, "\n%s\n", colorFunc(typed.Message))

	if typed.Cause != "" {
		fmt.Fprintf(w, "   %s %s\n", color.YellowString("Cause:"), color.HiBlackString(typed.Cause))
	}

	if typed.Environment != "" {
		fmt.Fprintf(w, "   %s %s\n", color.CyanString("Environment:"), color.HiBlackString(typed.Environment))
	}

	if len(typed.Solutions) > 0 {
		fmt.Fprintf(w, "\n   %s\n", color.GreenString("Solutions:"))
		for i, solution := range typed.Solutions {
			fmt.Fprintf(w, "   %s %s\n", color.HiBlackString(fmt.Sprintf("%d.", i+1)), solution)
		}
	}

	if typed.Verify != "" {
		fmt.Fprintf(w, "\n   %s %s\n", color.BlueString("Verify:"), color.HiWhiteString(typed.Verify))
	}

	if typed.Help != "" {
		fmt.Fprintf(w, "   %s %s\n", color.MagentaString("Help:"), color.HiWhiteString(typed.Help))
	}

	fmt.Fprintln(w)
}

// getErrorStyle returns the appropriate color function for an error type
func getErrorStyle(errType ErrorType) func(format string, a ...interface{}) string {
	switch errType {
	case ErrorTypeConfiguration, ErrorTypeValidation:
		return color.YellowString
	case ErrorTypeNotFound:
		return color.CyanString
	case ErrorTypeStorage:
		return color.MagentaString
	default:
		return color.RedString
	}
}

// FormatErrorWithContext formats an error without color for CI/CD logs
func FormatErrorWithContext(err error, context map[string]string) string {
	var sb strings.Builder

	var typed *Error
	if !stderrors.As(err, &typed) {
		sb.WriteString(fmt.Sprintf("Error: %v\n", err))
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("Error: %s\n", typed.Message))
	sb.WriteString(fmt.Sprintf("Type: %s/%s\n", typed.Type, typed.Service))

	if typed.Cause != "" {
		sb.WriteString(fmt.Sprintf("Cause: %s\n", typed.Cause))
	}

	if len(context) > 0 {
		sb.WriteString("\nContext:\n")
		for k, v := range context {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", k, v))
		}
	}

	if len(typed.Solutions) > 0 {
		sb.WriteString("\nSolutions:\n")
		for i, solution := range typed.Solutions {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, solution))
		}
	}

	if typed.Verify != "" {
		sb.WriteString(fmt.Sprintf("\nVerify: %s\n", typed.Verify))
	}

	if typed.Help != "" {
		sb.WriteString(fmt.Sprintf("Help: %s\n", typed.Help))
	}

	return sb.String()
}

func configureColor() {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TAGSYNC_NO_COLOR") != "" || getViperBool("output.no_color") {
		color.NoColor = true
	}
}

// getViperBool safely gets a boolean value from viper
func getViperBool(key string) bool {
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	return false
}
