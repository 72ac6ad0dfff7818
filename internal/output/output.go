package output

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/yairfalse/tagsync/pkg/types"
)

// Format names an output format
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formatter renders run results
type Formatter interface {
	FormatReport(report *types.Report, writer io.Writer) error
	FormatListing(listing *types.Listing, writer io.Writer) error
}

// NewFormatter creates a formatter based on format type
func NewFormatter(format string, colors bool) (Formatter, error) {
	switch Format(format) {
	case "", FormatTable:
		return &TableFormatter{Colors: colors}, nil
	case FormatJSON:
		return &JSONFormatter{Pretty: true}, nil
	case FormatYAML, "yml":
		return &YAMLFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// ColorEnabled reports whether colored output suits w
func ColorEnabled(w io.Writer, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
