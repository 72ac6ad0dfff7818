package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/yairfalse/tagsync/pkg/types"
)

// TableFormatter renders results as aligned text
type TableFormatter struct {
	Colors bool
}

// FormatReport prints one line per outcome followed by the totals
func (f *TableFormatter) FormatReport(report *types.Report, writer io.Writer) error {
	fmt.Fprintf(writer, "Run: %s (%s)\n", report.RunID, report.Operation)
	if !report.FinishedAt.IsZero() {
		fmt.Fprintf(writer, "Duration: %s\n", report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
	}
	fmt.Fprintln(writer)

	if len(report.Outcomes) == 0 {
		fmt.Fprintln(writer, "Nothing to do.")
		return nil
	}

	w := tabwriter.NewWriter(writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ROW\tENTITY\tID\tACTION\tSTATUS\tMESSAGE")
	fmt.Fprintln(w, "---\t------\t--\t------\t------\t-------")
	for _, outcome := range report.Outcomes {
		row := ""
		if outcome.Row > 0 {
			row = fmt.Sprintf("%d", outcome.Row)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			row,
			outcome.Entity,
			outcome.EntityID,
			outcome.Action,
			f.status(outcome.Status),
			firstLine(outcome.Message),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	counts := report.Counts()
	fmt.Fprintf(writer, "\nApplied: %d  Failed: %d  Skipped: %d\n", counts.Applied, counts.Failed, counts.Skipped)
	return nil
}

// FormatListing prints the sheet that received the rows and any warnings
func (f *TableFormatter) FormatListing(listing *types.Listing, writer io.Writer) error {
	fmt.Fprintf(writer, "%s: wrote %d rows to %q\n", listing.Operation, listing.Rows, listing.Sheet)
	for _, warning := range listing.Warnings {
		fmt.Fprintf(writer, "  %s %s\n", f.paint("warning:", color.FgYellow), warning)
	}
	return nil
}

func (f *TableFormatter) status(status types.OutcomeStatus) string {
	switch status {
	case types.OutcomeApplied:
		return f.paint(string(status), color.FgGreen)
	case types.OutcomeFailed:
		return f.paint(string(status), color.FgRed, color.Bold)
	case types.OutcomeSkipped:
		return f.paint(string(status), color.FgYellow)
	default:
		return string(status)
	}
}

func (f *TableFormatter) paint(text string, attrs ...color.Attribute) string {
	if !f.Colors {
		return text
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(text)
}

// firstLine keeps multi-line summaries on one table row
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}
