package types

import (
	"strings"
	"time"
)

// Row is one spreadsheet row with cells normalized to strings
type Row []string

// NewRow returns a row of the given width with every cell empty
func NewRow(width int) Row {
	return make(Row, width)
}

// Cell returns the trimmed cell at index i, or "" when the row is shorter
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[i])
}

// Flag interprets the cell at index i as a checkbox
func (r Row) Flag(i int) bool {
	return strings.EqualFold(r.Cell(i), "true")
}

// FromEnd returns the cell n positions from the end (1 is the last cell)
func (r Row) FromEnd(n int) string {
	return r.Cell(len(r) - n)
}

// FlagFromEnd interprets the cell n positions from the end as a checkbox
func (r Row) FlagFromEnd(n int) bool {
	return r.Flag(len(r) - n)
}

// Padded returns a copy of the row extended or truncated to width
func (r Row) Padded(width int) Row {
	out := make(Row, width)
	copy(out, r)
	return out
}

// IsBlank reports whether the first cell is empty. Such rows are treated as
// absent when a range is read.
func (r Row) IsBlank() bool {
	return r.Cell(0) == ""
}

// ChangelogDateFormat renders M/D/YYYY
const ChangelogDateFormat = "1/2/2006"

// ChangeRecord is one append-only changelog entry
type ChangeRecord struct {
	Timestamp  time.Time `json:"timestamp"`
	EntityName string    `json:"entity_name"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Action     string    `json:"action"`
	URL        string    `json:"url"`
	Actor      string    `json:"actor"`
}

// Row renders the record in changelog column order
func (c ChangeRecord) Row() Row {
	return Row{
		c.Timestamp.Format(ChangelogDateFormat),
		c.EntityName,
		c.EntityType,
		c.EntityID,
		c.Action,
		c.URL,
		c.Actor,
	}
}
