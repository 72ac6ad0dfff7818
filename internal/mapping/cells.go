// Package mapping translates between spreadsheet rows and Tag Manager
// resources. Every function is pure.
package mapping

import (
	"regexp"
	"strconv"
	"strings"
)

// boolCell renders a checkbox value
func boolCell(b bool) string {
	if b {
		return "true"
	}
	return ""
}

func int64Cell(n int64) string {
	if n == 0 {
		return ""
	}
	return strconv.FormatInt(n, 10)
}

// digits reports whether s is a non-empty run of ASCII digits
func digits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseDigits parses a digit-only cell; anything else yields false
func parseDigits(s string) (int64, bool) {
	if !digits(s) {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// splitList splits a comma separated cell, dropping blank entries
func splitList(cell string) []string {
	var out []string
	for _, part := range strings.Split(cell, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// VariableReference renders a variable name the way Tag Manager embeds it
func VariableReference(name string) string {
	return "{{" + name + "}}"
}

// HyperlinkFormula renders a sheet formula linking label to url
func HyperlinkFormula(url, label string) string {
	return `=HYPERLINK("` + escapeFormula(url) + `","` + escapeFormula(label) + `")`
}

func escapeFormula(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}

var hyperlinkPattern = regexp.MustCompile(`(?i)^=HYPERLINK\(\s*"(?:[^"]|"")*"\s*,\s*"((?:[^"]|"")*)"\s*\)$`)

// HyperlinkLabel returns the label of a HYPERLINK formula, or the cell
// unchanged when it is not one.
func HyperlinkLabel(cell string) string {
	match := hyperlinkPattern.FindStringSubmatch(strings.TrimSpace(cell))
	if match == nil {
		return cell
	}
	return strings.ReplaceAll(match[1], `""`, `"`)
}
