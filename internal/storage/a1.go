package storage

import (
	"fmt"
	"strings"
)

// ColumnLetters converts a 1-based column index to A1 letters
func ColumnLetters(column int) string {
	var letters []byte
	for column > 0 {
		column--
		letters = append([]byte{byte('A' + column%26)}, letters...)
		column /= 26
	}
	return string(letters)
}

// A1 renders an open-ended block such as 'Event Tag Settings'!A2:AA
func A1(sheet string, s Shape) string {
	first := ColumnLetters(s.Column)
	last := ColumnLetters(s.Column + s.NumColumns - 1)
	return fmt.Sprintf("%s!%s%d:%s", quoteSheet(sheet), first, s.Row, last)
}

// SheetColumns renders whole columns of a sheet, used for appends
func SheetColumns(sheet string, numColumns int) string {
	return fmt.Sprintf("%s!A:%s", quoteSheet(sheet), ColumnLetters(numColumns))
}

func quoteSheet(sheet string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}
