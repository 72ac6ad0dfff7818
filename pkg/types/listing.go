package types

// Listing summarizes a read of remote resources into a sheet
type Listing struct {
	Operation string   `json:"operation" yaml:"operation"`
	Sheet     string   `json:"sheet" yaml:"sheet"`
	Rows      int      `json:"rows" yaml:"rows"`
	Warnings  []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Warn records a non-fatal problem met while listing
func (l *Listing) Warn(message string) {
	l.Warnings = append(l.Warnings, message)
}
