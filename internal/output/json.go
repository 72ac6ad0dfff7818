package output

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/yairfalse/tagsync/pkg/types"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	Pretty bool
}

// reportDocument adds the derived counts to the serialized report
type reportDocument struct {
	types.Report `yaml:",inline"`
	Counts types.ReportCounts `json:"counts" yaml:"counts"`
}

func (j *JSONFormatter) FormatReport(report *types.Report, writer io.Writer) error {
	return j.encode(reportDocument{Report: *report, Counts: report.Counts()}, writer)
}

func (j *JSONFormatter) FormatListing(listing *types.Listing, writer io.Writer) error {
	return j.encode(listing, writer)
}

func (j *JSONFormatter) encode(v interface{}, writer io.Writer) error {
	enc := json.NewEncoder(writer)
	if j.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// YAMLFormatter formats output as YAML
type YAMLFormatter struct{}

func (y *YAMLFormatter) FormatReport(report *types.Report, writer io.Writer) error {
	return y.encode(reportDocument{Report: *report, Counts: report.Counts()}, writer)
}

func (y *YAMLFormatter) FormatListing(listing *types.Listing, writer io.Writer) error {
	return y.encode(listing, writer)
}

func (y *YAMLFormatter) encode(v interface{}, writer io.Writer) error {
	enc := yaml.NewEncoder(writer)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
