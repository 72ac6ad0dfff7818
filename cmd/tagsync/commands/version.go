package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yairfalse/tagsync/internal/output"
)

// Set by main from -ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	BuiltBy   = "unknown"
)

// SetVersionInfo keeps the defaults for empty values
func SetVersionInfo(version, commit, buildTime, builtBy string) {
	for _, v := range []struct {
		dst *string
		src string
	}{
		{&Version, version},
		{&Commit, commit},
		{&BuildTime, buildTime},
		{&BuiltBy, builtBy},
	} {
		if v.src != "" {
			*v.dst = v.src
		}
	}
}

// BuildInfo describes the running binary
type BuildInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildTime string `json:"buildTime" yaml:"buildTime"`
	BuiltBy   string `json:"builtBy" yaml:"builtBy"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
	Platform  string `json:"platform" yaml:"platform"`
}

// currentBuild falls back to the module version for `go install` builds
func currentBuild() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		BuiltBy:   BuiltBy,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if info.Version == "dev" {
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
	}
	return info
}

func newVersionCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := currentBuild()
			if short, _ := cmd.Flags().GetBool("short"); short {
				fmt.Fprintln(cmd.OutOrStdout(), info.Version)
				return nil
			}
			format := ""
			if opts.cfg != nil {
				format = opts.cfg.Output.Format
			}
			return writeVersion(cmd.OutOrStdout(), info, format)
		},
	}

	cmd.Flags().Bool("short", false, "show only version number")

	return cmd
}

// writeVersion follows --output so scripts can read the build details
func writeVersion(w io.Writer, info BuildInfo, format string) error {
	switch output.Format(format) {
	case output.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case output.FormatYAML, "yml":
		return yaml.NewEncoder(w).Encode(info)
	}

	fmt.Fprintf(w, "tagsync %s\n", info.Version)
	fmt.Fprintf(w, "  commit:   %s\n", info.Commit)
	fmt.Fprintf(w, "  built:    %s by %s\n", info.BuildTime, info.BuiltBy)
	fmt.Fprintf(w, "  go:       %s %s\n", info.GoVersion, info.Platform)
	return nil
}
