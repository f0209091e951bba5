package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"nufmt/internal/version"
)

type versionInfo struct {
	Version   string
	GitCommit string
	BuildDate string
}

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

func newVersionCmd(opts *rootOptions) *cobra.Command {
	var (
		outFormat string
		full      bool
	)
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show nufmt build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := collectVersionInfo()
			switch strings.ToLower(outFormat) {
			case "json":
				return renderVersionJSON(cmd.OutOrStdout(), info)
			case "pretty":
				mode, err := readColorMode(opts.color)
				if err != nil {
					return &exitStatus{code: exitError, err: err}
				}
				renderVersionPretty(cmd.OutOrStdout(), info, full, mode.enabled(cmd.OutOrStdout()))
				return nil
			default:
				return &exitStatus{code: exitError, err: fmt.Errorf("unsupported format %q (must be pretty or json)", outFormat)}
			}
		},
	}
	cmd.Flags().StringVar(&outFormat, "format", "pretty", "output format (pretty|json)")
	cmd.Flags().BoolVar(&full, "full", false, "include commit and build date")
	return cmd
}

func collectVersionInfo() versionInfo {
	v := strings.TrimSpace(version.Version)
	if v == "" {
		v = "dev"
	}
	return versionInfo{
		Version:   v,
		GitCommit: strings.TrimSpace(version.GitCommit),
		BuildDate: strings.TrimSpace(version.BuildDate),
	}
}

func renderVersionPretty(out io.Writer, info versionInfo, full, colored bool) {
	v := info.Version
	if colored {
		v = version.Colored(true)
	}
	fmt.Fprintf(out, "nufmt %s\n", v)
	if full {
		fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(info.GitCommit))
		fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(info.BuildDate))
	}
}

func renderVersionJSON(out io.Writer, info versionInfo) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(versionPayload{
		Tool:      "nufmt",
		Version:   info.Version,
		GitCommit: info.GitCommit,
		BuildDate: info.BuildDate,
	})
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
