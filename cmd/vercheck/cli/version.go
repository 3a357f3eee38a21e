package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anchore/vercheck/internal/version"
)

func newVersionCmd(s *state) *cobra.Command {
	var outputFormat string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "show the version",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return s.printVersion(outputFormat)
		},
	}
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "format to show version information (available=[text, json])")
	return cmd
}

func (s *state) printVersion(outputFormat string) error {
	versionInfo := version.FromBuild()
	switch outputFormat {
	case "text":
		for _, row := range [][2]string{
			{"Application:", versionInfo.Application},
			{"Version:", versionInfo.Version},
			{"BuildDate:", versionInfo.BuildDate},
			{"GitCommit:", versionInfo.GitCommit},
			{"GitTreeState:", versionInfo.GitTreeState},
			{"Platform:", versionInfo.Platform},
			{"GoVersion:", versionInfo.GoVersion},
			{"Compiler:", versionInfo.Compiler},
		} {
			if _, err := fmt.Fprintf(s.stdout, "%-14s %s\n", row[0], row[1]); err != nil {
				return err
			}
		}
	case "json":
		enc := json.NewEncoder(s.stdout)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", " ")
		if err := enc.Encode(&versionInfo); err != nil {
			return fmt.Errorf("failed to show version information: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
	return nil
}
