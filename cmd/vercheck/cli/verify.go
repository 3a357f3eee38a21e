package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anchore/vercheck/internal"
	"github.com/anchore/vercheck/vercheck/assertion"
)

func newVerifyCmd(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "evaluate every assertion of a fixture",
		Long: `Evaluates each "a <op> b" line of the fixture (op is one of <, = or >) and prints "T: <line>" or
"F: <line>" for the results selected by --report. Blank lines and lines starting with # or // are ignored.
Exits non-zero when any assertion does not hold or the fixture cannot be decoded.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			defer s.startProfiling()()
			return s.runVerify()
		},
	}

	flags := cmd.Flags()
	flags.String("fixture", internal.DefaultFixture, "assertion file to evaluate")
	bindFlag(flags, "fixture", "fixture")
	flags.String("report", string(assertion.DefaultReportMode), fmt.Sprintf("which evaluated assertions to print, options=[%s]", assertion.ReportModeOptions()))
	bindFlag(flags, "report", "report")

	return cmd
}

func (s *state) runVerify() error {
	verifier := assertion.Verifier{
		Mode:     s.config.ReportMode,
		Out:      s.stdout,
		Colorize: s.colorize,
	}
	return verdict(verifier.VerifyFile(s.fs, s.config.Fixture))
}
