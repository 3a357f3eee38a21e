package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anchore/vercheck/internal"
	"github.com/anchore/vercheck/internal/file"
	"github.com/anchore/vercheck/internal/log"
	"github.com/anchore/vercheck/vercheck/advisory"
	"github.com/anchore/vercheck/vercheck/assertion"
	"github.com/anchore/vercheck/vercheck/corpus"
	"github.com/anchore/vercheck/vercheck/vercheckerr"
)

type generateOptions struct {
	check bool
}

func newGenerateCmd(s *state) *cobra.Command {
	opts := generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "build the assertion fixture from advisories and verify it",
		Long: `Reads advisories (a zip archive, a directory of JSON records or a single JSON file; by default the
archive downloaded by fetch), sorts the affected versions of every package and writes one "a < b"
assertion per adjacent pair to the fixture. The written fixture is verified right away.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			defer s.startProfiling()()
			return s.runGenerate(opts)
		},
	}

	flags := cmd.Flags()
	flags.String("source", "", "advisory archive, directory or JSON file (default: the fetched archive)")
	bindFlag(flags, "source", "advisories.source")
	flags.String("fixture", internal.DefaultFixture, "assertion file to write")
	bindFlag(flags, "fixture", "fixture")
	flags.String("report", string(assertion.DefaultReportMode), fmt.Sprintf("which evaluated assertions to print, options=[%s]", assertion.ReportModeOptions()))
	bindFlag(flags, "report", "report")
	flags.StringSlice("exclude-package", nil, "leave the named package out of the corpus (can be given multiple times)")
	bindFlag(flags, "exclude-package", "exclude-packages")
	flags.BoolVar(&opts.check, "check", false, "compare with the existing fixture instead of writing it, failing on any difference")

	return cmd
}

func (s *state) runGenerate(opts generateOptions) error {
	source := s.config.Advisories.SourcePath()
	if s.config.Advisories.Source == "" && !file.Exists(s.fs, source) {
		return fmt.Errorf("no advisory archive found at %q (run 'fetch' first or provide --source)", source)
	}

	records, err := advisory.Read(s.fs, source)
	switch {
	case err != nil && len(records) == 0:
		return fmt.Errorf("unable to read advisories: %w", err)
	case err != nil:
		log.Warnf("some advisories could not be read: %v", err)
	}

	c := corpus.Build(records,
		corpus.WithEcosystem(s.config.Advisories.Ecosystem),
		corpus.WithExcludedPackages(s.config.ExcludePackages...),
	)
	set := assertion.Generate(c)

	if !s.config.Quiet {
		if err := writeSummary(s.stderr, summary{
			source:     source,
			advisories: len(records),
			corpus:     c,
			assertions: set.Len(),
		}); err != nil {
			log.Debugf("unable to write summary: %v", err)
		}
	}

	verifier := assertion.Verifier{
		Mode:     s.config.ReportMode,
		Out:      s.stdout,
		Colorize: s.colorize,
	}

	if opts.check {
		if err := s.checkFixture(set); err != nil {
			return err
		}
		report, err := verifier.Verify(set.Strings())
		return verdict(report, err)
	}

	if err := assertion.WriteFile(s.fs, s.config.Fixture, set); err != nil {
		return err
	}
	log.Infof("wrote %d assertions to %q", set.Len(), s.config.Fixture)

	report, err := verifier.VerifyFile(s.fs, s.config.Fixture)
	return verdict(report, err)
}

// checkFixture compares the generated assertions with the stored fixture and prints a line diff on mismatch.
func (s *state) checkFixture(set *assertion.Set) error {
	if !file.Exists(s.fs, s.config.Fixture) {
		return fmt.Errorf("%w: no fixture found at %q", vercheckerr.ErrFixtureOutOfDate, s.config.Fixture)
	}
	existing, err := assertion.ReadFile(s.fs, s.config.Fixture)
	if err != nil {
		return err
	}

	diff := lineDiff(joinLines(existing), joinLines(set.Strings()))
	if diff == "" {
		log.Infof("fixture %q is up to date", s.config.Fixture)
		return nil
	}
	if _, err := fmt.Fprint(s.stderr, diff); err != nil {
		log.Debugf("unable to write diff: %v", err)
	}
	return fmt.Errorf("%w: %q differs from the generated assertions", vercheckerr.ErrFixtureOutOfDate, s.config.Fixture)
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// verdict turns a verification report into the command result.
func verdict(report assertion.Report, err error) error {
	if err != nil {
		return err
	}
	if !report.HasFailure {
		return nil
	}
	failed := len(report.Failures())
	log.Warnf("%d of %d assertions failed", failed, len(report.Results))
	return fmt.Errorf("%d of %d assertions do not hold: %w", failed, len(report.Results), vercheckerr.ErrAssertionsFailed)
}
