package assertion

import (
	"fmt"
	"io"

	"github.com/gookit/color"
	"github.com/spf13/afero"

	"github.com/anchore/vercheck/internal/log"
	"github.com/anchore/vercheck/vercheck/version"
)

// Result is the outcome of evaluating one assertion line.
type Result struct {
	Line       Line
	LineNumber int
	// Text is the input line with surrounding whitespace removed.
	Text   string
	Passed bool
}

// Report is the outcome of evaluating a whole assertion input.
type Report struct {
	// Results holds every evaluated line in input order.
	Results []Result
	// Surfaced holds the results selected by the report mode, in input order.
	Surfaced   []Result
	HasFailure bool
}

func (r Report) Failures() []Result {
	var failures []Result
	for _, result := range r.Results {
		if !result.Passed {
			failures = append(failures, result)
		}
	}
	return failures
}

// Verifier evaluates assertion text and writes a "T: " or "F: " line for every surfaced result.
type Verifier struct {
	Mode ReportMode
	Out  io.Writer
	// Colorize renders the outcome label and the assertion text with terminal colors.
	Colorize bool
}

// Verify evaluates the lines with the given mode without writing anything.
func Verify(lines []string, mode ReportMode) (Report, error) {
	return Verifier{Mode: mode}.Verify(lines)
}

// Verify decodes every line before evaluating any of them. A malformed line or unparsable operand aborts the
// run with no results; the returned report then only carries HasFailure.
func (v Verifier) Verify(lines []string) (Report, error) {
	var parsed []*parsedLine
	for idx, text := range lines {
		if isSkippable(text) {
			continue
		}
		p, err := parseLine(idx+1, text)
		if err != nil {
			return Report{HasFailure: true}, err
		}
		parsed = append(parsed, p)
	}

	mode := v.Mode
	if mode == "" {
		mode = DefaultReportMode
	}

	var report Report
	for _, p := range parsed {
		passed, err := version.Evaluate(p.left, p.Op, p.right)
		if err != nil {
			return Report{HasFailure: true}, err
		}

		result := Result{
			Line:       p.Line,
			LineNumber: p.number,
			Text:       p.text,
			Passed:     passed,
		}
		report.Results = append(report.Results, result)
		if !passed {
			report.HasFailure = true
		}
		if !mode.Includes(passed) {
			continue
		}
		report.Surfaced = append(report.Surfaced, result)
		if v.Out != nil {
			if _, err := fmt.Fprintln(v.Out, v.format(result)); err != nil {
				return report, fmt.Errorf("unable to write result: %w", err)
			}
		}
	}

	log.Debugf("evaluated %d assertions (%d failed)", len(report.Results), len(report.Failures()))
	return report, nil
}

// VerifyFile evaluates the assertion file at path.
func (v Verifier) VerifyFile(fs afero.Fs, path string) (Report, error) {
	lines, err := ReadFile(fs, path)
	if err != nil {
		return Report{HasFailure: true}, err
	}
	return v.Verify(lines)
}

func (v Verifier) format(result Result) string {
	label := "F"
	if result.Passed {
		label = "T"
	}
	text := result.Text
	if !v.Colorize {
		return fmt.Sprintf("%s: %s", label, text)
	}

	labelColor := color.Red
	if result.Passed {
		labelColor = color.Green
	}
	return fmt.Sprintf("%s: %s", labelColor.Render(label), color.Yellow.Render(text))
}
