package cli

import (
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/anchore/vercheck/vercheck/corpus"
)

type summary struct {
	source     string
	advisories int
	corpus     *corpus.Corpus
	assertions int
}

func writeSummary(w io.Writer, s summary) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Source", "Advisories", "Packages", "Versions", "Skipped", "Assertions"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetAutoFormatHeaders(true)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	table.Append([]string{
		s.source,
		humanize.Comma(int64(s.advisories)),
		humanize.Comma(int64(s.corpus.Len())),
		humanize.Comma(int64(s.corpus.VersionCount())),
		humanize.Comma(int64(len(s.corpus.Skipped()))),
		humanize.Comma(int64(s.assertions)),
	})
	table.Render()
	return nil
}

// lineDiff renders the lines removed from and added to the expected text, or nothing when both are equal.
func lineDiff(expected, actual string) string {
	if expected == actual {
		return ""
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(expected, actual)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}
