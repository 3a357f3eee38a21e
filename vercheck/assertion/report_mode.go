package assertion

import (
	"fmt"
	"strings"
)

const (
	AllResults    ReportMode = "all"
	SuccessesOnly ReportMode = "successes"
	FailuresOnly  ReportMode = "failures"

	DefaultReportMode = FailuresOnly
)

// ReportMode selects which evaluated assertions are surfaced to the user.
type ReportMode string

var ReportModes = []ReportMode{AllResults, SuccessesOnly, FailuresOnly}

func ParseReportMode(userStr string) (ReportMode, error) {
	switch strings.ToLower(strings.TrimSpace(userStr)) {
	case "", string(FailuresOnly), "failure", "f":
		return FailuresOnly, nil
	case string(SuccessesOnly), "success", "t":
		return SuccessesOnly, nil
	case string(AllResults):
		return AllResults, nil
	}
	return "", fmt.Errorf("unknown report mode %q (allowed: %s)", userStr, ReportModeOptions())
}

func ReportModeOptions() string {
	var options []string
	for _, m := range ReportModes {
		options = append(options, string(m))
	}
	return strings.Join(options, ", ")
}

// Includes reports whether a result with the given outcome is surfaced under this mode.
func (m ReportMode) Includes(passed bool) bool {
	switch m {
	case SuccessesOnly:
		return passed
	case FailuresOnly:
		return !passed
	}
	return true
}
