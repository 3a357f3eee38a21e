package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/profile"

	"github.com/anchore/vercheck/internal/log"
)

func stderrPrintLnf(w io.Writer, message string, args ...interface{}) error {
	if !strings.HasSuffix(message, "\n") {
		message += "\n"
	}
	_, err := fmt.Fprintf(w, message, args...)
	return err
}

// startProfiling starts the profile selected by the dev options; the returned func stops it.
func (s *state) startProfiling() func() {
	switch {
	case s.config.Dev.ProfileCPU:
		log.Debug("profiling CPU")
		return profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop
	case s.config.Dev.ProfileMem:
		log.Debug("profiling memory")
		return profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop
	}
	return func() {}
}
