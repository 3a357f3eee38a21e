package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/anchore/vercheck/internal"
	"github.com/anchore/vercheck/internal/config"
	"github.com/anchore/vercheck/internal/log"
	"github.com/anchore/vercheck/internal/logger"
	"github.com/anchore/vercheck/internal/version"
	"github.com/anchore/vercheck/vercheck"
)

func newRootCmd(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   internal.ApplicationName,
		Short: "Generate and verify version ordering assertions from OSV advisories",
		Long: fmt.Sprintf(`Collects the affected versions of every package in a set of OSV advisories, sorts them
with PEP 440 ordering and states "a < b" for every adjacent pair. The resulting fixture can be
verified against this or any other implementation of the ordering.

    %[1]s fetch                        download the PyPI advisory archive
    %[1]s generate                     write the fixture from the advisories and verify it
    %[1]s generate --check             fail when the fixture is out of date
    %[1]s verify --report all          evaluate an existing fixture
`, internal.ApplicationName),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.initialize(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&s.cliOpts.ConfigPath, "config", "c", "", "application config file")
	flags.CountVarP(&s.cliOpts.Verbosity, "verbose", "v", "increase verbosity (-v = info, -vv = debug)")
	flags.BoolP("quiet", "q", false, "suppress all logging output")
	bindFlag(flags, "quiet", "quiet")

	return cmd
}

func (s *state) initialize(cmd *cobra.Command) error {
	if err := bindFlags(s.viper, cmd.Flags()); err != nil {
		return err
	}

	cfg, err := config.LoadApplicationConfig(s.viper, s.cliOpts)
	if err != nil {
		return fmt.Errorf("failed to load application config: %w", err)
	}
	s.config = cfg

	if err := s.initLogging(); err != nil {
		return err
	}
	logAppConfig(cfg)
	logAppVersion()
	return nil
}

func (s *state) initLogging() error {
	cfg := logger.LogrusConfig{
		EnableConsole: (s.config.Log.FileLocation == "" || s.config.CliOptions.Verbosity > 0) && !s.config.Quiet,
		EnableFile:    s.config.Log.FileLocation != "",
		Level:         s.config.Log.LevelOpt,
		Structured:    s.config.Log.Structured,
		FileLocation:  s.config.Log.FileLocation,
		Console:       s.stderr,
	}

	logWrapper, err := logger.NewLogrusLogger(cfg)
	if err != nil {
		return err
	}
	vercheck.SetLogger(logWrapper)
	return nil
}

func logAppConfig(cfg *config.Application) {
	log.Debugf("application config:\n%+v", color.Magenta.Sprint(cfg.String()))
}

func logAppVersion() {
	versionInfo := version.FromBuild()
	log.Infof("%s version: %s", internal.ApplicationName, versionInfo.Version)

	var fields map[string]interface{}
	bytes, err := json.Marshal(versionInfo)
	if err != nil {
		return
	}
	err = json.Unmarshal(bytes, &fields)
	if err != nil {
		return
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for idx, field := range keys {
		value := fields[field]
		branch := "├──"
		if idx == len(fields)-1 {
			branch = "└──"
		}
		log.Debugf("  %s %s: %s", branch, field, value)
	}
}
