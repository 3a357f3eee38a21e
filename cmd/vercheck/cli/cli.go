package cli

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/anchore/vercheck/internal/config"
	"github.com/anchore/vercheck/internal/file"
	"github.com/anchore/vercheck/internal/version"
	"github.com/anchore/vercheck/vercheck/vercheckerr"
)

// state is shared by every command of a single invocation.
type state struct {
	fs       afero.Fs
	viper    *viper.Viper
	cliOpts  config.CliOnlyOptions
	config   *config.Application
	getter   file.Getter
	stdout   io.Writer
	stderr   io.Writer
	colorize bool
}

type Option func(*state)

// WithFs replaces the filesystem fixtures and advisory directories are read from and written to.
func WithFs(fs afero.Fs) Option {
	return func(s *state) {
		s.fs = fs
	}
}

// WithGetter replaces the downloader used by fetch.
func WithGetter(g file.Getter) Option {
	return func(s *state) {
		s.getter = g
	}
}

// WithOutput redirects command output; colors are disabled.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(s *state) {
		s.stdout = stdout
		s.stderr = stderr
		s.colorize = false
	}
}

// New assembles the vercheck command tree.
func New(opts ...Option) *cobra.Command {
	s := &state{
		fs:       afero.NewOsFs(),
		viper:    viper.New(),
		getter:   file.NewGetter(version.FromBuild().UserAgent(), nil),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		colorize: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	root := newRootCmd(s)
	root.AddCommand(
		newFetchCmd(s),
		newGenerateCmd(s),
		newVerifyCmd(s),
		newVersionCmd(s),
	)
	return root
}

func Execute() {
	if err := New().Execute(); err != nil {
		// expected errors were already reported by the command, only the reason is repeated
		var expectedErr vercheckerr.ExpectedErr
		if errors.As(err, &expectedErr) {
			_ = stderrPrintLnf(os.Stderr, "%s", err.Error())
		} else {
			_ = stderrPrintLnf(os.Stderr, "error: %s", err.Error())
		}
		os.Exit(1)
	}
}
