package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/wagoodman/go-progress"

	"github.com/anchore/vercheck/internal"
	"github.com/anchore/vercheck/internal/log"
)

const progressInterval = 2 * time.Second

func newFetchCmd(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "download the advisory archive into the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer s.startProfiling()()
			return s.runFetch(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.String("url", internal.DefaultAdvisoryURL, "where to download the advisory archive from")
	bindFlag(flags, "url", "advisories.url")
	flags.String("cache-dir", "", "directory to store the advisory archive in")
	bindFlag(flags, "cache-dir", "advisories.cache-dir")

	return cmd
}

func (s *state) runFetch(ctx context.Context) error {
	cfg := s.config.Advisories
	if err := s.fs.MkdirAll(cfg.CacheDir, 0755); err != nil {
		return fmt.Errorf("unable to create cache directory %q: %w", cfg.CacheDir, err)
	}

	dst := cfg.ArchivePath()
	partial := dst + ".partial"

	log.Infof("downloading advisories from %s", cfg.URL)
	monitor := progress.NewManual(-1)
	stop := logProgress(monitor, progressInterval)
	err := s.getter.GetFile(ctx, partial, cfg.URL, monitor)
	stop()
	if err != nil {
		if removeErr := s.fs.Remove(partial); removeErr != nil {
			log.Debugf("unable to remove partial download %q: %v", partial, removeErr)
		}
		return fmt.Errorf("unable to download advisories from %q: %w", cfg.URL, err)
	}

	if err := s.fs.Rename(partial, dst); err != nil {
		return fmt.Errorf("unable to store advisory archive: %w", err)
	}

	info, err := s.fs.Stat(dst)
	if err != nil {
		return fmt.Errorf("unable to inspect advisory archive: %w", err)
	}
	_, err = fmt.Fprintf(s.stdout, "Advisories downloaded to %s (%s)\n", dst, humanize.Bytes(uint64(info.Size())))
	return err
}

// logProgress periodically logs the state of a download until the returned func is called.
func logProgress(monitor *progress.Manual, interval time.Duration) func() {
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if total := monitor.Size(); total > 0 {
					log.Infof("downloaded %s / %s", humanize.Bytes(uint64(monitor.Current())), humanize.Bytes(uint64(total)))
				} else {
					log.Infof("downloaded %s", humanize.Bytes(uint64(monitor.Current())))
				}
			}
		}
	}()
	return func() {
		close(done)
		<-finished
	}
}
