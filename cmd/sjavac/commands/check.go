package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"martianoff/sjavac/internal/cache"
	"martianoff/sjavac/internal/config"
	"martianoff/sjavac/internal/logging"
	"martianoff/sjavac/internal/runner"
	"martianoff/sjavac/internal/sjava"
	"martianoff/sjavac/internal/sjava/validator"
)

type checkFlags struct {
	revision string
	repo     string
	jobs     int
	noCache  bool
}

func newCheckCmd(flags *globalFlags, check *checkFlags, stdin io.Reader) *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Check one or more s-Java files",
		Long: `Check verifies every given file and prints one "<verdict> <file>" line per
file. The exit status is the worst verdict. Use "-" to read standard input.

Examples:
  sjavac check a.sjava b.sjava            # Check two files concurrently
  sjavac check --rev HEAD~1 src/a.sjava   # Check a file as of a git revision
  sjavac check --jobs 1 --no-cache *.sjava`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, flags, check, stdin, args, true)
		},
	}

	checkCmd.Flags().StringVar(&check.revision, "rev", "", "Read files from this git revision instead of the working tree")
	checkCmd.Flags().StringVar(&check.repo, "repo", ".", "Repository used with --rev")
	checkCmd.Flags().IntVarP(&check.jobs, "jobs", "j", 0, "Files checked concurrently (default from config)")
	checkCmd.Flags().BoolVar(&check.noCache, "no-cache", false, "Do not read or write the verdict cache")
	return checkCmd
}

// runCheck verifies paths and reports through the command's writers. With
// perFile unset the single verdict digit is printed alone.
func runCheck(cmd *cobra.Command, flags *globalFlags, check *checkFlags, stdin io.Reader, paths []string, perFile bool) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return &exitError{code: int(sjava.IOError)}
	}

	logger, err := logging.New(cfg.LogLevel, flags.verbose, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return &exitError{code: int(sjava.IOError)}
	}
	defer func() { _ = logger.Sync() }()

	opts := runner.Options{
		Jobs:     cfg.Jobs,
		Rules:    validator.Options{StrictCallArguments: cfg.EffectiveStrictCallArguments()},
		Revision: check.revision,
		Repo:     check.repo,
		Stdin:    stdin,
	}
	if check.jobs > 0 {
		opts.Jobs = check.jobs
	}
	if cfg.Cache.Enabled && !check.noCache {
		store, err := openCache(cfg)
		if err != nil {
			logger.Warn("cache.disabled", zap.String("path", cfg.Cache.Path), zap.Error(err))
		} else {
			defer store.Close()
			opts.Cache = store
		}
	}

	results, verdict, _ := runner.New(opts, logger).CheckFiles(cmd.Context(), paths)

	for _, res := range results {
		if perFile {
			fmt.Fprintf(stdout, "%d %s\n", res.Verdict, res.Path)
		} else {
			fmt.Fprintln(stdout, int(res.Verdict))
		}
		if res.Err != nil {
			fmt.Fprintln(stderr, res.Err)
		}
	}

	if verdict != sjava.Legal {
		return &exitError{code: int(verdict)}
	}
	return nil
}

func openCache(cfg *config.Config) (*cache.Store, error) {
	if err := cfg.EnsureCacheDir(); err != nil {
		return nil, err
	}
	return cache.OpenPath(cfg.Cache.Path)
}
