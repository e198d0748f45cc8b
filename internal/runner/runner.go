// Package runner checks one or more s-Java sources concurrently and combines
// their verdicts.
package runner

import (
	"context"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"martianoff/sjavac/internal/cache"
	"martianoff/sjavac/internal/sjava"
	"martianoff/sjavac/internal/sjava/analyzer"
	"martianoff/sjavac/internal/sjava/source"
	"martianoff/sjavac/internal/sjava/validator"
	"martianoff/sjavac/sjavacerr"
)

// StdinPath names standard input in a path list.
const StdinPath = "-"

// Options configures a Runner.
type Options struct {
	// Jobs bounds the number of files checked at once. Values below 1 mean 1.
	Jobs int

	Rules validator.Options

	// Cache stores verdicts by content fingerprint. Nil disables caching.
	Cache *cache.Store

	// Revision, when set, reads every path from that git revision of the
	// repository containing Repo instead of from the working tree.
	Revision string
	Repo     string

	// Stdin is read for StdinPath. Defaults to os.Stdin.
	Stdin io.Reader
}

// Result is the outcome for one path.
type Result struct {
	Path    string
	Verdict sjava.Verdict
	Err     error
	Cached  bool
}

// Runner checks files. Each file gets its own analyzer.
type Runner struct {
	opts   Options
	logger *zap.Logger
}

// New creates a Runner. A nil logger disables logging.
func New(opts Options, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Repo == "" {
		opts.Repo = "."
	}
	return &Runner{opts: opts, logger: logger}
}

// CheckFiles checks every path and returns the per-path results in input
// order, the combined verdict (the worst one) and a MultiError holding every
// failure. The error is nil when all paths are legal.
func (r *Runner) CheckFiles(ctx context.Context, paths []string) ([]Result, sjava.Verdict, error) {
	results := make([]Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = r.CheckFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, sjava.IOError, err
	}

	combined := sjava.Legal
	var failures []error
	for _, res := range results {
		if res.Verdict > combined {
			combined = res.Verdict
		}
		if res.Err != nil {
			failures = append(failures, res.Err)
		}
	}
	if len(failures) == 0 {
		return results, combined, nil
	}
	return results, combined, &sjavacerr.MultiError{Errors: failures}
}

// CheckFile checks a single path.
func (r *Runner) CheckFile(path string) Result {
	start := time.Now()
	res := r.check(path)
	if res.Err != nil && path != StdinPath {
		res.Err = sjavacerr.InFile(res.Err, path)
	}
	r.logger.Info("file.checked",
		zap.String("path", path),
		zap.Stringer("verdict", res.Verdict),
		zap.Bool("cached", res.Cached),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res
}

func (r *Runner) check(path string) Result {
	res := Result{Path: path}

	src, content, closeFn, err := r.open(path)
	if err != nil {
		res.Verdict, res.Err = sjava.IOError, err
		return res
	}
	defer closeFn()

	var fingerprint string
	if r.opts.Cache != nil {
		fingerprint = cache.Fingerprint(content, r.opts.Rules.StrictCallArguments)
		entry, ok, err := r.opts.Cache.Get(fingerprint)
		if err != nil {
			r.logger.Warn("cache.get", zap.String("path", path), zap.Error(err))
		} else if ok {
			res.Verdict, res.Cached = entry.Verdict, true
			if entry.Verdict != sjava.Legal {
				res.Err = sjavacerr.Restore(sjavacerr.ErrorType(entry.Kind), entry.Message, entry.Line)
			}
			return res
		}
	}

	a := analyzer.NewAnalyzer(r.opts.Rules, r.logger.With(zap.String("file", path)))
	res.Verdict, res.Err = sjava.NewCompiler(a).Compile(src)

	if r.opts.Cache != nil {
		entry := cache.Entry{Verdict: res.Verdict}
		if res.Err != nil {
			entry.Kind = string(sjavacerr.KindOf(res.Err))
			entry.Line = sjavacerr.LineOf(res.Err)
			entry.Message = sjavacerr.MessageOf(res.Err)
		}
		if err := r.opts.Cache.Put(fingerprint, entry); err != nil {
			r.logger.Warn("cache.put", zap.String("path", path), zap.Error(err))
		}
	}
	return res
}

// open returns the line source for path and, when caching is enabled, its
// full text for fingerprinting.
func (r *Runner) open(path string) (sjava.LineSource, string, func(), error) {
	noop := func() {}
	switch {
	case path == StdinPath:
		src, err := source.FromReader("stdin", r.opts.Stdin)
		if err != nil {
			return nil, "", nil, err
		}
		return src, src.Text(), noop, nil
	case r.opts.Revision != "":
		src, err := source.OpenGit(r.opts.Repo, r.opts.Revision, path)
		if err != nil {
			return nil, "", nil, err
		}
		return src, src.Text(), noop, nil
	case r.opts.Cache != nil:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", nil, sjavacerr.NewIOError(path, "cannot read file", err)
		}
		src := source.FromString(string(data))
		return src, src.Text(), noop, nil
	}
	src, err := source.OpenFile(path)
	if err != nil {
		return nil, "", nil, err
	}
	return src, "", func() { _ = src.Close() }, nil
}
