package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ahrav/go-adgrader/infrastructure/middleware"
	"github.com/ahrav/go-adgrader/internal/application"
	"github.com/ahrav/go-adgrader/internal/domain"
	"github.com/ahrav/go-adgrader/internal/ports"
	"github.com/ahrav/go-adgrader/internal/render"
)

func newGradeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grade <snapshot> [snapshot ...]",
		Short: "Grade one or more account snapshots",
		Long: `Grade reads metrics snapshots (JSON or YAML, chosen by file extension),
scores each account and prints a report.

Several snapshots may be graded in one run, for example every client account
under a manager account. Files are graded in parallel, bounded by
--concurrency, and reported in the order given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGrade(cmd.Context(), cmd.OutOrStdout(), args)
		},
	}

	flags := cmd.Flags()
	flags.StringP("format", "f", render.FormatConsole, "Output format: "+strings.Join(render.Formats(), ", "))
	flags.StringP("output", "o", "", "Write the report to this file instead of stdout")
	flags.Int("concurrency", runtime.NumCPU(), "Maximum snapshots and categories graded in parallel")
	flags.String("metrics-file", "", "Write Prometheus metrics in text format to this file")
	flags.String("fail-below", "", "Exit with status 1 when any account grades below this letter (A-D)")
	flags.Duration("timeout", 0, "Abort grading after this duration (0 disables)")
	flags.Bool("no-color", false, "Disable colors in console output")
	_ = a.v.BindPFlags(flags)

	return cmd
}

// gradeOutcome is the result of grading one snapshot file.
type gradeOutcome struct {
	path   string
	result domain.GradingResult
	err    error
}

func (a *app) runGrade(ctx context.Context, out io.Writer, paths []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout := a.v.GetDuration("timeout"); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	failBelow, err := parseFailBelow(a.v.GetString("fail-below"))
	if err != nil {
		return err
	}

	cfg, err := a.loadConfig(ctx, a.v.GetString("config"))
	if err != nil {
		return err
	}

	renderer, err := a.renderer(cfg)
	if err != nil {
		return err
	}

	concurrency := a.v.GetInt("concurrency")
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	reg := prometheus.NewRegistry()
	metrics := middleware.NewPrometheusMetrics(reg)

	registry, err := application.NewDefaultEvaluatorRegistry()
	if err != nil {
		return fmt.Errorf("error building evaluator registry: %w", err)
	}
	grader, err := application.NewAccountGrader(cfg, registry,
		application.WithLogger(a.logger),
		application.WithMetrics(metrics),
		application.WithConcurrency(concurrency),
		application.WithEvaluatorMiddleware(
			middleware.TracingMiddleware("adgrader"),
			middleware.MetricsMiddleware(metrics),
		),
	)
	if err != nil {
		return fmt.Errorf("error creating grader: %w", err)
	}

	outcomes := a.gradeFiles(ctx, grader, paths, concurrency)

	w := out
	if path := a.v.GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("error creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	var errs []error
	var below []string
	for i, o := range outcomes {
		if o.err != nil {
			a.logger.Error("grading failed", "file", o.path, "error", o.err)
			errs = append(errs, fmt.Errorf("%s: %w", o.path, o.err))
			continue
		}
		if i > 0 && len(paths) > 1 {
			fmt.Fprintln(w)
		}
		if err := renderer.Render(w, &o.result); err != nil {
			return fmt.Errorf("error rendering %s: %w", o.path, err)
		}
		if failBelow != "" && failBelow.Better(o.result.Overall.Letter) {
			below = append(below, fmt.Sprintf("%s (%s)", o.path, o.result.Overall.Letter))
		}
	}

	if path := a.v.GetString("metrics-file"); path != "" {
		if err := prometheus.WriteToTextfile(path, reg); err != nil {
			errs = append(errs, ports.NewMetricsError(path, "write_textfile", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if len(below) > 0 {
		return &GradeBelowError{
			Message: fmt.Sprintf("%d account(s) graded below %s: %s", len(below), failBelow, strings.Join(below, ", ")),
		}
	}
	return nil
}

// gradeFiles loads and grades every path, at most limit at a time. Outcomes
// keep the order of paths. A failing file does not stop the others.
func (a *app) gradeFiles(ctx context.Context, grader *application.AccountGrader, paths []string, limit int) []gradeOutcome {
	loader := application.NewSnapshotLoader()
	outcomes := make([]gradeOutcome, len(paths))

	var eg errgroup.Group
	eg.SetLimit(limit)
	for i, path := range paths {
		eg.Go(func() error {
			outcomes[i].path = path
			start := time.Now()

			snap, err := loader.LoadFromFile(ctx, path)
			if err != nil {
				outcomes[i].err = err
				return nil
			}
			result, err := grader.Grade(ctx, snap)
			if err != nil {
				outcomes[i].err = err
				return nil
			}
			outcomes[i].result = result

			a.logger.Debug("snapshot graded",
				"file", path,
				"grade", domain.FormatScore(result.Overall.Letter, result.Overall.Score),
				"duration", time.Since(start))
			return nil
		})
	}
	_ = eg.Wait()

	return outcomes
}

func (a *app) loadConfig(ctx context.Context, path string) (domain.Config, error) {
	if path == "" {
		return domain.DefaultConfig(), nil
	}
	cfg, err := application.NewConfigLoader().LoadFromFile(ctx, path)
	if err != nil {
		return domain.Config{}, fmt.Errorf("error loading configuration: %w", err)
	}
	a.logger.Debug("configuration loaded", "path", path)
	return cfg, nil
}

func (a *app) renderer(cfg domain.Config) (render.Renderer, error) {
	switch format := a.v.GetString("format"); format {
	case render.FormatConsole:
		return render.NewConsoleRenderer(cfg.Prioritization.ReportLimit, !a.v.GetBool("no-color")), nil
	case render.FormatDigest:
		return render.New(format, cfg.Prioritization.DigestLimit)
	default:
		return render.New(format, cfg.Prioritization.ReportLimit)
	}
}

// parseFailBelow validates the --fail-below letter. An empty value disables
// the check.
func parseFailBelow(s string) (domain.Grade, error) {
	if s == "" {
		return "", nil
	}
	g := domain.Grade(strings.ToUpper(strings.TrimSpace(s)))
	if !g.Valid() || g == domain.GradeF {
		return "", fmt.Errorf("invalid --fail-below %q: must be one of A, B, C, D", s)
	}
	return g, nil
}
