// Command cmeans clusters planar points with fuzzy or possibilistic c-means.
//
// Usage:
//
//	cmeans run -config points.toml [-algorithm fcm|pcm] [-clusters N] [-passes R]
//	           [-threshold e] [-seed S] [-crisp] [-path] [-plot out.png]
//	           [-metrics] [-log-level debug|info|warn|error] [-json]
//	cmeans selftest [-seed S]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/clustercore/cmeans"
	"github.com/clustercore/cmeans/metric"
	"github.com/clustercore/cmeans/rng"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const usage = `usage:
  cmeans run [flags]       cluster the configured points
  cmeans selftest [flags]  check the reference scenarios`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "run":
		err = runCluster(ctx, args[1:], stdout, stderr)
	case "selftest":
		err = runSelftest(ctx, args[1:], stdout, stderr)
	case "-h", "-help", "--help", "help":
		fmt.Fprintln(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n%s\n", args[0], usage)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	default:
		fmt.Fprintf(stderr, "cmeans: %v\n", err)
		return 1
	}
}

func runCluster(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var f runFlags
	fs := newRunFlagSet(&f)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := DefaultConfig()
	if f.config != "" {
		var err error
		if cfg, err = LoadConfig(f.config); err != nil {
			return err
		}
	}
	f.apply(fs, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	objects, err := cfg.Objects()
	if err != nil {
		return err
	}

	level, err := parseLevel(f.logLevel)
	if err != nil {
		return err
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	var logger *cmeans.Logger
	if f.json {
		logger = cmeans.NewLogger(slog.NewJSONHandler(stderr, handlerOpts))
	} else {
		logger = cmeans.NewLogger(slog.NewTextHandler(stderr, handlerOpts))
	}

	reg := prometheus.NewRegistry()
	mc, err := metric.NewCollector(reg)
	if err != nil {
		return err
	}

	opts := cfg.Options(logger, mc)
	var engine cmeans.Clusterer
	switch cfg.Algorithm {
	case cmeans.AlgorithmPCM:
		engine, err = cmeans.NewPossibilisticCMeans(objects, cfg.Clusters, cfg.Passes, opts...)
	default:
		engine, err = cmeans.NewFuzzyCMeans(objects, cfg.Clusters, opts...)
	}
	if err != nil {
		return err
	}

	centers, err := engine.DetermineClusterCenters(ctx, !cfg.Crisp, f.path || f.plot != "")
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "algorithm: %s\n", cfg.Algorithm)
	for k, c := range centers {
		fmt.Fprintf(stdout, "center %d: %.9f %.9f\n", k, c.X, c.Y)
	}
	path := engine.Path()
	if f.path {
		fmt.Fprintf(stdout, "path: %d snapshots\n", len(path.Snapshots(len(centers))))
	}

	if f.plot != "" {
		if err := writePlot(f.plot, cfg.Algorithm, objects, path, centers); err != nil {
			return err
		}
		logger.Info("plot written", "file", f.plot)
	}

	if f.metrics {
		return writeMetrics(stdout, reg)
	}
	return nil
}

func runSelftest(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("selftest", flag.ContinueOnError)
	fs.SetOutput(stderr)
	seed := fs.Uint64("seed", 0, "random seed (0: time-seeded)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var opts []cmeans.Option
	if *seed != 0 {
		opts = append(opts, cmeans.WithRandomSource(rng.New(*seed)))
	}

	if !selftest(ctx, stdout, opts) {
		return errors.New("self test failed")
	}
	return nil
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
