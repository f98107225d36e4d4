package main

import (
	"flag"
	"fmt"
	"log/slog"

	"github.com/BurntSushi/toml"
	"github.com/clustercore/cmeans"
	"github.com/clustercore/cmeans/model"
	"github.com/clustercore/cmeans/rng"
	"github.com/clustercore/cmeans/testutil"
)

// Config is the run configuration. It is read from a TOML file and then
// overridden by command-line flags.
type Config struct {
	Algorithm     string      `toml:"algorithm"`
	Clusters      int         `toml:"clusters"`
	Passes        int         `toml:"passes"`
	Threshold     float64     `toml:"threshold"`
	Exponent      float64     `toml:"exponent"`
	MaxIterations int         `toml:"max_iterations"`
	Seed          uint64      `toml:"seed"` // 0 uses the process default source
	Crisp         bool        `toml:"crisp"`
	Points        [][]float64 `toml:"points"`
}

// DefaultConfig returns the configuration used when no file is given:
// fuzzy c-means with two clusters over the seven reference objects.
func DefaultConfig() Config {
	objects := testutil.CanonicalObjects()
	points := make([][]float64, len(objects))
	for i, p := range objects {
		points[i] = p.Slice()
	}

	return Config{
		Algorithm:     cmeans.AlgorithmFCM,
		Clusters:      2,
		Passes:        1,
		Threshold:     cmeans.DefaultThreshold,
		Exponent:      cmeans.DefaultExponent,
		MaxIterations: cmeans.DefaultMaxIterations,
		Points:        points,
	}
}

// LoadConfig decodes path over the defaults. Keys missing from the file keep
// their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config %s: unknown keys %v", path, undecoded)
	}
	return cfg, nil
}

// Validate checks the fields the engines do not validate themselves.
func (c Config) Validate() error {
	switch c.Algorithm {
	case cmeans.AlgorithmFCM, cmeans.AlgorithmPCM:
	default:
		return &cmeans.ConfigError{Field: "algorithm", Value: c.Algorithm}
	}
	if len(c.Points) == 0 {
		return &cmeans.ConfigError{Field: "points", Value: 0}
	}
	if c.Clusters > len(c.Points) {
		return &cmeans.ConfigError{Field: "clusters", Value: c.Clusters}
	}
	return nil
}

// Objects converts the configured points.
func (c Config) Objects() (model.ObjectSet, error) {
	return model.FromPairs(c.Points)
}

// Options returns the engine options for c.
func (c Config) Options(logger *cmeans.Logger, mc cmeans.MetricsCollector) []cmeans.Option {
	opts := []cmeans.Option{
		cmeans.WithThreshold(c.Threshold),
		cmeans.WithExponent(c.Exponent),
		cmeans.WithMaxIterations(c.MaxIterations),
		cmeans.WithLogger(logger),
		cmeans.WithMetricsCollector(mc),
	}
	if c.Seed != 0 {
		opts = append(opts, cmeans.WithRandomSource(rng.New(c.Seed)))
	}
	return opts
}

// runFlags holds the flags of the run subcommand.
type runFlags struct {
	config    string
	algorithm string
	clusters  int
	passes    int
	threshold float64
	seed      uint64
	crisp     bool
	path      bool
	plot      string
	metrics   bool
	logLevel  string
	json      bool
}

func newRunFlagSet(f *runFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.StringVar(&f.config, "config", "", "TOML file with points and settings")
	fs.StringVar(&f.algorithm, "algorithm", "", "fcm or pcm")
	fs.IntVar(&f.clusters, "clusters", 0, "number of clusters")
	fs.IntVar(&f.passes, "passes", 0, "possibilistic passes (pcm only)")
	fs.Float64Var(&f.threshold, "threshold", 0, "convergence threshold")
	fs.Uint64Var(&f.seed, "seed", 0, "random seed (0: time-seeded)")
	fs.BoolVar(&f.crisp, "crisp", false, "start from a crisp round-robin membership")
	fs.BoolVar(&f.path, "path", false, "record the center path")
	fs.StringVar(&f.plot, "plot", "", "write a scatter plot to this file (.png, .svg, .pdf)")
	fs.BoolVar(&f.metrics, "metrics", false, "print Prometheus metrics after the run")
	fs.StringVar(&f.logLevel, "log-level", "warn", "debug, info, warn or error")
	fs.BoolVar(&f.json, "json", false, "log as JSON")
	return fs
}

// apply overrides cfg with every flag set explicitly on fs.
func (f *runFlags) apply(fs *flag.FlagSet, cfg *Config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "algorithm":
			cfg.Algorithm = f.algorithm
		case "clusters":
			cfg.Clusters = f.clusters
		case "passes":
			cfg.Passes = f.passes
		case "threshold":
			cfg.Threshold = f.threshold
		case "seed":
			cfg.Seed = f.seed
		case "crisp":
			cfg.Crisp = f.crisp
		}
	})
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}
