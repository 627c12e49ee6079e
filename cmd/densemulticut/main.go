// Command densemulticut solves a dense multicut instance from the
// plain-text format and writes one cluster label per input point.
//
// Usage:
//
//	densemulticut -f instance.txt -s flat_index [-k 10] [-offset 0]
//	              [-o labels.txt] [-json] [-seed 1] [-config cfg.yaml]
//
// Solvers: adj_matrix, flat_index, hnsw, parallel_flat_index,
// parallel_hnsw, inc_nn_flat, inc_nn_hnsw.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/pawelswoboda/dense-multicut/feature"
	"github.com/pawelswoboda/dense-multicut/gaec"
	"github.com/pawelswoboda/dense-multicut/multicut"
)

// config mirrors the command line; a YAML file can pre-populate it and
// explicit flags win.
type config struct {
	File   string  `yaml:"file"`
	Solver string  `yaml:"solver"`
	K      int     `yaml:"k"`
	Offset float64 `yaml:"offset"`
	Out    string  `yaml:"out"`
	Seed   int64   `yaml:"seed"`
	JSON   bool    `yaml:"json"`
}

// report is the machine-readable result emitted with -json.
type report struct {
	Solver           string  `json:"solver"`
	NrNodes          int     `json:"nr_nodes"`
	Dimension        int     `json:"dimension"`
	NrClusters       int     `json:"nr_clusters"`
	InitialObjective float64 `json:"initial_objective"`
	FinalObjective   float64 `json:"final_objective"`
	Contractions     int     `json:"contractions"`
	Rounds           int     `json:"rounds,omitempty"`
	Labels           []int64 `json:"labels"`
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "densemulticut: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg := config{K: gaec.DefaultK, Seed: feature.DefaultSeed}

	fs := flag.NewFlagSet("densemulticut", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML file with defaults for the flags below")
	fs.StringVar(&cfg.File, "f", cfg.File, "path to dense multicut instance (.txt)")
	fs.StringVar(&cfg.Solver, "s", cfg.Solver, "solver: adj_matrix, flat_index, hnsw, parallel_flat_index, parallel_hnsw, inc_nn_flat, inc_nn_hnsw")
	fs.IntVar(&cfg.K, "k", cfg.K, "number of nearest neighbors for the inc_nn solvers")
	fs.Float64Var(&cfg.Offset, "offset", cfg.Offset, "bias every pairwise weight by -offset (>= 0)")
	fs.StringVar(&cfg.Out, "o", cfg.Out, "write one label per line to this file")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "HNSW construction seed")
	fs.BoolVar(&cfg.JSON, "json", cfg.JSON, "print a JSON report to stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// YAML defaults first, then re-apply explicit flags on top.
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
		fileCfg := config{K: gaec.DefaultK, Seed: feature.DefaultSeed}
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
		merged := fileCfg
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "f":
				merged.File = cfg.File
			case "s":
				merged.Solver = cfg.Solver
			case "k":
				merged.K = cfg.K
			case "offset":
				merged.Offset = cfg.Offset
			case "o":
				merged.Out = cfg.Out
			case "seed":
				merged.Seed = cfg.Seed
			case "json":
				merged.JSON = cfg.JSON
			}
		})
		cfg = merged
	}

	if cfg.File == "" {
		return fmt.Errorf("missing required -f instance path")
	}
	if cfg.K <= 0 {
		return fmt.Errorf("k must be positive, got %d", cfg.K)
	}

	features, n, d, err := multicut.ReadInstance(cfg.File)
	if err != nil {
		return err
	}

	opts := []gaec.Option{gaec.WithK(cfg.K), gaec.WithSeed(cfg.Seed)}
	if cfg.Offset != 0 {
		features, err = multicut.AppendDistOffset(features, cfg.Offset, n, d)
		if err != nil {
			return err
		}
		d++
		opts = append(opts, gaec.WithDistOffsetTracking())
	}

	res, err := solve(cfg.Solver, n, d, features, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "[densemulticut %s] %d nodes, dimension %d\n", cfg.Solver, n, d)
	fmt.Fprintf(os.Stderr, "[densemulticut %s] final nr clusters = %d\n", cfg.Solver, res.NrClusters())
	fmt.Fprintf(os.Stderr, "[densemulticut %s] final multicut cost = %g\n", cfg.Solver, res.Objective)
	if res.Rounds > 0 {
		fmt.Fprintf(os.Stderr, "[densemulticut %s] %.2f contractions per round over %d rounds\n",
			cfg.Solver, float64(res.Contractions)/float64(res.Rounds), res.Rounds)
	}

	if cfg.Out != "" {
		if err := multicut.WriteLabelsFile(cfg.Out, res.Labels); err != nil {
			return err
		}
	} else if !cfg.JSON {
		if err := multicut.WriteLabels(os.Stdout, res.Labels); err != nil {
			return err
		}
	}

	if cfg.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		return enc.Encode(report{
			Solver:           cfg.Solver,
			NrNodes:          n,
			Dimension:        d,
			NrClusters:       res.NrClusters(),
			InitialObjective: res.InitialObjective,
			FinalObjective:   res.Objective,
			Contractions:     res.Contractions,
			Rounds:           res.Rounds,
			Labels:           multicut.NormalizeLabels(res.Labels),
		})
	}

	return nil
}

// solve dispatches on the solver name.
func solve(name string, n, d int, features []float32, opts []gaec.Option) (gaec.Result, error) {
	switch name {
	case "adj_matrix":
		return gaec.AdjacencyMatrix(n, d, features, opts...)
	case "flat_index":
		return gaec.Sequential(n, d, features, feature.IndexFlat, opts...)
	case "hnsw":
		return gaec.Sequential(n, d, features, feature.IndexHNSW, opts...)
	case "parallel_flat_index":
		return gaec.Parallel(n, d, features, feature.IndexFlat, opts...)
	case "parallel_hnsw":
		return gaec.Parallel(n, d, features, feature.IndexHNSW, opts...)
	case "inc_nn_flat":
		return gaec.IncrementalNN(n, d, features, feature.IndexFlat, opts...)
	case "inc_nn_hnsw":
		return gaec.IncrementalNN(n, d, features, feature.IndexHNSW, opts...)
	case "":
		return gaec.Result{}, fmt.Errorf("missing required -s solver name")
	default:
		return gaec.Result{}, fmt.Errorf("unknown solver %q", name)
	}
}
