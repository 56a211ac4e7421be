package meta

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type SearchConfig struct {
	Workers     int           `yaml:"workers"`
	Iterations  int           `yaml:"iterations"`
	Duration    time.Duration `yaml:"duration"`
	Depth       int           `yaml:"depth"`
	TurnHorizon int           `yaml:"turn_horizon"`
	Batch       int           `yaml:"batch"`
	Exploration float64       `yaml:"exploration"`
	Temperature float64       `yaml:"temperature"`
	Dirichlet   DirichletConf `yaml:"dirichlet"`
	Seed        uint64        `yaml:"seed"`
	Evaluate    string        `yaml:"evaluate"` // economy, army or balanced
	PoseCache   int           `yaml:"pose_cache"` // capacity, 0 disables
}

type DirichletConf struct {
	Alpha   float64 `yaml:"alpha"`
	Epsilon float64 `yaml:"epsilon"`
}

type GameConfig struct {
	MaxTurns     int    `yaml:"max_turns"`
	CandidateCap int    `yaml:"candidate_cap"`
	KeySeed      uint64 `yaml:"key_seed"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

type ExperimentConfig struct {
	Kind    string `yaml:"kind"` // strength or throughput
	Games   int    `yaml:"games"`
	Output  string `yaml:"output"`
	Workers []int  `yaml:"workers"`
}

type PredictorConfig struct {
	Model         string `yaml:"model"`
	SharedLibrary string `yaml:"shared_library"`
}

// Config is the file-level configuration of the CLI and experiments.
type Config struct {
	Search     SearchConfig     `yaml:"search"`
	Game       GameConfig       `yaml:"game"`
	Log        LogConfig        `yaml:"log"`
	Experiment ExperimentConfig `yaml:"experiment"`
	Predictor  PredictorConfig  `yaml:"predictor"`
}

func Default() Config {
	return Config{
		Search: SearchConfig{
			Workers:     Workers,
			Iterations:  Iterations,
			Depth:       Depth,
			Batch:       Batch,
			Exploration: Exploration,
			Seed:        1,
			Evaluate:    "balanced",
		},
		Game: GameConfig{
			MaxTurns:     MaxTurns,
			CandidateCap: CandidateCap,
			KeySeed:      KeySeed,
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
		Experiment: ExperimentConfig{
			Kind:    "strength",
			Games:   4,
			Output:  "experiments",
			Workers: []int{1, 2, 4, 8},
		},
	}
}

// Load reads a YAML file on top of the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	check := func(table string, value, limit int) {
		if err := CheckRange(table, value, limit); err != nil {
			errs = append(errs, err)
		}
	}

	check("search.workers", c.Search.Workers-1, 1024)
	check("search.iterations", c.Search.Iterations, math.MaxInt32)
	check("search.depth", c.Search.Depth-1, 1024)
	check("search.batch", c.Search.Batch-1, math.MaxInt32)
	check("search.turn_horizon", c.Search.TurnHorizon, 1024)
	check("search.pose_cache", c.Search.PoseCache, math.MaxInt32)
	check("game.max_turns", c.Game.MaxTurns-1, 1024)
	check("game.candidate_cap", c.Game.CandidateCap-1, math.MaxInt32)
	check("experiment.games", c.Experiment.Games, math.MaxInt32)
	for i, w := range c.Experiment.Workers {
		check(fmt.Sprintf("experiment.workers[%d]", i), w-1, 1024)
	}

	if c.Search.Iterations == 0 && c.Search.Duration <= 0 {
		errs = append(errs, errors.New("search: iterations or duration must be set"))
	}
	if c.Search.Duration < 0 {
		errs = append(errs, &ConfigRangeError{Table: "search.duration", Index: int(c.Search.Duration), Limit: math.MaxInt32})
	}
	for _, v := range []struct {
		field  string
		value  float64
		lo, hi float64
	}{
		{"search.exploration", c.Search.Exploration, 0, math.Inf(1)},
		{"search.temperature", c.Search.Temperature, 0, math.Inf(1)},
		{"search.dirichlet.alpha", c.Search.Dirichlet.Alpha, 0, math.Inf(1)},
		{"search.dirichlet.epsilon", c.Search.Dirichlet.Epsilon, 0, 1},
	} {
		if err := CheckValue(v.field, v.value, v.lo, v.hi); err != nil {
			errs = append(errs, err)
		}
	}

	switch c.Search.Evaluate {
	case "", "economy", "army", "balanced":
	default:
		errs = append(errs, fmt.Errorf("search.evaluate: unknown evaluation %q", c.Search.Evaluate))
	}
	switch c.Experiment.Kind {
	case "", "strength", "throughput":
	default:
		errs = append(errs, fmt.Errorf("experiment.kind: unknown experiment %q", c.Experiment.Kind))
	}

	return errors.Join(errs...)
}
