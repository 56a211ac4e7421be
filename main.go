package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"polyfish/engine"
	"polyfish/experiments"
	"polyfish/game"
	"polyfish/meta"
	"polyfish/posecache"
	"polyfish/predictor"
	"polyfish/scenario"
	"polyfish/searcher"
	"polyfish/searcher/agent"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	mode := flag.String("mode", "search", "search, selfplay or experiment")
	scenarioName := flag.String("scenario", "skirmish", "duel, capture, lethal or skirmish")
	flag.Parse()

	cfg, err := meta.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogging(cfg.Log)
	game.CandidateCap = cfg.Game.CandidateCap

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch *mode {
	case "search":
		err = runSearch(ctx, cfg, *scenarioName)
	case "selfplay":
		err = runSelfPlay(ctx, cfg, *scenarioName)
	case "experiment":
		var dir string
		dir, err = experiments.Run(ctx, cfg, *scenarioName)
		if err == nil {
			fmt.Printf("Results written to %s\n", dir)
		}
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Str("mode", *mode).Msg("failed")
	}
}

func setupLogging(cfg meta.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}
}

func newMCTS(cfg meta.Config, s *game.WorldState) (*searcher.MCTS, func(), error) {
	options := append(searcher.FromConfig(cfg), searcher.WithMetrics())
	if cfg.Search.PoseCache > 0 {
		options = append(options, searcher.WithPoseCache(posecache.New(cfg.Search.PoseCache)))
	}
	cleanup := func() {}
	if cfg.Predictor.Model != "" {
		p, err := predictor.NewONNX(cfg.Predictor, s.Width, s.Height)
		if err != nil {
			return nil, nil, err
		}
		options = append(options, searcher.WithPredictor(p))
		cleanup = p.Close
	}
	return searcher.NewMCTS(cfg.Search.Workers, options...), cleanup, nil
}

func runSearch(ctx context.Context, cfg meta.Config, name string) error {
	sc, err := scenario.ByName(name, cfg.Game.KeySeed, cfg.Game.MaxTurns)
	if err != nil {
		return err
	}
	s := sc.State
	mcts, cleanup, err := newMCTS(cfg, s)
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Print(renderMap(os.Stdout, s))
	res := mcts.Search(ctx, s)
	if res.Err != nil {
		return res.Err
	}
	fmt.Print(renderVisits(res))

	elapsed := res.Metric.Duration.Seconds()
	rate := 0.0
	if elapsed > 0 {
		rate = float64(res.Iterations) / elapsed
	}
	fmt.Printf("%s iterations in %s (%s/s), stopped on %s, deepest path %d\n",
		humanize.Comma(int64(res.Iterations)),
		res.Metric.Duration.Round(time.Millisecond),
		humanize.Comma(int64(rate)),
		res.StopReason,
		res.MaxPath,
	)
	return nil
}

func runSelfPlay(ctx context.Context, cfg meta.Config, name string) error {
	sc, err := scenario.ByName(name, cfg.Game.KeySeed, cfg.Game.MaxTurns)
	if err != nil {
		return err
	}
	s := sc.State
	agents := make([]agent.Agent, len(s.Tribes))
	for i := range agents {
		mcts, cleanup, err := newMCTS(cfg, s)
		if err != nil {
			return err
		}
		defer cleanup()
		agents[i] = agent.NewTrainingAgent(mcts, cfg.Search.Seed+uint64(i))
	}

	e := engine.LocalEngine(s, agents)
	winner, gm, moves := e.Run(ctx)

	iterations := 0
	for _, m := range moves {
		iterations += m.Iterations
	}
	fmt.Print(renderMap(os.Stdout, s))
	fmt.Printf("Winner: tribe %d after %s moves and %d turns (%s search iterations, %s)\n",
		winner,
		humanize.Comma(int64(gm.TotalMoves)),
		gm.Turns,
		humanize.Comma(int64(iterations)),
		gm.Duration.Round(time.Millisecond),
	)
	return nil
}
