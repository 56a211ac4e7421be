package experiments

import (
	"context"
	"fmt"

	"polyfish/engine"
	"polyfish/experiments/metrics"
	"polyfish/game"
	"polyfish/meta"
	"polyfish/scenario"
	"polyfish/searcher"
	"polyfish/searcher/agent"

	"github.com/rs/zerolog/log"
)

// Run plays the experiment configured in cfg on the named scenario and
// writes its CSV files. It returns the output directory.
func Run(ctx context.Context, cfg meta.Config, scenarioName string) (string, error) {
	configs, matchUps := plan(cfg)
	name := cfg.Experiment.Kind
	if name == "" {
		name = "strength"
	}
	return runExperiment(ctx, cfg, scenarioName, "parallelization_to_"+name, configs, matchUps)
}

// plan builds the agent configs and matchups. A strength experiment pairs
// every worker count against the sequential baseline; a throughput
// experiment pairs each config with itself for similar game length.
func plan(cfg meta.Config) ([]metrics.AgentConfig, [][]metrics.AgentConfig) {
	sc := cfg.Search
	evaluate := sc.Evaluate
	if evaluate == "" {
		evaluate = "balanced"
	}
	agentConfig := func(id, workers int) metrics.AgentConfig {
		return metrics.AgentConfig{
			ID:         id,
			Workers:    workers,
			Duration:   sc.Duration,
			Iterations: sc.Iterations,
			Depth:      sc.Depth,
			Evaluate:   evaluate,
		}
	}

	var configs []metrics.AgentConfig
	for i, workers := range cfg.Experiment.Workers {
		configs = append(configs, agentConfig(i+1, workers))
	}

	var matchUps [][]metrics.AgentConfig
	if cfg.Experiment.Kind == "throughput" {
		for _, config := range configs {
			matchUps = append(matchUps, []metrics.AgentConfig{config, config})
		}
		return configs, matchUps
	}

	baseline := agentConfig(0, 1)
	for _, config := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return append(configs, baseline), matchUps
}

func runExperiment(ctx context.Context, cfg meta.Config, scenarioName, name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) (string, error) {
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	games := cfg.Experiment.Games

	log.Info().Str("experiment", name).Int("matchups", len(matchUps)).Int("games", games).Msg("starting experiment")

	for mi, matchup := range matchUps {
		log.Info().Int("matchup", mi+1).Int("agent1", matchup[0].ID).Int("agent2", matchup[1].ID).Msg("starting matchup")

		for i := range games {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			// Alternate which agent plays the starting tribe
			first, second := matchup[0], matchup[1]
			if i%2 == 1 {
				first, second = second, first
			}
			seed := uint64(mi*games + i + 1)

			winner, gameMetric, moveMetrics, err := runGame(ctx, cfg, scenarioName, seed, first, second)
			if err != nil {
				return "", err
			}
			gameRecords = append(gameRecords, metrics.GameRecord{
				Agent1:     first.ID,
				Agent2:     second.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       gameMetric.ID.String(),
					MoveMetric: mm,
				})
			}
			log.Info().Int("matchup", mi+1).Int("game", i+1).Int("winner", winner).Msg("completed game")
		}
	}
	log.Info().Str("experiment", name).Msg("completed experiment")

	writer, err := metrics.NewWriter(cfg.Experiment.Output, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment records")
	return writer.Dir(), nil
}

// runGame plays one game between two agents on a fresh scenario
func runGame(ctx context.Context, cfg meta.Config, scenarioName string, seed uint64, config1, config2 metrics.AgentConfig) (int, metrics.GameMetric, []metrics.MoveMetric, error) {
	sc, err := scenario.ByName(scenarioName, cfg.Game.KeySeed, cfg.Game.MaxTurns)
	if err != nil {
		return 0, metrics.GameMetric{}, nil, err
	}
	agents := []agent.Agent{
		agent.NewEvaluationAgent(createMCTS(cfg, config1, seed)),
		agent.NewEvaluationAgent(createMCTS(cfg, config2, seed+1)),
	}
	e := engine.LocalEngine(sc.State, agents)
	winner, gameMetric, moveMetrics := e.Run(ctx)
	return winner, gameMetric, moveMetrics, nil
}

func createMCTS(cfg meta.Config, config metrics.AgentConfig, seed uint64) *searcher.MCTS {
	options := searcher.FromConfig(cfg)
	options = append(options,
		searcher.WithSeed(seed),
		searcher.WithIterations(config.Iterations),
		searcher.WithDuration(config.Duration),
		searcher.WithDepth(config.Depth),
		searcher.WithEvaluationFn(game.Evaluators[config.Evaluate]),
		searcher.WithMetrics(),
	)
	return searcher.NewMCTS(config.Workers, options...)
}
