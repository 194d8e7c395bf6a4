package main

import (
	"fmt"
	"log/slog"

	"github.com/samuelfneumann/racetrack/agent/tabular/policy"
	"github.com/samuelfneumann/racetrack/agent/tabular/table"
	"github.com/samuelfneumann/racetrack/experiment"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
)

var (
	evalTable    string
	evalEpisodes int

	evalCmd = &cobra.Command{
		Use:   "eval",
		Short: "Evaluate the greedy policy of saved action values",
		Args:  cobra.NoArgs,
		RunE:  runEval,
	}
)

func init() {
	evalCmd.Flags().StringVarP(&evalTable, "table", "t", "q.gob",
		"file holding action values saved by train")
	evalCmd.Flags().IntVarP(&evalEpisodes, "episodes", "n", 0,
		"number of evaluation episodes, overrides the configuration if "+
			"positive")
}

func runEval(cmd *cobra.Command, args []string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	if evalEpisodes > 0 {
		conf.EvalEpisodes = evalEpisodes
	}

	if conf.EvalEpisodes < 1 {
		return fmt.Errorf("at least one evaluation episode is required")
	}

	q, err := table.Load(evalTable)
	if err != nil {
		return err
	}

	env, err := conf.CreateEnv()
	if err != nil {
		return err
	}
	if q.NumActions() != env.NumActions() {
		return fmt.Errorf("table has %v actions but the environment has %v",
			q.NumActions(), env.NumActions())
	}

	returns, err := experiment.Evaluate(env, policy.NewGreedy(q),
		conf.EvalEpisodes, conf.Agent.MaxSteps)
	if err != nil {
		return err
	}

	for i, r := range returns {
		slog.Debug("evaluation episode", "episode", i, "return", r)
	}
	slog.Info("evaluated greedy policy", "table", evalTable,
		"states", q.Len(), "episodes", len(returns),
		"mean_return", stat.Mean(returns, nil))
	return nil
}
