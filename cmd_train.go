package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samuelfneumann/racetrack/experiment"
	"github.com/samuelfneumann/racetrack/metrics"
	ts "github.com/samuelfneumann/racetrack/timestep"
	"github.com/samuelfneumann/racetrack/utils/progressbar"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
)

var (
	trainOut         string
	trainEpisodes    int
	trainMetricsAddr string
	trainProgress    bool

	trainCmd = &cobra.Command{
		Use:   "train",
		Short: "Learn action values and save them to a file",
		Args:  cobra.NoArgs,
		RunE:  runTrain,
	}
)

func init() {
	trainCmd.Flags().StringVarP(&trainOut, "out", "o", "q.gob",
		"file to save the learned action values in")
	trainCmd.Flags().IntVarP(&trainEpisodes, "episodes", "n", 0,
		"number of training episodes, overrides the configuration if positive")
	trainCmd.Flags().StringVar(&trainMetricsAddr, "metrics-addr", "",
		"address to serve Prometheus metrics on, e.g. :2112")
	trainCmd.Flags().BoolVar(&trainProgress, "progress", true,
		"display a progress bar")
}

// progress is a Tracker which advances a progress bar at the end of
// each episode
type progress struct {
	bar   *progressbar.ManualProgressBar
	every int
	seen  int
}

func (p *progress) Track(t ts.TimeStep) {
	if !t.Last() {
		return
	}
	p.bar.Increment()
	p.seen++
	if p.seen%p.every == 0 {
		p.bar.Display()
	}
}

func (p *progress) Save() error {
	p.bar.Display()
	p.bar.Close()
	return nil
}

func runTrain(cmd *cobra.Command, args []string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	if trainEpisodes > 0 {
		conf.Agent.Episodes = trainEpisodes
	}

	reg := prometheus.NewRegistry()
	training := metrics.NewTraining(reg)
	if trainMetricsAddr != "" {
		serveMetrics(trainMetricsAddr, reg)
	}

	opts := []experiment.Option{
		experiment.WithMetrics(training),
		experiment.WithLogger(slog.Default()),
	}
	if trainProgress {
		// The progress bar replaces the periodic progress logs
		opts = append(opts, experiment.WithLogEvery(0))
	}

	exp, err := conf.CreateExp(opts...)
	if err != nil {
		return err
	}
	if trainProgress {
		every := conf.Agent.Episodes / 100
		if every < 1 {
			every = 1
		}
		bar := progressbar.NewManualProgressBar(os.Stdout, 50,
			conf.Agent.Episodes)
		exp.Register(&progress{bar: bar, every: every})
	}

	if err := exp.Run(); err != nil {
		return err
	}
	if err := exp.Save(); err != nil {
		return fmt.Errorf("could not save tracked data: %w", err)
	}

	q := exp.Agent().Q()
	if err := q.Save(trainOut); err != nil {
		return err
	}
	slog.Info("saved action values", "file", trainOut, "states", q.Len())

	if conf.EvalEpisodes == 0 {
		return nil
	}

	env, err := conf.CreateEnv()
	if err != nil {
		return err
	}
	returns, err := experiment.Evaluate(env, exp.Agent().Target(),
		conf.EvalEpisodes, conf.Agent.MaxSteps)
	if err != nil {
		return err
	}
	slog.Info("evaluated greedy policy", "episodes", len(returns),
		"mean_return", stat.Mean(returns, nil))
	return nil
}

// serveMetrics serves the metrics registered with reg on addr in the
// background
func serveMetrics(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	go func() {
		slog.Info("serving metrics", "addr", addr)
		err := http.ListenAndServe(addr, mux)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server stopped", "err", err)
		}
	}()
}
