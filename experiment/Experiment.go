// Package experiment implements functionality for running experiments
// with off-policy Monte Carlo control agents
package experiment

import (
	"fmt"
	"os"

	"github.com/samuelfneumann/racetrack/agent/tabular/mcoff"
	"github.com/samuelfneumann/racetrack/agent/tabular/policy"
	"github.com/samuelfneumann/racetrack/environment/racetrack"
	"github.com/samuelfneumann/racetrack/experiment/checkpointer"
	"github.com/samuelfneumann/racetrack/experiment/tracker"
	"gopkg.in/yaml.v3"
)

// Config represents a configuration of an experiment. Configs are
// usually read from YAML files with LoadConfig.
type Config struct {
	Agent       mcoff.Config     `yaml:"agent"`
	Environment racetrack.Config `yaml:"environment"`

	// CheckpointEvery is the number of episodes between checkpoints of
	// the action-value table. Zero disables checkpointing.
	CheckpointEvery  int    `yaml:"checkpoint_every"`
	CheckpointPrefix string `yaml:"checkpoint_prefix"`

	// Files to save the episodic returns and episode lengths of the
	// behaviour policy in. Empty names disable tracking.
	ReturnsFile string `yaml:"returns_file"`
	LengthsFile string `yaml:"lengths_file"`

	// EvalEpisodes is the number of episodes to evaluate the greedy
	// target policy for after training
	EvalEpisodes int `yaml:"eval_episodes"`
}

// DefaultConfig returns the default experiment configuration on the
// default track
func DefaultConfig() Config {
	return Config{
		Agent: mcoff.DefaultConfig(),
		Environment: racetrack.Config{
			Noise:    0.1,
			Discount: 1.0,
		},
		CheckpointPrefix: "q",
		EvalEpisodes:     10,
	}
}

// LoadConfig reads a YAML experiment configuration from a file. Fields
// missing from the file keep their DefaultConfig values.
func LoadConfig(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("loadConfig: could not read config: %w",
			err)
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("loadConfig: could not parse %v: %w",
			filename, err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("loadConfig: %w", err)
	}
	return c, nil
}

// Validate ensures the Config is valid
func (c Config) Validate() error {
	if err := c.Agent.Validate(); err != nil {
		return fmt.Errorf("invalid agent config: %v", err)
	}
	if err := c.Environment.Validate(); err != nil {
		return fmt.Errorf("invalid environment config: %v", err)
	}
	if c.CheckpointEvery < 0 {
		return fmt.Errorf("checkpoint interval cannot be lower than 0")
	}
	if c.CheckpointEvery > 0 && c.CheckpointPrefix == "" {
		return fmt.Errorf("checkpointing requires a checkpoint prefix")
	}
	if c.EvalEpisodes < 0 {
		return fmt.Errorf("evaluation episodes cannot be lower than 0")
	}
	return nil
}

// CreateEnv creates the racetrack environment described by the Config.
// The environment uses the agent's discount factor.
func (c Config) CreateEnv() (*racetrack.Racetrack, error) {
	envConf := c.Environment
	envConf.Discount = c.Agent.Discount

	env, _, err := racetrack.New(envConf)
	if err != nil {
		return nil, fmt.Errorf("createEnv: %w", err)
	}
	return env, nil
}

// CreateExp creates the experiment described by the Config: the
// racetrack environment, an MCOff agent with a uniform random behaviour
// policy, the configured trackers, and the checkpointer.
func (c Config) CreateExp(opts ...Option) (*MonteCarlo, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("createExp: %w", err)
	}

	env, err := c.CreateEnv()
	if err != nil {
		return nil, fmt.Errorf("createExp: %w", err)
	}

	behaviour := policy.NewUniform(env.NumActions(), c.Agent.Seed)
	agent, err := mcoff.New(env, behaviour, c.Agent)
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create agent: %w", err)
	}

	var trackers []tracker.Tracker
	if c.ReturnsFile != "" {
		trackers = append(trackers, tracker.NewReturn(c.ReturnsFile))
	}
	if c.LengthsFile != "" {
		trackers = append(trackers, tracker.NewEpisodeLength(c.LengthsFile))
	}

	if c.CheckpointEvery > 0 {
		names := checkpointer.FilenameEnumerator(0, c.CheckpointPrefix,
			".gob")
		check := checkpointer.NewNStep(c.CheckpointEvery, agent.Q(), names)
		opts = append([]Option{WithCheckpointer(check)}, opts...)
	}

	return NewMonteCarlo(env, agent, c.Agent.Episodes, trackers, opts...), nil
}
