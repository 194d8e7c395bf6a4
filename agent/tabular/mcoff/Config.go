package mcoff

import (
	"fmt"

	"github.com/samuelfneumann/racetrack/agent"
)

// Config represents a configuration for the MCOff agent
type Config struct {
	Episodes int     `yaml:"episodes"`  // Number of episodes to learn for
	MaxSteps int     `yaml:"max_steps"` // Step budget per episode
	Discount float64 `yaml:"discount"`
	Seed     uint64  `yaml:"seed"` // Seed for the behaviour policy
}

// DefaultConfig returns the default configuration: undiscounted
// returns with a step budget of 10,000 per episode
func DefaultConfig() Config {
	return Config{
		Episodes: 50_000,
		MaxSteps: 10_000,
		Discount: 1.0,
	}
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Episodes < 0 {
		return fmt.Errorf("episodes cannot be lower than 0")
	}
	if c.MaxSteps < 1 {
		return fmt.Errorf("max steps must be at least 1")
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("discount must be in [0, 1] but got %v",
			c.Discount)
	}
	return nil
}

// Type returns the type of the agent constructed by the Config
func (c Config) Type() agent.Type {
	return agent.MCOffPolicyTabular
}
