package engine

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
)

type GreeksMethod string

const (
	FiniteDifference GreeksMethod = "finite-difference"
	Pathwise         GreeksMethod = "pathwise"
)

// Config controls a Monte Carlo run. Zero values fall back to the
// defaults of the original engine: 10,000 paths of 252 steps, seed 42.
type Config struct {
	NumPaths       int
	NumSteps       int
	Seed           uint64
	Workers        int
	BatchSize      int
	Antithetic     bool
	ControlVariate bool
	GreeksMethod   GreeksMethod

	// TargetStdError stops the run early once the discounted standard
	// error drops below it. Zero disables convergence-based stopping.
	TargetStdError float64
}

func DefaultConfig() Config {
	return Config{
		NumPaths:     10000,
		NumSteps:     252,
		Seed:         42,
		Workers:      runtime.GOMAXPROCS(0),
		BatchSize:    1000,
		GreeksMethod: FiniteDifference,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()

	if c.NumPaths <= 0 {
		c.NumPaths = def.NumPaths
	}
	if c.NumSteps <= 0 {
		c.NumSteps = def.NumSteps
	}
	if c.Seed == 0 {
		c.Seed = def.Seed
	}
	if c.Workers <= 0 {
		c.Workers = def.Workers
	}
	if c.BatchSize <= 0 {
		c.BatchSize = def.BatchSize
	}
	if c.GreeksMethod == "" {
		c.GreeksMethod = def.GreeksMethod
	}

	return c
}

// ApplyEnvOverrides layers MC_* environment variables on top of the
// config. Unset variables leave the config untouched.
func (c Config) ApplyEnvOverrides() (Config, error) {
	if v := os.Getenv("MC_NUM_PATHS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("Config: ApplyEnvOverrides: invalid MC_NUM_PATHS: %v", err)
		}
		c.NumPaths = n
	}

	if v := os.Getenv("MC_NUM_STEPS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("Config: ApplyEnvOverrides: invalid MC_NUM_STEPS: %v", err)
		}
		c.NumSteps = n
	}

	if v := os.Getenv("MC_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c, fmt.Errorf("Config: ApplyEnvOverrides: invalid MC_SEED: %v", err)
		}
		c.Seed = n
	}

	if v := os.Getenv("MC_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("Config: ApplyEnvOverrides: invalid MC_WORKERS: %v", err)
		}
		c.Workers = n
	}

	return c, nil
}
