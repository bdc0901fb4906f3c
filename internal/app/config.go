package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/wiregrid/internal/whatif"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	NetlistPath  string // netlist text file; overrides the scenario's netlist
	ScenarioPath string // hcl file or directory

	// Wire is the wire resolved by the two-part run.
	Wire string
	// Feedback is the wire that receives part one's answer in part two.
	// Empty skips part two.
	Feedback string
	// Overrides become extra what-if queries on Wire, one per assignment.
	Overrides []whatif.Assignment
	// ShowAll prints the signal of every wire after the queries.
	ShowAll bool

	LogFormat   string
	LogLevel    string
	WorkerCount int
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.NetlistPath == "" && cfg.ScenarioPath == "" {
		return nil, errors.New("a netlist or a scenario is required")
	}
	if cfg.Wire == "" && (cfg.ScenarioPath == "" || len(cfg.Overrides) > 0) {
		return nil, errors.New("Wire is a required configuration field without a scenario or with overrides")
	}
	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("WorkerCount must be at least 1, got %d", cfg.WorkerCount)
	}
	return &cfg, nil
}
