package app

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/specialistvlad/wiregrid/internal/circuit"
	"github.com/specialistvlad/wiregrid/internal/ctxlog"
	"github.com/specialistvlad/wiregrid/internal/netlist"
	"github.com/specialistvlad/wiregrid/internal/scenario"
	"github.com/specialistvlad/wiregrid/internal/topology"
	"github.com/specialistvlad/wiregrid/internal/whatif"
)

// Run executes the main application logic based on the App's configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	var sc *scenario.Scenario
	netlistPath := a.config.NetlistPath
	if a.config.ScenarioPath != "" {
		var err error
		sc, err = scenario.Load(ctx, a.config.ScenarioPath)
		if err != nil {
			return fmt.Errorf("failed to load scenario: %w", err)
		}
		if netlistPath == "" {
			netlistPath = sc.Netlist
		}
	}
	if netlistPath == "" {
		return fmt.Errorf("no netlist given and scenario %s does not declare one", a.config.ScenarioPath)
	}

	c, err := loadCircuit(netlistPath)
	if err != nil {
		return err
	}
	a.logger.Info("Circuit loaded.", "path", netlistPath, "wires", c.Len())

	var results []whatif.Result
	if sc != nil {
		results, err = scenario.Run(ctx, sc, c)
	} else {
		results, err = a.runParts(ctx, c)
	}
	if err != nil {
		return err
	}

	extra, err := whatif.Run(ctx, c, a.overrideQueries(), a.config.WorkerCount)
	if err != nil {
		return err
	}
	results = append(results, extra...)

	for _, r := range results {
		fmt.Fprintf(a.outW, "%s: %d\n", r.Query.Name, r.Signal)
	}

	if a.config.ShowAll {
		if err := a.printAll(ctx, c); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.", "answers", len(results))
	return nil
}

// loadCircuit reads and builds the netlist at path.
func loadCircuit(path string) (*topology.Circuit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open netlist: %w", err)
	}
	defer f.Close()

	instructions, err := netlist.Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse netlist %s: %w", path, err)
	}
	return topology.Build(instructions), nil
}

// runParts resolves the configured wire, then, if a feedback wire is set,
// resolves it again in a fresh context with the feedback wire forced to the
// first answer.
func (a *App) runParts(ctx context.Context, c *topology.Circuit) ([]whatif.Result, error) {
	part1 := whatif.Query{Name: "part1", Target: a.config.Wire}
	first, err := circuit.New(c).Resolve(ctx, part1.Target)
	if err != nil {
		return nil, fmt.Errorf("part1: %w", err)
	}
	results := []whatif.Result{{Query: part1, Signal: first}}

	if a.config.Feedback == "" {
		return results, nil
	}

	part2 := whatif.Query{
		Name:     "part2",
		Target:   a.config.Wire,
		Override: &whatif.Assignment{Wire: a.config.Feedback, Value: first},
	}
	second, err := whatif.Answer(ctx, c, part2)
	if err != nil {
		return nil, fmt.Errorf("part2: %w", err)
	}
	return append(results, whatif.Result{Query: part2, Signal: second}), nil
}

func (a *App) overrideQueries() []whatif.Query {
	queries := make([]whatif.Query, 0, len(a.config.Overrides))
	for _, o := range a.config.Overrides {
		queries = append(queries, whatif.Query{
			Name:     a.config.Wire + " with " + o.Wire + "=" + strconv.Itoa(int(o.Value)),
			Target:   a.config.Wire,
			Override: &o,
		})
	}
	return queries
}

// printAll prints every wire's signal in name order.
func (a *App) printAll(ctx context.Context, c *topology.Circuit) error {
	signals, err := circuit.New(c).ResolveAll(ctx)
	if err != nil {
		return err
	}
	for _, name := range c.Names() {
		fmt.Fprintf(a.outW, "%s = %d\n", name, signals[name])
	}
	return nil
}
