package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/prometalle/metalsim"
	"github.com/prometalle/metalsim/renderer"
)

// simulateCmd holds the flags for the 'simulate' subcommand.
type simulateCmd struct {
	config string
	output string
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "run a portfolio simulation from a scenario file" }
func (*simulateCmd) Usage() string {
	return `msim simulate -c <scenario.toml> [-o <ledger.jsonl>]

  Runs the scenario against the price history and displays a summary report.
  With -o, the full snapshot ledger is also written as JSONL.
`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "c", "", "Scenario file (TOML)")
	f.StringVar(&c.output, "o", "", "Write the snapshot ledger to this file (JSONL)")
}

func (c *simulateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, ledger, scenario, err := runScenario(c.config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.output != "" {
		if err := writeLedger(c.output, scenario, ledger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Wrote %d snapshots to %s\n", len(ledger), c.output)
	}

	printMarkdown(renderer.SummaryMarkdown(report))
	return subcommands.ExitSuccess
}

// runScenario loads everything and runs the simulation; shared by the
// simulate, chart and report subcommands.
func runScenario(config string) (*metalsim.SimulationReport, []metalsim.Snapshot, *metalsim.Scenario, error) {
	if config == "" {
		return nil, nil, nil, fmt.Errorf("a scenario file is required (-c)")
	}
	f, err := os.Open(config)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("cannot open scenario %q: %w", config, err)
	}
	defer f.Close()
	scenario, err := metalsim.DecodeScenario(f)
	if err != nil {
		return nil, nil, nil, err
	}

	prices, err := LoadPrices()
	if err != nil {
		return nil, nil, nil, err
	}
	sim, err := scenario.Simulation(prices)
	if err != nil {
		return nil, nil, nil, err
	}

	log := Logger()
	log.Debug().Str("scenario", scenario.Name).Msg("starting simulation")
	ledger, err := sim.Run()
	if err != nil {
		return nil, nil, nil, err
	}
	log.Debug().Int("snapshots", len(ledger)).Msg("simulation complete")

	inflation := metalsim.DefaultInflationTable(scenario.Currency)
	report, err := metalsim.NewSimulationReport(scenario.Name, ledger, inflation)
	if err != nil {
		return nil, nil, nil, err
	}
	if sim.Costs != nil {
		liq, err := metalsim.LiquidationValue(ledger[len(ledger)-1], prices, sim.Costs)
		if err != nil {
			return nil, nil, nil, err
		}
		report.Liquidation = liq
	}
	return report, ledger, scenario, nil
}

func writeLedger(path string, scenario *metalsim.Scenario, ledger []metalsim.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create ledger file %q: %w", path, err)
	}
	defer f.Close()
	run := metalsim.NewRunInfo(scenario.Name, scenario.Currency)
	if err := metalsim.EncodeLedger(f, run, ledger); err != nil {
		return fmt.Errorf("cannot write ledger file %q: %w", path, err)
	}
	return nil
}
