package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/prometalle/metalsim/renderer"
)

// chartCmd exports a simulation chart as PNG.
type chartCmd struct {
	config string
	output string
	pie    bool
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "export a simulation chart as PNG" }
func (*chartCmd) Usage() string {
	return `msim chart -c <scenario.toml> -o <chart.png> [-pie]

  Runs the scenario and renders the portfolio value over time as a line
  chart, or the final allocation as a pie chart with -pie.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "c", "", "Scenario file (TOML)")
	f.StringVar(&c.output, "o", "chart.png", "Output PNG file")
	f.BoolVar(&c.pie, "pie", false, "Render the final allocation pie chart instead")
}

func (c *chartCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, _, _, err := runScenario(c.config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var png []byte
	if c.pie {
		png, err = renderer.AllocationChartPNG(report)
	} else {
		png, err = renderer.ValueChartPNG(report)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(c.output, png, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Wrote chart to %s\n", c.output)
	return subcommands.ExitSuccess
}
