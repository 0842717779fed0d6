package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/prometalle/metalsim/renderer"
)

// reportCmd exports a simulation report as PDF.
type reportCmd struct {
	config string
	output string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "export a simulation report as PDF" }
func (*reportCmd) Usage() string {
	return `msim report -c <scenario.toml> -o <report.pdf>

  Runs the scenario and writes a one-page PDF report.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "c", "", "Scenario file (TOML)")
	f.StringVar(&c.output, "o", "report.pdf", "Output PDF file")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, _, _, err := runScenario(c.config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	out, err := os.Create(c.output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer out.Close()
	if err := renderer.WritePDF(out, report); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Wrote report to %s\n", c.output)
	return subcommands.ExitSuccess
}
