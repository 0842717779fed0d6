package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/google/subcommands"

	"github.com/prometalle/metalsim"
	"github.com/prometalle/metalsim/renderer"
)

// scheduleCmd previews the purchase events a plan would generate.
type scheduleCmd struct {
	frequency string
	day       int
	cron      string
	amount    float64
	start     string
	end       string
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "preview the systematic purchase events of a plan" }
func (*scheduleCmd) Usage() string {
	return `msim schedule -freq monthly -day 15 -amount 500 -start 2020-01-01 -end 2020-12-31

  Lists the purchase dates a plan generates, without running a simulation.
  Use -cron for a custom recurrence instead of -freq/-day.
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.frequency, "freq", "monthly", "Purchase frequency (weekly, monthly, quarterly)")
	f.IntVar(&c.day, "day", 1, "Anchor day (weekday for weekly, day of month otherwise)")
	f.StringVar(&c.cron, "cron", "", "Custom cron expression instead of -freq/-day")
	f.Float64Var(&c.amount, "amount", 100, "Cash amount per purchase")
	f.StringVar(&c.start, "start", "", "First day of the window")
	f.StringVar(&c.end, "end", "", "Last day of the window")
}

func (c *scheduleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	schedule, err := c.plan()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	events := slices.Collect(schedule.Events())
	printMarkdown(renderer.ScheduleMarkdown(events))
	return subcommands.ExitSuccess
}

func (c *scheduleCmd) plan() (*metalsim.PurchaseSchedule, error) {
	start, err := metalsim.ParseDate(c.start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := metalsim.ParseDate(c.end)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}
	window := metalsim.NewRange(start, end)
	amount := metalsim.M(c.amount, *currency)

	if c.cron != "" {
		return metalsim.NewCronPurchaseSchedule(c.cron, amount, window)
	}
	freq, err := metalsim.ParsePeriod(c.frequency)
	if err != nil {
		return nil, err
	}
	return metalsim.NewPurchaseSchedule(freq, c.day, amount, window)
}
