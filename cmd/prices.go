package cmd

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/google/subcommands"

	"github.com/prometalle/metalsim"
)

// pricesCmd inspects the local price history.
type pricesCmd struct {
	date string
}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "inspect the metal price history" }
func (*pricesCmd) Usage() string {
	return `msim prices [-d <date>]

  Shows the price history range, and the (carried-forward) quote on a date.
`
}

func (c *pricesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Show the quote on this date (defaults to the last quoted date)")
}

func (c *pricesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	series, err := LoadPrices()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	on := series.Last()
	if c.date != "" {
		if on, err = metalsim.ParseDate(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	quote, err := series.QuoteAt(on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("%d quotes from %s to %s\n", series.Len(), series.First(), series.Last())
	fmt.Printf("Quote on %s (quoted %s):\n", on, quote.On)
	for _, metal := range metalsim.AllMetals {
		fmt.Printf("  %-10s %s\n", metal, quote.Prices[metal])
	}
	return subcommands.ExitSuccess
}

// fetchCmd imports the latest spot quote from a JSON feed and appends it to
// the local price history.
type fetchCmd struct {
	url       string
	gold      string
	silver    string
	platinum  string
	palladium string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch the latest spot quote from a JSON feed" }
func (*fetchCmd) Usage() string {
	return `msim fetch -url <feed> -gold <jsonpath> -silver <jsonpath> -platinum <jsonpath> -palladium <jsonpath>

  Fetches the feed, extracts each metal's spot price with the given JSONPath
  expressions, and appends today's quote to the price history file.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.url, "url", "", "Feed URL answering JSON")
	f.StringVar(&c.gold, "gold", "", "JSONPath to the gold spot price")
	f.StringVar(&c.silver, "silver", "", "JSONPath to the silver spot price")
	f.StringVar(&c.platinum, "platinum", "", "JSONPath to the platinum spot price")
	f.StringVar(&c.palladium, "palladium", "", "JSONPath to the palladium spot price")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log := Logger()
	quote, err := metalsim.FetchSpot(new(http.Client), metalsim.FeedConfig{
		URL:      c.url,
		Currency: *currency,
		Paths: map[metalsim.Metal]string{
			metalsim.Gold:      c.gold,
			metalsim.Silver:    c.silver,
			metalsim.Platinum:  c.platinum,
			metalsim.Palladium: c.palladium,
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	log.Debug().Stringer("on", quote.On).Msg("fetched spot quote")

	series, err := LoadPrices()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := series.Append(quote.On, quote.Prices); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	out, err := os.Create(*pricesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer out.Close()
	if err := metalsim.EncodePrices(out, series); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Appended quote on %s to %s\n", quote.On, *pricesFile)
	return subcommands.ExitSuccess
}
