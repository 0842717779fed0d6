// Package cmd implements the CLI application to simulate precious-metals
// portfolios over historical price series.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/prometalle/metalsim"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

// The .env file must be loaded before the flag defaults below are computed.
func init() { godotenv.Load() }

var pricesFile = flag.String("prices-file", envOr("MSIM_PRICES_FILE", "prices.csv"), "Path to the metal price history file (CSV format)")
var currency = flag.String("currency", envOr("MSIM_CURRENCY", "EUR"), "Base currency the price history is quoted in")
var verbose = flag.Bool("v", false, "Enable debug logging")

// envOr lets a .env file (loaded by the main package) override flag defaults.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Commands lists every subcommand for registration by the main package.
var Commands = []subcommands.Command{
	&simulateCmd{},
	&scheduleCmd{},
	&pricesCmd{},
	&fetchCmd{},
	&chartCmd{},
	&reportCmd{},
}

// Logger returns the CLI logger. The simulation engine itself never logs;
// only command plumbing does.
func Logger() zerolog.Logger {
	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		Level(level).
		With().Timestamp().Logger()
}

// LoadPrices reads the price history configured by the global flags.
func LoadPrices() (*metalsim.PriceSeries, error) {
	f, err := os.Open(*pricesFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open price history %q: %w", *pricesFile, err)
	}
	defer f.Close()
	series, err := metalsim.DecodePrices(f, *currency)
	if err != nil {
		return nil, fmt.Errorf("cannot read price history %q: %w", *pricesFile, err)
	}
	logger := Logger()
	logger.Debug().
		Str("file", *pricesFile).
		Int("quotes", series.Len()).
		Stringer("from", series.First()).
		Stringer("to", series.Last()).
		Msg("loaded price history")
	return series, nil
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when the terminal renderer cannot be built.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
