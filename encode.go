package metalsim

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The ledger is persisted as JSONL: a header line with run metadata, then one
// snapshot per line. Human-readable and git-friendly, one run per file.

// RunInfo identifies an exported simulation run.
type RunInfo struct {
	ID       string `json:"run"`
	Name     string `json:"name,omitempty"`
	Currency string `json:"currency"`
	Created  string `json:"created"`
}

// NewRunInfo mints the metadata for a ledger export.
func NewRunInfo(name, currency string) RunInfo {
	return RunInfo{
		ID:       uuid.NewString(),
		Name:     name,
		Currency: currency,
		Created:  time.Now().UTC().Format(time.RFC3339),
	}
}

// jsnapshot is the wire form of a Snapshot.
type jsnapshot struct {
	On       Date                `json:"on"`
	Holdings map[string]Quantity `json:"holdings"`
	Values   map[string]Money    `json:"values"`
	Total    Money               `json:"total"`
	Invested Money               `json:"invested"`
	FeesPaid Money               `json:"feesPaid"`
	Tag      string              `json:"event,omitempty"`
}

// EncodeLedger writes run metadata and the snapshot ledger as JSONL.
func EncodeLedger(w io.Writer, run RunInfo, ledger []Snapshot) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(run); err != nil {
		return fmt.Errorf("cannot encode run header: %w", err)
	}
	for _, snap := range ledger {
		js := jsnapshot{
			On:       snap.On,
			Holdings: make(map[string]Quantity, len(snap.Holdings)),
			Values:   make(map[string]Money, len(snap.Values)),
			Total:    snap.Total,
			Invested: snap.Invested,
			FeesPaid: snap.FeesPaid,
		}
		if snap.Tag != TagNone {
			js.Tag = snap.Tag.String()
		}
		for metal, q := range snap.Holdings {
			js.Holdings[metal.String()] = q
		}
		for metal, v := range snap.Values {
			js.Values[metal.String()] = v
		}
		if err := enc.Encode(js); err != nil {
			return fmt.Errorf("cannot encode snapshot on %s: %w", snap.On, err)
		}
	}
	return nil
}

// DecodeLedger reads back a JSONL ledger written by EncodeLedger.
func DecodeLedger(r io.Reader) (RunInfo, []Snapshot, error) {
	scanner := bufio.NewScanner(r)

	var run RunInfo
	if !scanner.Scan() {
		return run, nil, fmt.Errorf("ledger stream is empty")
	}
	if err := json.Unmarshal(scanner.Bytes(), &run); err != nil {
		return run, nil, fmt.Errorf("cannot decode run header: %w", err)
	}

	var ledger []Snapshot
	line := 1
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		var js jsnapshot
		if err := json.Unmarshal([]byte(raw), &js); err != nil {
			return run, nil, fmt.Errorf("cannot decode snapshot on line %d: %w", line, err)
		}
		// JSON numbers carry no currency; the run header does.
		snap := Snapshot{
			On:       js.On,
			Holdings: NewHoldings(),
			Values:   make(map[Metal]Money, len(js.Values)),
			Total:    js.Total.inCurrency(run.Currency),
			Invested: js.Invested.inCurrency(run.Currency),
			FeesPaid: js.FeesPaid.inCurrency(run.Currency),
		}
		if js.Tag != "" {
			tag, err := ParseEventTag(js.Tag)
			if err != nil {
				return run, nil, fmt.Errorf("line %d: %w", line, err)
			}
			snap.Tag = tag
		}
		for name, q := range js.Holdings {
			metal, err := ParseMetal(name)
			if err != nil {
				return run, nil, fmt.Errorf("line %d: %w", line, err)
			}
			snap.Holdings[metal] = q
		}
		for name, v := range js.Values {
			metal, err := ParseMetal(name)
			if err != nil {
				return run, nil, fmt.Errorf("line %d: %w", line, err)
			}
			snap.Values[metal] = v.inCurrency(run.Currency)
		}
		ledger = append(ledger, snap)
	}
	return run, ledger, scanner.Err()
}
