// Package metalsim simulates precious-metals portfolio investment over
// historical spot price series (gold, silver, platinum, palladium). Given an
// allocation policy, a systematic purchase plan, rebalancing trigger dates,
// and a storage-cost model, it reconstructs holdings, cash flows, and
// portfolio value event by event.
//
// The core functionalities include:
//   - Price History: a date-indexed, immutable series of per-metal spot
//     prices with carry-forward lookup for non-trading days.
//   - Simulation Engine: a deterministic, batch walk that applies purchases,
//     rebalances, and storage fees in strict date order and produces an
//     append-only ledger of portfolio snapshots.
//   - Analysis: ROI, annualized and inflation-adjusted returns, and risk
//     metrics computed over the snapshot ledger.
//   - Scenario Configuration: strongly-typed simulation inputs built from
//     validated TOML scenario files, rejected eagerly on invalid input.
//   - Data Persistence: encoding and decoding of price histories (CSV) and
//     snapshot ledgers (JSONL) in human-readable, version-controllable form.
//
// This package serves as the foundational logic for the `msim` command-line
// tool. The engine is a pure function of its inputs: it performs no I/O and
// holds no shared state, so independent simulations can run concurrently.
package metalsim
