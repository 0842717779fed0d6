package metalsim

import "fmt"

// OutOfRangeError reports a price lookup (or a simulation window) falling
// outside the available price history.
type OutOfRangeError struct {
	Requested Date
	First     Date
	Last      Date
}

func (e *OutOfRangeError) Error() string {
	if !e.Last.IsZero() && e.Requested.After(e.Last) {
		return fmt.Sprintf("date %s is after the last quoted date %s", e.Requested, e.Last)
	}
	return fmt.Sprintf("date %s precedes the first quoted date %s", e.Requested, e.First)
}

// InvalidAllocationError reports malformed allocation weights. It is raised at
// construction time, before any simulation runs.
type InvalidAllocationError struct {
	Reason string
}

func (e *InvalidAllocationError) Error() string {
	return "invalid allocation: " + e.Reason
}

// SimulationError wraps a failure during the simulation walk with the
// offending date. The run is abandoned: a truncated portfolio history would be
// misleading, so no partial ledger is ever returned.
type SimulationError struct {
	On  Date
	Err error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("simulation failed on %s: %v", e.On, e.Err)
}

func (e *SimulationError) Unwrap() error { return e.Err }
