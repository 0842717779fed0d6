package metalsim

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Metal identifies one of the precious metals tracked by the simulator.
type Metal int

const (
	Gold Metal = iota
	Silver
	Platinum
	Palladium
)

// AllMetals lists every metal in canonical order.
var AllMetals = []Metal{Gold, Silver, Platinum, Palladium}

func (m Metal) String() string {
	switch m {
	case Gold:
		return "gold"
	case Silver:
		return "silver"
	case Platinum:
		return "platinum"
	case Palladium:
		return "palladium"
	default:
		return fmt.Sprintf("metal(%d)", int(m))
	}
}

// ParseMetal parses a metal name, case-insensitively.
func ParseMetal(s string) (Metal, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gold", "au":
		return Gold, nil
	case "silver", "ag":
		return Silver, nil
	case "platinum", "pt":
		return Platinum, nil
	case "palladium", "pd":
		return Palladium, nil
	default:
		return 0, fmt.Errorf("unknown metal %q", s)
	}
}

func (m Metal) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Metal) UnmarshalText(b []byte) error {
	parsed, err := ParseMetal(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Unit is the weight unit quantities are expressed in.
type Unit int

const (
	Gram Unit = iota
	TroyOunce
)

// gramsPerTroyOunce is the exact conversion factor used by bullion dealers.
var gramsPerTroyOunce = decimal.NewFromFloat(31.1035)

func (u Unit) String() string {
	switch u {
	case Gram:
		return "g"
	case TroyOunce:
		return "oz"
	default:
		return fmt.Sprintf("unit(%d)", int(u))
	}
}

// ParseUnit parses a weight unit name ("g", "gram", "oz", "ounce").
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "g", "gram", "grams":
		return Gram, nil
	case "oz", "ounce", "ounces":
		return TroyOunce, nil
	default:
		return 0, fmt.Errorf("unknown weight unit %q", s)
	}
}

// Convert converts a quantity from unit u to unit to.
func (u Unit) Convert(q Quantity, to Unit) Quantity {
	if u == to {
		return q
	}
	switch {
	case u == TroyOunce && to == Gram:
		return Quantity{value: q.value.Mul(gramsPerTroyOunce)}
	case u == Gram && to == TroyOunce:
		return Quantity{value: q.value.Div(gramsPerTroyOunce)}
	default:
		return q
	}
}
