package metalsim

import (
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Scenario is the user-facing description of a simulation, read from a TOML
// file. It is validated eagerly and converted once into the strongly-typed
// simulation inputs; nothing loosely-typed survives past construction.
type Scenario struct {
	Name     string `toml:"name" validate:"required"`
	Currency string `toml:"currency" validate:"required,len=3,uppercase"`
	Start    string `toml:"start" validate:"required"`
	End      string `toml:"end" validate:"required"`

	// Capital is invested on the start date. May be zero when the scenario
	// relies on systematic purchases only.
	Capital float64 `toml:"capital" validate:"gte=0"`

	// Allocation maps metal names to target weights in percent (40 = 40%).
	Allocation map[string]float64 `toml:"allocation" validate:"required,min=1"`

	Purchases *PurchasePlan         `toml:"purchases"`
	Rebalance []string              `toml:"rebalance" validate:"max=2"`
	Storage   *StoragePlan          `toml:"storage"`
	Margins   map[string]MarginPlan `toml:"margins"`
}

// PurchasePlan describes systematic purchases. Either frequency+day or a cron
// expression, not both.
type PurchasePlan struct {
	Frequency string  `toml:"frequency"`
	Day       int     `toml:"day"`
	Cron      string  `toml:"cron"`
	Amount    float64 `toml:"amount" validate:"gt=0"`
}

// StoragePlan describes the depositary fee.
type StoragePlan struct {
	Rate      float64 `toml:"rate" validate:"gte=0"`      // annualized, percent
	Basis     string  `toml:"basis"`                      // market-value | invested-cash
	Funding   string  `toml:"funding"`                    // cash | sell-proportional
	Frequency string  `toml:"frequency"`                  // monthly | yearly
	VAT       float64 `toml:"vat" validate:"gte=0,lt=100"` // percent
}

// MarginPlan is a per-metal dealer spread in percent.
type MarginPlan struct {
	Buy  float64 `toml:"buy" validate:"gte=0"`
	Sell float64 `toml:"sell" validate:"gte=0"`
}

// DecodeScenario reads and validates a TOML scenario. Structural validation
// happens here; cross-field domain checks happen in Simulation.
func DecodeScenario(r io.Reader) (*Scenario, error) {
	var sc Scenario
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("cannot decode scenario: %w", err)
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&sc); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &sc, nil
}

// Simulation converts the scenario into a ready-to-run simulation over the
// given price series. All configuration errors surface here, before any
// computation starts.
func (sc *Scenario) Simulation(prices *PriceSeries) (*Simulation, error) {
	if prices.Currency() != sc.Currency {
		return nil, fmt.Errorf("scenario currency %s does not match price series currency %s", sc.Currency, prices.Currency())
	}
	start, err := ParseDate(sc.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := ParseDate(sc.End)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s is before start date %s", end, start)
	}
	window := Range{From: start, To: end}

	weights := make(map[Metal]float64, len(sc.Allocation))
	for name, pct := range sc.Allocation {
		metal, err := ParseMetal(name)
		if err != nil {
			return nil, err
		}
		weights[metal] = pct / 100
	}
	allocation, err := NewAllocationPolicy(weights)
	if err != nil {
		return nil, err
	}

	sim := &Simulation{
		Prices:         prices,
		Allocation:     allocation,
		Window:         window,
		InitialCapital: M(sc.Capital, sc.Currency),
	}

	if sc.Purchases != nil {
		schedule, err := sc.Purchases.schedule(sc.Currency, window)
		if err != nil {
			return nil, err
		}
		sim.Schedule = schedule
	}

	for _, str := range sc.Rebalance {
		on, err := ParseDate(str)
		if err != nil {
			return nil, fmt.Errorf("invalid rebalance date: %w", err)
		}
		sim.Rebalances = append(sim.Rebalances, on)
	}

	if sc.Storage != nil {
		storage, err := sc.Storage.config()
		if err != nil {
			return nil, err
		}
		sim.Storage = storage
	}

	if len(sc.Margins) > 0 {
		model := &MarginCostModel{Margins: make(map[Metal]Margin, len(sc.Margins))}
		for name, plan := range sc.Margins {
			metal, err := ParseMetal(name)
			if err != nil {
				return nil, err
			}
			model.Margins[metal] = Margin{Buy: Percent(plan.Buy), Sell: Percent(plan.Sell)}
		}
		sim.Costs = model
	}

	if err := sim.Validate(); err != nil {
		return nil, err
	}
	return sim, nil
}

func (p *PurchasePlan) schedule(currency string, window Range) (*PurchaseSchedule, error) {
	amount := M(p.Amount, currency)
	if p.Cron != "" {
		if p.Frequency != "" {
			return nil, fmt.Errorf("purchases cannot set both frequency and cron")
		}
		return NewCronPurchaseSchedule(p.Cron, amount, window)
	}
	freq, err := ParsePeriod(p.Frequency)
	if err != nil {
		return nil, fmt.Errorf("invalid purchase frequency: %w", err)
	}
	return NewPurchaseSchedule(freq, p.Day, amount, window)
}

func (p *StoragePlan) config() (*StorageCostConfig, error) {
	cfg := &StorageCostConfig{
		Rate:      Percent(p.Rate),
		VATRate:   Percent(p.VAT),
		Frequency: Monthly,
	}
	var err error
	if p.Basis != "" {
		if cfg.Basis, err = ParseFeeBasis(p.Basis); err != nil {
			return nil, err
		}
	}
	if p.Funding != "" {
		if cfg.Funding, err = ParseFeeFunding(p.Funding); err != nil {
			return nil, err
		}
	}
	if p.Frequency != "" {
		if cfg.Frequency, err = ParsePeriod(p.Frequency); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
