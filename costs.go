package metalsim

// CostModel is the transaction-cost hook. Purchases execute at BuyPrice.
// SellPrice prices cashing a position out (see LiquidationValue); the engine's
// own sales (rebalancing and fee funding) execute at spot so the reduced
// positions land exactly on target. The engine takes the model as given and
// never assumes a particular formula.
type CostModel interface {
	// BuyPrice returns the effective unit price when buying at the given spot.
	BuyPrice(metal Metal, spot Money) Money
	// SellPrice returns the effective unit price when selling at the given spot.
	SellPrice(metal Metal, spot Money) Money
}

// NoCost trades at spot with no spread. It is the default model.
type NoCost struct{}

func (NoCost) BuyPrice(_ Metal, spot Money) Money  { return spot }
func (NoCost) SellPrice(_ Metal, spot Money) Money { return spot }

// Margin is a dealer spread in percent around the spot price.
type Margin struct {
	Buy  Percent // added to the spot price on purchase
	Sell Percent // subtracted from the spot price on sale
}

// MarginCostModel applies a per-metal dealer spread. Metals without an entry
// trade at spot.
type MarginCostModel struct {
	Margins map[Metal]Margin
}

// DefaultMargins reflects typical dealer spreads: tighter on gold, wider on
// the industrial metals.
func DefaultMargins() *MarginCostModel {
	return &MarginCostModel{Margins: map[Metal]Margin{
		Gold:      {Buy: 2.0, Sell: 1.5},
		Silver:    {Buy: 3.0, Sell: 2.0},
		Platinum:  {Buy: 4.0, Sell: 3.0},
		Palladium: {Buy: 4.0, Sell: 3.0},
	}}
}

func (m *MarginCostModel) BuyPrice(metal Metal, spot Money) Money {
	return spot.Add(m.Margins[metal].Buy.Of(spot))
}

func (m *MarginCostModel) SellPrice(metal Metal, spot Money) Money {
	return spot.Sub(m.Margins[metal].Sell.Of(spot))
}
