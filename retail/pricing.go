package retail

import (
	"fmt"
	"math"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DefaultDemandElasticity is used when the caller does not supply one.
const DefaultDemandElasticity = 1.2

// Strategy names, in the order they are evaluated and serialised.
const (
	StrategyCostPlus30         = "cost_plus_30"
	StrategyMarketCompetitive  = "market_competitive"
	StrategyPremiumPositioning = "premium_positioning"
	StrategyPenetrationPricing = "penetration_pricing"
)

// Strategies lists every pricing strategy in evaluation order.
var Strategies = []string{
	StrategyCostPlus30,
	StrategyMarketCompetitive,
	StrategyPremiumPositioning,
	StrategyPenetrationPricing,
}

const (
	// syntheticMarkup stands in for the competitor average when no competitor prices are known.
	syntheticMarkup = 1.5
	// minQualifyingMargin is the margin a strategy must beat to be ranked on its own margin.
	minQualifyingMargin = 15
)

// StrategyQuote is one candidate price and its economics.
type StrategyQuote struct {
	Price         float64 `json:"price"`
	MarginPercent float64 `json:"margin_percent"`
	ProfitPerUnit float64 `json:"profit_per_unit"`
}

// PricingRecommendation holds every strategy quote for a product and the chosen one.
type PricingRecommendation struct {
	CurrentCost         float64                                       `json:"current_cost"`
	CompetitorAverage   float64                                       `json:"competitor_average"`
	Strategies          *orderedmap.OrderedMap[string, StrategyQuote] `json:"strategies"`
	RecommendedStrategy string                                        `json:"recommended_strategy"`
}

// AnalyzePricing scores the four strategies for every product in the cost map
// (product -> unit cost) using competitor prices (product -> competitor -> price).
//
// demandElasticity must be a finite number; it is accepted for callers that
// send it but does not influence any price.
func AnalyzePricing(competitorJSON, costJSON string, demandElasticity float64) (map[string]PricingRecommendation, error) {
	const op = "analyze pricing strategy"

	competitors, err := decodeNestedNumbers(op, "competitor prices", competitorJSON)
	if err != nil {
		return nil, err
	}
	costs, err := decodeNumbers(op, "cost data", costJSON)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(demandElasticity) || math.IsInf(demandElasticity, 0) {
		return nil, &Error{Op: op, Err: fmt.Errorf("demand elasticity must be finite, got %v", demandElasticity)}
	}

	out := make(map[string]PricingRecommendation, len(costs))
	for product, cost := range costs {
		rec := price(cost, competitorAverage(cost, competitors[product]))
		if !rec.finite() {
			return nil, outOfRange(op, "product "+product)
		}
		out[product] = rec
	}
	return out, nil
}

// competitorAverage is the mean competitor price, or cost×1.5 when there is none.
// Prices are summed in competitor-name order so the result does not depend on map iteration.
func competitorAverage(cost float64, prices map[string]float64) float64 {
	if len(prices) == 0 {
		return cost * syntheticMarkup
	}
	var sum float64
	for _, name := range sortedKeys(prices) {
		sum += prices[name]
	}
	return sum / float64(len(prices))
}

func price(cost, avg float64) PricingRecommendation {
	candidates := map[string]float64{
		StrategyCostPlus30:         cost * 1.3,
		StrategyMarketCompetitive:  avg * 0.95,
		StrategyPremiumPositioning: avg * 1.1,
		StrategyPenetrationPricing: avg * 0.8,
	}

	rec := PricingRecommendation{
		CurrentCost:       cost,
		CompetitorAverage: avg,
		Strategies:        orderedmap.New[string, StrategyQuote](),
	}
	bestKey := math.Inf(-1)
	for _, name := range Strategies {
		q := quote(cost, candidates[name])
		rec.Strategies.Set(name, q)

		// Margins that do not qualify compare as 0, so when nothing qualifies
		// the first strategy wins regardless of how negative the others are.
		key := 0.0
		if q.MarginPercent > minQualifyingMargin {
			key = q.MarginPercent
		}
		if key > bestKey {
			bestKey = key
			rec.RecommendedStrategy = name
		}
	}
	return rec
}

func (r PricingRecommendation) finite() bool {
	if !finite(r.CurrentCost, r.CompetitorAverage) {
		return false
	}
	for pair := r.Strategies.Oldest(); pair != nil; pair = pair.Next() {
		q := pair.Value
		if !finite(q.Price, q.MarginPercent, q.ProfitPerUnit) {
			return false
		}
	}
	return true
}

func quote(cost, p float64) StrategyQuote {
	q := StrategyQuote{Price: p, ProfitPerUnit: p - cost}
	if p > 0 {
		q.MarginPercent = (p - cost) / p * 100
	}
	return q
}
