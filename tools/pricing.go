package tools

import (
	"encoding/json"

	"github.com/petasbytes/retail-agent/retail"
)

const PricingStrategyName = "pricing_strategy_analysis"

type PricingStrategyInput struct {
	CompetitorPrices JSONText `json:"competitor_prices" jsonschema_description:"JSON object mapping product name to an object of competitor name to price."`
	CostData         JSONText `json:"cost_data" jsonschema_description:"JSON object mapping product name to unit cost."`
	// Pointer so an omitted value can be told apart from an explicit 0.
	DemandElasticity *float64 `json:"demand_elasticity,omitempty" jsonschema_description:"Demand elasticity (default 1.2)."`
}

var PricingStrategyDefinition = ToolDefinition{
	Name: PricingStrategyName,
	Description: `Analyze pricing strategies from competitor prices and unit costs.

For each product in cost_data returns current_cost, competitor_average (cost x 1.5 when no competitor prices are known), four strategies (cost_plus_30, market_competitive, premium_positioning, penetration_pricing) with price, margin_percent and profit_per_unit, and recommended_strategy (highest margin above 15%).
On failure returns {"error": "..."}.`,
	InputSchema: PricingStrategyInputSchema,
	Function:    safe(PricingStrategy),
}

var PricingStrategyInputSchema = GenerateSchema[PricingStrategyInput]()

func PricingStrategy(input json.RawMessage) (string, error) {
	var in PricingStrategyInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", invalidInput(PricingStrategyName, err)
	}
	elasticity := retail.DefaultDemandElasticity
	if in.DemandElasticity != nil {
		elasticity = *in.DemandElasticity
	}
	res, err := retail.AnalyzePricing(string(in.CompetitorPrices), string(in.CostData), elasticity)
	if err != nil {
		return "", toolError(err)
	}
	return encodeResult(res)
}
