package tools

import (
	"encoding/json"

	"github.com/petasbytes/retail-agent/retail"
)

const InventoryOptimizationName = "calculate_inventory_optimization"

type InventoryOptimizationInput struct {
	CurrentInventory JSONText `json:"current_inventory" jsonschema_description:"JSON object mapping product name to units currently in stock."`
	SalesVelocity    JSONText `json:"sales_velocity" jsonschema_description:"JSON object mapping product name to average units sold per day."`
}

var InventoryOptimizationDefinition = ToolDefinition{
	Name: InventoryOptimizationName,
	Description: `Calculate inventory reorder recommendations from current stock and sales velocity.

For each product with a positive daily velocity returns current_stock, days_remaining, status (URGENT_REORDER under 7 days, REORDER_SOON under 14 days, otherwise ADEQUATE_STOCK) and recommended_order_quantity (restocks to 30 days when urgent, 21 days when soon).
Products with no velocity are omitted. On failure returns {"error": "..."}.`,
	InputSchema: InventoryOptimizationInputSchema,
	Function:    safe(InventoryOptimization),
}

var InventoryOptimizationInputSchema = GenerateSchema[InventoryOptimizationInput]()

func InventoryOptimization(input json.RawMessage) (string, error) {
	var in InventoryOptimizationInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", invalidInput(InventoryOptimizationName, err)
	}
	res, err := retail.OptimizeInventory(string(in.CurrentInventory), string(in.SalesVelocity))
	if err != nil {
		return "", toolError(err)
	}
	return encodeResult(res)
}
