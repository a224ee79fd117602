package tools

import (
	"encoding/json"

	"github.com/petasbytes/retail-agent/retail"
)

const AnalyzeSalesName = "analyze_sales_data"

type AnalyzeSalesInput struct {
	SalesData JSONText `json:"sales_data" jsonschema_description:"JSON array of sales records, each an object with amount (number), product (string) and date (string)."`
}

var AnalyzeSalesDefinition = ToolDefinition{
	Name: AnalyzeSalesName,
	Description: `Analyze a sales log and return basic insights.

Returns total_sales, average_sale, total_transactions, top_products (up to 5 products by summed amount, highest first) and sales_by_date (summed amount per date).
On failure returns {"error": "..."}.`,
	InputSchema: AnalyzeSalesInputSchema,
	Function:    safe(AnalyzeSales),
}

var AnalyzeSalesInputSchema = GenerateSchema[AnalyzeSalesInput]()

func AnalyzeSales(input json.RawMessage) (string, error) {
	var in AnalyzeSalesInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", invalidInput(AnalyzeSalesName, err)
	}
	res, err := retail.AnalyzeSales(string(in.SalesData))
	if err != nil {
		return "", toolError(err)
	}
	return encodeResult(res)
}
