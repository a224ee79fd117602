// Package tools defines tool contracts and the retail tools offered to the agent.
//
// Includes:
//   - ToolDefinition: name, description, JSON input schema, handler.
//   - GenerateSchema[T](): derive JSON Schema from Go structs.
//   - Retail tools: analyze_sales_data, calculate_inventory_optimization, pricing_strategy_analysis.
//   - Invariants: a handler never panics past its boundary; failures are returned as
//     ToolError, whose text is the {"error": "..."} result the model sees.
package tools
