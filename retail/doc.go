// Package retail implements the deterministic retail calculations the agent
// exposes as tools.
//
// Includes:
//   - AnalyzeSales: totals, averages, top products and per-date sums over a sales log.
//   - OptimizeInventory: days of cover and reorder classification per product.
//   - AnalyzePricing: four candidate price points per product scored by margin.
//
// Every calculation takes its inputs as JSON text, holds no state and does no I/O.
// Parse failures are reported as *Error wrapping ErrMalformedInput; degenerate
// arithmetic (zero prices, missing competitor data) falls back to fixed values.
package retail
