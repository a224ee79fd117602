package retail

import "math"

// ReorderStatus classifies how urgently a product needs restocking.
type ReorderStatus string

const (
	StatusUrgentReorder ReorderStatus = "URGENT_REORDER"
	StatusReorderSoon   ReorderStatus = "REORDER_SOON"
	StatusAdequateStock ReorderStatus = "ADEQUATE_STOCK"
)

// Days-of-cover thresholds and the cover each reorder tier restocks to.
const (
	urgentBelowDays = 7
	soonBelowDays   = 14
	urgentCoverDays = 30
	soonCoverDays   = 21
)

// Recommendation is the reorder advice for a single product.
type Recommendation struct {
	CurrentStock             float64       `json:"current_stock"`
	DaysRemaining            float64       `json:"days_remaining"`
	Status                   ReorderStatus `json:"status"`
	RecommendedOrderQuantity float64       `json:"recommended_order_quantity"`
}

// OptimizeInventory compares a stock snapshot (product -> units on hand)
// against sales velocity (product -> average units sold per day).
//
// Products without a positive velocity get no recommendation. Null payloads
// and null entries are malformed.
func OptimizeInventory(inventoryJSON, velocityJSON string) (map[string]Recommendation, error) {
	const op = "calculate inventory optimization"

	inventory, err := decodeNumbers(op, "current inventory", inventoryJSON)
	if err != nil {
		return nil, err
	}
	velocity, err := decodeNumbers(op, "sales velocity", velocityJSON)
	if err != nil {
		return nil, err
	}

	out := make(map[string]Recommendation, len(inventory))
	for product, stock := range inventory {
		daily := velocity[product]
		if daily <= 0 {
			continue
		}
		rec := recommend(stock, daily)
		if !finite(rec.DaysRemaining, rec.RecommendedOrderQuantity) {
			return nil, outOfRange(op, "product "+product)
		}
		out[product] = rec
	}
	return out, nil
}

func recommend(stock, daily float64) Recommendation {
	days := stock / daily
	rec := Recommendation{CurrentStock: stock, DaysRemaining: days}
	switch {
	case days < urgentBelowDays:
		rec.Status = StatusUrgentReorder
		rec.RecommendedOrderQuantity = math.Max(0, daily*urgentCoverDays-stock)
	case days < soonBelowDays:
		rec.Status = StatusReorderSoon
		rec.RecommendedOrderQuantity = math.Max(0, daily*soonCoverDays-stock)
	default:
		rec.Status = StatusAdequateStock
	}
	return rec
}
