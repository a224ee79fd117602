package retail

import (
	"sort"

	"github.com/tidwall/gjson"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// TopProductsLimit caps the number of entries in SalesAnalysis.TopProducts.
const TopProductsLimit = 5

// SalesAnalysis summarises a sales log.
type SalesAnalysis struct {
	TotalSales        float64 `json:"total_sales"`
	AverageSale       float64 `json:"average_sale"`
	TotalTransactions int     `json:"total_transactions"`
	// TopProducts serialises in descending order of summed amount.
	TopProducts *orderedmap.OrderedMap[string, float64] `json:"top_products"`
	SalesByDate map[string]float64                      `json:"sales_by_date"`
}

// AnalyzeSales aggregates a JSON array of transaction records.
//
// Records are objects with optional amount, product and date fields. A record
// without an amount contributes nothing to the totals and counts as 0 toward
// its product and date sums; the average only considers records that carry an
// amount. Records without a product (or date) are left out of that grouping.
func AnalyzeSales(salesJSON string) (*SalesAnalysis, error) {
	const op = "analyze sales data"

	if !gjson.Valid(salesJSON) {
		return nil, malformed(op, "sales data is not valid JSON")
	}
	log := gjson.Parse(salesJSON)
	if !log.IsArray() {
		return nil, malformed(op, "sales data must be a JSON array of records")
	}
	records := log.Array()

	var (
		total       float64
		withAmount  int
		byProduct   = map[string]float64{}
		byDate      = map[string]float64{}
		hasProducts bool
	)
	for i, rec := range records {
		if !rec.IsObject() {
			return nil, malformed(op, "record %d is not an object", i)
		}

		var amount float64
		if v := rec.Get("amount"); present(v) {
			if v.Type != gjson.Number {
				return nil, malformed(op, "record %d: amount must be a number, got %s", i, v.Raw)
			}
			amount = v.Float()
			total += amount
			withAmount++
		}
		if v := rec.Get("product"); present(v) {
			hasProducts = true
			byProduct[v.String()] += amount
		}
		if v := rec.Get("date"); present(v) {
			byDate[v.String()] += amount
		}
	}

	if !finite(total) {
		return nil, outOfRange(op, "total sales")
	}
	for _, name := range sortedKeys(byProduct) {
		if !finite(byProduct[name]) {
			return nil, outOfRange(op, "product "+name)
		}
	}
	for _, date := range sortedKeys(byDate) {
		if !finite(byDate[date]) {
			return nil, outOfRange(op, "date "+date)
		}
	}

	out := &SalesAnalysis{
		TotalSales:        total,
		TotalTransactions: len(records),
		TopProducts:       orderedmap.New[string, float64](),
		SalesByDate:       byDate,
	}
	if withAmount > 0 {
		out.AverageSale = total / float64(withAmount)
	}
	if hasProducts {
		for _, p := range topProducts(byProduct, TopProductsLimit) {
			out.TopProducts.Set(p, byProduct[p])
		}
	}
	return out, nil
}

// present reports whether a field exists and is not JSON null.
func present(v gjson.Result) bool {
	return v.Exists() && v.Type != gjson.Null
}

// topProducts returns up to n product names ordered by descending sum.
// Equal sums are ordered by name so the result is stable across runs.
func topProducts(sums map[string]float64, n int) []string {
	names := make([]string, 0, len(sums))
	for name := range sums {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := sums[names[i]], sums[names[j]]
		if a != b {
			return a > b
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}
	return names
}
