package retail_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/petasbytes/retail-agent/retail"
)

func quotes(t *testing.T, rec retail.PricingRecommendation) map[string]retail.StrategyQuote {
	t.Helper()
	out := map[string]retail.StrategyQuote{}
	var order []string
	for p := rec.Strategies.Oldest(); p != nil; p = p.Next() {
		out[p.Key] = p.Value
		order = append(order, p.Key)
	}
	if diff := cmp.Diff(retail.Strategies, order); diff != "" {
		t.Fatalf("strategy order mismatch (-want +got):\n%s", diff)
	}
	return out
}

func TestAnalyzePricing_NoCompetitorScenario(t *testing.T) {
	got, err := retail.AnalyzePricing(`{}`, `{"P":10}`, retail.DefaultDemandElasticity)
	if err != nil {
		t.Fatalf("AnalyzePricing: %v", err)
	}
	rec, ok := got["P"]
	if !ok {
		t.Fatalf("missing product P: %v", got)
	}
	if rec.CurrentCost != 10 || rec.CompetitorAverage != 15 {
		t.Fatalf("unexpected cost/avg: %+v", rec)
	}

	approx := cmpopts.EquateApprox(0, 1e-9)
	want := map[string]retail.StrategyQuote{
		retail.StrategyCostPlus30:         {Price: 13, MarginPercent: 3.0 / 13 * 100, ProfitPerUnit: 3},
		retail.StrategyMarketCompetitive:  {Price: 14.25, MarginPercent: 4.25 / 14.25 * 100, ProfitPerUnit: 4.25},
		retail.StrategyPremiumPositioning: {Price: 16.5, MarginPercent: 6.5 / 16.5 * 100, ProfitPerUnit: 6.5},
		retail.StrategyPenetrationPricing: {Price: 12, MarginPercent: 2.0 / 12 * 100, ProfitPerUnit: 2},
	}
	if diff := cmp.Diff(want, quotes(t, rec), approx); diff != "" {
		t.Fatalf("quotes mismatch (-want +got):\n%s", diff)
	}
	if rec.RecommendedStrategy != retail.StrategyPremiumPositioning {
		t.Fatalf("want premium_positioning, got %s", rec.RecommendedStrategy)
	}
}

func TestAnalyzePricing_CompetitorAverage(t *testing.T) {
	got, err := retail.AnalyzePricing(`{"P":{"a":20,"b":30,"c":40},"Q":{}}`, `{"P":10,"Q":4}`, 1.2)
	if err != nil {
		t.Fatalf("AnalyzePricing: %v", err)
	}
	if got["P"].CompetitorAverage != 30 {
		t.Fatalf("P: want avg 30, got %v", got["P"].CompetitorAverage)
	}
	// An empty competitor map falls back to the synthetic estimate.
	if got["Q"].CompetitorAverage != 6 {
		t.Fatalf("Q: want avg 6, got %v", got["Q"].CompetitorAverage)
	}
}

func TestAnalyzePricing_OnlyCostMapProductsPriced(t *testing.T) {
	got, err := retail.AnalyzePricing(`{"P":{"a":20},"other":{"a":5}}`, `{"P":10}`, 1.2)
	if err != nil {
		t.Fatalf("AnalyzePricing: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("want 1 product, got %v", got)
	}
}

func TestAnalyzePricing_NonPositivePriceHasZeroMargin(t *testing.T) {
	got, err := retail.AnalyzePricing(`{}`, `{"free":0}`, 1.2)
	if err != nil {
		t.Fatalf("AnalyzePricing: %v", err)
	}
	for name, q := range quotes(t, got["free"]) {
		if q.MarginPercent != 0 {
			t.Errorf("%s: want margin 0, got %v", name, q.MarginPercent)
		}
		if math.IsNaN(q.MarginPercent) {
			t.Errorf("%s: margin is NaN", name)
		}
	}
}

func TestAnalyzePricing_NoQualifyingStrategyPicksFirst(t *testing.T) {
	// Every price is negative, so every margin is 0 and none beats 15%;
	// the first strategy in evaluation order is chosen.
	got, err := retail.AnalyzePricing(`{"P":{"a":-20}}`, `{"P":-10}`, 1.2)
	if err != nil {
		t.Fatalf("AnalyzePricing: %v", err)
	}
	if rec := got["P"].RecommendedStrategy; rec != retail.StrategyCostPlus30 {
		t.Fatalf("want cost_plus_30, got %s", rec)
	}
}

func TestAnalyzePricing_LowMarginsCompareAsZero(t *testing.T) {
	// avg=10.5: market 9.975 (negative margin), premium 11.55 (~13.4%),
	// penetration 8.4 (negative); cost_plus_30 is the only qualifier.
	got, err := retail.AnalyzePricing(`{"P":{"a":10.5}}`, `{"P":10}`, 1.2)
	if err != nil {
		t.Fatalf("AnalyzePricing: %v", err)
	}
	if rec := got["P"].RecommendedStrategy; rec != retail.StrategyCostPlus30 {
		t.Fatalf("want cost_plus_30, got %s", rec)
	}
}

func TestAnalyzePricing_Malformed(t *testing.T) {
	cases := []struct{ comp, cost string }{
		{`{`, `{"P":1}`},
		{`{}`, `[1]`},
		{`{"P":[1,2]}`, `{"P":1}`},
		{`{}`, `{"P":"cheap"}`},
		{`{"P":{"a":null,"b":20}}`, `{"P":10}`},
		{`{"P":null}`, `{"P":10}`},
		{`{}`, `{"P":null}`},
		{`null`, `{"P":10}`},
		{`{}`, `null`},
	}
	for _, c := range cases {
		_, err := retail.AnalyzePricing(c.comp, c.cost, 1.2)
		if !errors.Is(err, retail.ErrMalformedInput) {
			t.Fatalf("AnalyzePricing(%q, %q): want ErrMalformedInput, got %v", c.comp, c.cost, err)
		}
	}
}

func TestAnalyzePricing_NonFiniteElasticity(t *testing.T) {
	_, err := retail.AnalyzePricing(`{}`, `{"P":1}`, math.NaN())
	if err == nil {
		t.Fatal("expected error for NaN elasticity")
	}
	var re *retail.Error
	if !errors.As(err, &re) {
		t.Fatalf("expected *retail.Error, got %T", err)
	}
}

func TestAnalyzePricing_NullCompetitorPriceNamed(t *testing.T) {
	_, err := retail.AnalyzePricing(`{"P":{"a":null,"b":20}}`, `{"P":10}`, 1.2)
	if err == nil || !strings.Contains(err.Error(), "P/a is not a number") {
		t.Fatalf("expected error naming P/a, got %v", err)
	}
}

func TestAnalyzePricing_Overflow(t *testing.T) {
	_, err := retail.AnalyzePricing(`{}`, `{"P":1e308}`, 1.2)
	if !errors.Is(err, retail.ErrOutOfRange) {
		t.Fatalf("want ErrOutOfRange, got %v", err)
	}
	if !strings.Contains(err.Error(), "product P") {
		t.Fatalf("error should name the product: %v", err)
	}
}
