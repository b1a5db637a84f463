package pricing

import "testing"

func responsesAt(prices ...int) []Response {
	out := make([]Response, len(prices))
	for i, p := range prices {
		out[i] = Response{PricePence: p, Intensity: "probably_buy"}
	}
	return out
}

func TestAnalyzeEmpty(t *testing.T) {
	analysis := Analyze(nil)

	if analysis.TotalResponses != 0 {
		t.Errorf("Expected 0 responses, got %d", analysis.TotalResponses)
	}

	if analysis.Brackets == nil || analysis.ByIntensity == nil || analysis.DemandCurve == nil {
		t.Errorf("Empty analysis must carry empty (non-nil) slices: %+v", analysis)
	}

	if analysis.OptimalPricePence != 0 || analysis.MaxRevenuePence != 0 {
		t.Errorf("Expected zero optimal price, got %+v", analysis)
	}
}

func TestAnalyzeDescriptiveStats(t *testing.T) {
	// 1000, 1500, 1500, 2000, 5000
	analysis := Analyze(responsesAt(2000, 1500, 5000, 1000, 1500))

	if analysis.MinPence != 1000 || analysis.MaxPence != 5000 {
		t.Errorf("Unexpected range: %d-%d", analysis.MinPence, analysis.MaxPence)
	}

	if analysis.AveragePence != 2200 {
		t.Errorf("Expected average 2200, got %v", analysis.AveragePence)
	}

	if analysis.MedianPence != 1500 {
		t.Errorf("Expected median 1500, got %v", analysis.MedianPence)
	}

	if analysis.ModePence != 1500 {
		t.Errorf("Expected mode 1500, got %d", analysis.ModePence)
	}
}

func TestMedianEvenCount(t *testing.T) {
	analysis := Analyze(responsesAt(1000, 2000, 3000, 4000))

	if analysis.MedianPence != 2500 {
		t.Errorf("Expected median 2500 for even count, got %v", analysis.MedianPence)
	}
}

func TestModeTieBreaksLow(t *testing.T) {
	// 1000 and 3000 both appear twice; the tie must resolve to 1000.
	analysis := Analyze(responsesAt(3000, 1000, 3000, 1000, 2000))

	if analysis.ModePence != 1000 {
		t.Errorf("Expected mode tie to resolve to lowest price, got %d", analysis.ModePence)
	}
}

func TestBracketPercentagesSum(t *testing.T) {
	analysis := Analyze(responsesAt(500, 900, 1400, 2100, 2600, 3000, 3300, 4100, 4700, 5000))

	if len(analysis.Brackets) != 5 {
		t.Fatalf("Expected 5 brackets, got %d", len(analysis.Brackets))
	}

	count := 0
	sum := 0
	for _, b := range analysis.Brackets {
		count += b.Count
		sum += b.Percentage
	}

	if count != analysis.TotalResponses {
		t.Errorf("Bracket counts should cover every response: %d != %d", count, analysis.TotalResponses)
	}

	if sum < 98 || sum > 102 {
		t.Errorf("Bracket percentages should sum to ~100, got %d", sum)
	}
}

func TestBracketBoundsDoNotOverlap(t *testing.T) {
	analysis := Analyze(responsesAt(500, 900, 1400, 2100, 2600, 3000, 3300, 4100, 4700, 5000))

	brackets := analysis.Brackets
	if brackets[0].MinPence != 500 {
		t.Errorf("First bracket should open at the minimum price, got %d", brackets[0].MinPence)
	}
	if brackets[len(brackets)-1].MaxPence != 5000 {
		t.Errorf("Last bracket should close at the maximum price, got %d", brackets[len(brackets)-1].MaxPence)
	}

	for i := 1; i < len(brackets); i++ {
		if brackets[i].MinPence != brackets[i-1].MaxPence+1 {
			t.Errorf("Bracket %d opens at %d but bracket %d closes at %d; ranges must not share a penny",
				i, brackets[i].MinPence, i-1, brackets[i-1].MaxPence)
		}
	}
}

func TestBracketsDegenerateRange(t *testing.T) {
	analysis := Analyze(responsesAt(1500, 1500, 1500))

	if len(analysis.Brackets) != 1 {
		t.Fatalf("Expected single bracket for single-price input, got %d", len(analysis.Brackets))
	}

	if analysis.Brackets[0].Count != 3 || analysis.Brackets[0].Percentage != 100 {
		t.Errorf("Unexpected degenerate bracket: %+v", analysis.Brackets[0])
	}
}

func TestSuggestedPriceOrdering(t *testing.T) {
	tests := []struct {
		name   string
		prices []int
	}{
		{"spread", []int{500, 1000, 1500, 2000, 2500, 3000, 3500, 4000}},
		{"single", []int{1500}},
		{"pair", []int{1000, 5000}},
		{"identical", []int{2000, 2000, 2000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Analyze(responsesAt(tt.prices...)).SuggestedPrice

			if p.EconomyPence > p.StandardPence || p.StandardPence > p.PremiumPence {
				t.Errorf("Expected economy <= standard <= premium, got %+v", p)
			}
		})
	}
}

func TestIntensityGroups(t *testing.T) {
	analysis := Analyze([]Response{
		{PricePence: 1000, Intensity: "neat_idea"},
		{PricePence: 2000, Intensity: "take_my_money"},
		{PricePence: 4000, Intensity: "take_my_money"},
	})

	if len(analysis.ByIntensity) != 3 {
		t.Fatalf("Expected all 3 intensity groups, got %d", len(analysis.ByIntensity))
	}

	byLabel := make(map[string]IntensityGroup)
	for _, g := range analysis.ByIntensity {
		byLabel[g.Intensity] = g
	}

	if g := byLabel["take_my_money"]; g.Count != 2 || g.AveragePence != 3000 {
		t.Errorf("Unexpected take_my_money group: %+v", g)
	}

	if g := byLabel["probably_buy"]; g.Count != 0 || g.AveragePence != 0 {
		t.Errorf("Unrepresented tier should be zero-valued: %+v", g)
	}
}

func TestDemandCurveMonotonic(t *testing.T) {
	analysis := Analyze(responsesAt(1200, 800, 800, 3000, 2200, 1200, 5000))

	curve := analysis.DemandCurve
	if len(curve) == 0 {
		t.Fatal("Expected non-empty demand curve")
	}

	for i := 1; i < len(curve); i++ {
		if curve[i].PricePence <= curve[i-1].PricePence {
			t.Errorf("Curve prices must be strictly ascending at %d", i)
		}
		if curve[i].EstimatedBuyers > curve[i-1].EstimatedBuyers {
			t.Errorf("Estimated buyers must be non-increasing at %d: %d > %d",
				i, curve[i].EstimatedBuyers, curve[i-1].EstimatedBuyers)
		}
	}

	// Everyone buys at the lowest observed price.
	if curve[0].EstimatedBuyers != analysis.TotalResponses {
		t.Errorf("Expected %d buyers at lowest price, got %d", analysis.TotalResponses, curve[0].EstimatedBuyers)
	}
}

func TestOptimalPrice(t *testing.T) {
	// Revenue: 1000*3=3000, 2000*2=4000, 3000*1=3000 -> optimal 2000.
	analysis := Analyze(responsesAt(1000, 2000, 3000))

	if analysis.OptimalPricePence != 2000 {
		t.Errorf("Expected optimal price 2000, got %d", analysis.OptimalPricePence)
	}

	if analysis.MaxRevenuePence != 4000 {
		t.Errorf("Expected max revenue 4000, got %d", analysis.MaxRevenuePence)
	}
}

func TestOptimalPriceRevenueTieBreaksLow(t *testing.T) {
	// Revenue: 1000*2=2000, 2000*1=2000 -> tie, lowest price wins.
	analysis := Analyze(responsesAt(1000, 2000))

	if analysis.OptimalPricePence != 1000 {
		t.Errorf("Expected revenue tie to resolve to lowest price, got %d", analysis.OptimalPricePence)
	}
}
