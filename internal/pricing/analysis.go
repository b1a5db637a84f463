// Package pricing turns supporter price-ceiling submissions into a
// willingness-to-pay analysis: descriptive statistics, a price histogram,
// tiered price suggestions, per-intensity breakdowns, and a discrete demand
// curve with a revenue-maximizing price.
package pricing

import (
	"fmt"
	"math"
	"sort"
)

const numBrackets = 5

// Response is one supporter's submission: the most they would pay, in pence,
// tagged with their self-reported purchase-interest tier.
type Response struct {
	PricePence int
	Intensity  string
}

type Bracket struct {
	Label      string `json:"label"`
	MinPence   int    `json:"minPence"`
	MaxPence   int    `json:"maxPence"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type PricePoints struct {
	EconomyPence  int `json:"economyPence"`
	StandardPence int `json:"standardPence"`
	PremiumPence  int `json:"premiumPence"`
}

type IntensityGroup struct {
	Intensity    string  `json:"intensity"`
	Count        int     `json:"count"`
	AveragePence float64 `json:"averagePence"`
}

type DemandPoint struct {
	PricePence      int `json:"pricePence"`
	EstimatedBuyers int `json:"estimatedBuyers"`
	RevenuePence    int `json:"revenuePence"`
}

type Analysis struct {
	TotalResponses int `json:"totalResponses"`

	AveragePence float64 `json:"averagePence"`
	MedianPence  float64 `json:"medianPence"`
	ModePence    int     `json:"modePence"`
	MinPence     int     `json:"minPence"`
	MaxPence     int     `json:"maxPence"`

	Brackets       []Bracket        `json:"brackets"`
	SuggestedPrice PricePoints      `json:"suggestedPrice"`
	ByIntensity    []IntensityGroup `json:"byIntensity"`
	DemandCurve    []DemandPoint    `json:"demandCurve"`

	OptimalPricePence int `json:"optimalPricePence"`
	MaxRevenuePence   int `json:"maxRevenuePence"`
}

// Analyze computes the full pricing analysis. An empty input returns a
// well-formed zero analysis (TotalResponses 0, empty slices) rather than an
// error, so the consuming UI can render its empty state.
func Analyze(responses []Response) *Analysis {
	analysis := &Analysis{
		TotalResponses: len(responses),
		Brackets:       []Bracket{},
		ByIntensity:    []IntensityGroup{},
		DemandCurve:    []DemandPoint{},
	}

	if len(responses) == 0 {
		return analysis
	}

	prices := make([]int, len(responses))
	for i, r := range responses {
		prices[i] = r.PricePence
	}
	sort.Ints(prices)

	analysis.MinPence = prices[0]
	analysis.MaxPence = prices[len(prices)-1]
	analysis.AveragePence = average(prices)
	analysis.MedianPence = median(prices)
	analysis.ModePence = mode(prices)

	analysis.Brackets = bucketize(prices)
	analysis.SuggestedPrice = suggestPrices(prices)
	analysis.ByIntensity = groupByIntensity(responses)
	analysis.DemandCurve = demandCurve(prices)
	analysis.OptimalPricePence, analysis.MaxRevenuePence = optimalPrice(analysis.DemandCurve)

	return analysis
}

func average(sorted []int) float64 {
	sum := 0
	for _, p := range sorted {
		sum += p
	}
	return round2(float64(sum) / float64(len(sorted)))
}

// median is the middle value, or the mean of the two middle values for even
// counts.
func median(sorted []int) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return float64(sorted[n/2-1]+sorted[n/2]) / 2
}

// mode is the most frequent price; frequency ties resolve to the lowest
// price.
func mode(sorted []int) int {
	best := sorted[0]
	bestCount := 0

	i := 0
	for i < len(sorted) {
		j := i
		for j < len(sorted) && sorted[j] == sorted[i] {
			j++
		}
		if j-i > bestCount {
			bestCount = j - i
			best = sorted[i]
		}
		i = j
	}

	return best
}

// bucketize splits the observed price range into five equal-width brackets.
// A degenerate range (every response at the same price) collapses to one
// bracket. Bracket percentages are rounded and sum to ~100.
func bucketize(sorted []int) []Bracket {
	min, max := sorted[0], sorted[len(sorted)-1]

	if min == max {
		return []Bracket{{
			Label:      formatRange(min, max),
			MinPence:   min,
			MaxPence:   max,
			Count:      len(sorted),
			Percentage: 100,
		}}
	}

	width := float64(max-min) / numBrackets
	brackets := make([]Bracket, numBrackets)
	for i := range brackets {
		lo := min + int(math.Round(float64(i)*width))
		hi := min + int(math.Round(float64(i+1)*width))
		// Brackets are counted half-open, so all but the last close one
		// penny below the next bracket's floor.
		if i < numBrackets-1 {
			hi--
		}
		brackets[i].MinPence = lo
		brackets[i].MaxPence = hi
		brackets[i].Label = formatRange(lo, hi)
	}

	for _, p := range sorted {
		idx := int(float64(p-min) / width)
		if idx >= numBrackets {
			idx = numBrackets - 1
		}
		brackets[idx].Count++
	}

	total := float64(len(sorted))
	for i := range brackets {
		brackets[i].Percentage = int(math.Round(float64(brackets[i].Count) / total * 100))
	}

	return brackets
}

// suggestPrices anchors the three suggested price points on the quartiles:
// economy at the 25th percentile, standard at the median, premium at the
// 75th. Clamped so economy <= standard <= premium always holds.
func suggestPrices(sorted []int) PricePoints {
	points := PricePoints{
		EconomyPence:  percentile(sorted, 25),
		StandardPence: percentile(sorted, 50),
		PremiumPence:  percentile(sorted, 75),
	}

	if points.StandardPence < points.EconomyPence {
		points.StandardPence = points.EconomyPence
	}
	if points.PremiumPence < points.StandardPence {
		points.PremiumPence = points.StandardPence
	}

	return points
}

// percentile uses the nearest-rank method on the sorted prices.
func percentile(sorted []int, p int) int {
	rank := int(math.Ceil(float64(p) / 100 * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}

var intensityOrder = []string{"neat_idea", "probably_buy", "take_my_money"}

// groupByIntensity reports count and average price per interest tier. All
// three tiers are always present, zero-valued when unrepresented.
func groupByIntensity(responses []Response) []IntensityGroup {
	sums := make(map[string]int)
	counts := make(map[string]int)

	for _, r := range responses {
		sums[r.Intensity] += r.PricePence
		counts[r.Intensity]++
	}

	groups := make([]IntensityGroup, 0, len(intensityOrder))
	for _, label := range intensityOrder {
		group := IntensityGroup{Intensity: label, Count: counts[label]}
		if group.Count > 0 {
			group.AveragePence = round2(float64(sums[label]) / float64(group.Count))
		}
		groups = append(groups, group)
	}

	return groups
}

// demandCurve estimates, for each distinct observed price, how many
// respondents would buy at that price: everyone whose ceiling is at or above
// it. Buyers are monotonically non-increasing as price rises.
func demandCurve(sorted []int) []DemandPoint {
	curve := make([]DemandPoint, 0)

	for i := 0; i < len(sorted); i++ {
		if i > 0 && sorted[i] == sorted[i-1] {
			continue
		}
		buyers := len(sorted) - i
		curve = append(curve, DemandPoint{
			PricePence:      sorted[i],
			EstimatedBuyers: buyers,
			RevenuePence:    sorted[i] * buyers,
		})
	}

	return curve
}

// optimalPrice picks the curve point maximizing price * buyers. Revenue ties
// resolve to the lowest price, so sparse data never overstates the ceiling.
func optimalPrice(curve []DemandPoint) (price, revenue int) {
	for _, pt := range curve {
		if pt.RevenuePence > revenue {
			revenue = pt.RevenuePence
			price = pt.PricePence
		}
	}
	return price, revenue
}

func formatRange(lo, hi int) string {
	return fmt.Sprintf("£%.2f - £%.2f", float64(lo)/100, float64(hi)/100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
