package utils

import (
	"fmt"
	"sort"
)

// ScoreBucket is one row of a problem's score histogram
type ScoreBucket struct {
	Result int `json:"result"`
	Count  int `json:"count"`
}

// BuildHistogram groups results into buckets ordered by score descending
func BuildHistogram(results []int) []ScoreBucket {
	counts := make(map[int]int)
	for _, result := range results {
		counts[result]++
	}

	buckets := make([]ScoreBucket, 0, len(counts))
	for result, count := range counts {
		buckets = append(buckets, ScoreBucket{Result: result, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Result > buckets[j].Result
	})
	return buckets
}

// FormatRatio renders a solved count over a common total as "count/total (pct%)"
func FormatRatio(count int, total int) string {
	if total == 0 {
		return "0/0 (0.00%)"
	}
	return fmt.Sprintf("%d/%d (%.2f%%)", count, total, float64(count*100)/float64(total))
}
