package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatRatio(t *testing.T) {
	require.Equal(t, "1/3 (33.33%)", FormatRatio(1, 3))
	require.Equal(t, "2/2 (100.00%)", FormatRatio(2, 2))
	require.Equal(t, "0/5 (0.00%)", FormatRatio(0, 5))
	require.Equal(t, "0/0 (0.00%)", FormatRatio(0, 0))
}

func TestBuildHistogram(t *testing.T) {
	buckets := BuildHistogram([]int{40, 100, 40, 0, 100, 100})
	require.Equal(t, []ScoreBucket{
		{Result: 100, Count: 3},
		{Result: 40, Count: 2},
		{Result: 0, Count: 1},
	}, buckets)
}

func TestBuildHistogramEmpty(t *testing.T) {
	require.Empty(t, BuildHistogram(nil))
}
