package segmentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentileThreshold(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		pct    float64
		want   float64
	}{
		{"empty distribution", nil, 90, 0},
		{"single value", []float64{42}, 90, 42},
		{"p50 of four", []float64{10, 20, 30, 40}, 50, 20},
		{"p90 of ten", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 90, 9},
		{"p25 of ten", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 25, 3},
		{"p100 picks max", []float64{5, 1, 9}, 100, 9},
		{"p0 clamps to min", []float64{5, 1, 9}, 0, 1},
		{"unsorted input", []float64{40, 10, 30, 20}, 50, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PercentileThreshold(tt.values, tt.pct))
		})
	}
}

func TestPercentileThreshold_DoesNotMutateInput(t *testing.T) {
	values := []float64{9, 1, 5}
	PercentileThreshold(values, 50)
	assert.Equal(t, []float64{9, 1, 5}, values)
}

type scored struct {
	ID    string
	Score float64
}

func scoreOf(s *scored) float64 { return s.Score }

func TestTopPercentile(t *testing.T) {
	items := []scored{
		{"a", 10}, {"b", 40}, {"c", 20}, {"d", 30},
	}

	top := TopPercentile(items, scoreOf, 25)
	assert.Len(t, top, 1)
	assert.Equal(t, "b", top[0].ID)

	half := TopPercentile(items, scoreOf, 50)
	assert.Equal(t, []string{"b", "d"}, ids(half))

	// Input order preserved
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(items))
}

func TestBottomPercentile(t *testing.T) {
	items := []scored{
		{"a", 10}, {"b", 40}, {"c", 20}, {"d", 30},
	}

	bottom := BottomPercentile(items, scoreOf, 50)
	assert.Equal(t, []string{"a", "c"}, ids(bottom))
}

func TestMiddlePercentile(t *testing.T) {
	items := []scored{
		{"a", 10}, {"b", 40}, {"c", 20}, {"d", 30},
	}

	mid := MiddlePercentile(items, scoreOf, 25, 75)
	assert.Equal(t, []string{"d", "c"}, ids(mid))
}

func TestPercentileBands_CoverAllItems(t *testing.T) {
	items := []scored{
		{"a", 5}, {"b", 15}, {"c", 25}, {"d", 35},
		{"e", 45}, {"f", 55}, {"g", 65}, {"h", 75},
	}

	top := TopPercentile(items, scoreOf, 25)
	mid := MiddlePercentile(items, scoreOf, 25, 75)
	bottom := BottomPercentile(items, scoreOf, 25)

	assert.Equal(t, len(items), len(top)+len(mid)+len(bottom))

	seen := make(map[string]struct{})
	for _, s := range top {
		seen[s.ID] = struct{}{}
	}
	for _, s := range mid {
		seen[s.ID] = struct{}{}
	}
	for _, s := range bottom {
		seen[s.ID] = struct{}{}
	}
	assert.Len(t, seen, len(items))
}

func TestTopPercentile_WideningKeepsPrefix(t *testing.T) {
	items := []scored{
		{"a", 5}, {"b", 15}, {"c", 25}, {"d", 35},
		{"e", 45}, {"f", 55}, {"g", 65}, {"h", 75},
	}

	tests := []struct {
		name   string
		narrow float64
		wide   float64
	}{
		{"10 into 25", 10, 25},
		{"25 into 50", 25, 50},
		{"50 into 75", 50, 75},
		{"75 into 100", 75, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			narrow := ids(TopPercentile(items, scoreOf, tt.narrow))
			wide := ids(TopPercentile(items, scoreOf, tt.wide))

			assert.GreaterOrEqual(t, len(wide), len(narrow))
			assert.Equal(t, narrow, wide[:len(narrow)],
				"widening the cut must only append items")
		})
	}
}

func TestPercentiles_EmptyInput(t *testing.T) {
	assert.Empty(t, TopPercentile(nil, scoreOf, 25))
	assert.Empty(t, BottomPercentile(nil, scoreOf, 25))
	assert.Empty(t, MiddlePercentile(nil, scoreOf, 25, 75))
}

func ids(items []scored) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = s.ID
	}
	return out
}
