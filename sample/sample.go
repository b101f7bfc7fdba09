package sample

import (
	"context"
	"sort"

	"github.com/procmine/caseduration-binning/common"
	"github.com/procmine/caseduration-binning/model"
	"gonum.org/v1/gonum/stat"
)

// Durations is an in-memory case duration sample. It is the reference
// implementation of the binning duration source for samples that have
// already been fetched, and the accessor the binning tests run against.
type Durations struct {
	values []float64 // sorted ascending
}

func NewDurations(values []float64) (*Durations, error) {
	if len(values) == 0 {
		return nil, common.ErrorEmptySample
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return &Durations{values: sorted}, nil
}

func (d *Durations) Size() int {
	return len(d.values)
}

// Quantiles returns the empirical sample quantile for each q, aligned
// with qs.
func (d *Durations) Quantiles(ctx context.Context, qs []float64) ([]float64, error) {
	res := make([]float64, len(qs))
	for i, q := range qs {
		if q < 0 || q > 1 {
			return nil, common.ErrorInvalidValue
		}
		res[i] = stat.Quantile(q, stat.Empirical, d.values, nil)
	}
	return res, nil
}

// CountInRanges returns the number of sample values inside each interval,
// aligned with intervals.
func (d *Durations) CountInRanges(ctx context.Context, intervals []model.Interval) ([]int64, error) {
	res := make([]int64, len(intervals))
	for i, iv := range intervals {
		res[i] = d.countIn(iv)
	}
	return res, nil
}

func (d *Durations) countIn(iv model.Interval) int64 {
	lo := 0
	if !iv.OpenBelow {
		lo = sort.Search(len(d.values), func(i int) bool {
			return d.values[i] >= float64(iv.Low)
		})
	}
	hi := len(d.values)
	if !iv.OpenAbove {
		hi = sort.Search(len(d.values), func(i int) bool {
			return d.values[i] > float64(iv.High)
		})
	}
	if hi < lo {
		return 0
	}
	return int64(hi - lo)
}
