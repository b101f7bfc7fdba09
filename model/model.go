package model

import "fmt"

// TimeUnit is the unit case durations are expressed in. It scales the
// values a duration source serves and labels the result; the binning
// logic itself is unit-agnostic.
type TimeUnit string

const (
	TimeUnitMinutes TimeUnit = "MINUTES"
	TimeUnitHours   TimeUnit = "HOURS"
	TimeUnitDays    TimeUnit = "DAYS"
	TimeUnitMonths  TimeUnit = "MONTHS"
)

// Interval is a closed integer range [Low, High]. OpenBelow / OpenAbove
// mark an unbounded end: everything <= High, everything >= Low. An
// interval with High < Low is empty and counts zero values.
type Interval struct {
	Low       int64 `json:"low"`
	High      int64 `json:"high"`
	OpenBelow bool  `json:"open_below,omitempty"`
	OpenAbove bool  `json:"open_above,omitempty"`
}

func NewInterval(low, high int64) Interval {
	return Interval{Low: low, High: high}
}

func IntervalBelow(high int64) Interval {
	return Interval{High: high, OpenBelow: true}
}

func IntervalAbove(low int64) Interval {
	return Interval{Low: low, OpenAbove: true}
}

func (iv Interval) Empty() bool {
	return !iv.OpenBelow && !iv.OpenAbove && iv.High < iv.Low
}

// Label renders the interval for histogram axes.
func (iv Interval) Label() string {
	switch {
	case iv.OpenBelow && iv.OpenAbove:
		return "all"
	case iv.OpenBelow:
		return fmt.Sprintf("<= %d", iv.High)
	case iv.OpenAbove:
		return fmt.Sprintf(">= %d", iv.Low)
	case iv.Low == iv.High:
		return fmt.Sprintf("%d", iv.Low)
	default:
		return fmt.Sprintf("%d - %d", iv.Low, iv.High)
	}
}

// Bin is an interval annotated with the number of cases whose duration
// falls inside it.
type Bin struct {
	Interval Interval `json:"interval"`
	Cases    int64    `json:"cases"`
}

// HistogramRow is one display-ready row of a binned distribution.
type HistogramRow struct {
	Range string `json:"range"`
	Cases int64  `json:"cases"`
}

// BinningResult holds the binned case duration distribution, bins ordered
// by ascending lower bound. The first and last bins are the outlier
// buckets.
type BinningResult struct {
	TimeUnit TimeUnit `json:"time_unit"`
	Bins     []Bin    `json:"bins"`
}

func (r *BinningResult) TotalCases() int64 {
	var total int64
	for _, bin := range r.Bins {
		total += bin.Cases
	}
	return total
}

// Rows returns the (range, cases) table a bar chart renders from.
func (r *BinningResult) Rows() []HistogramRow {
	rows := make([]HistogramRow, 0, len(r.Bins))
	for _, bin := range r.Bins {
		rows = append(rows, HistogramRow{
			Range: bin.Interval.Label(),
			Cases: bin.Cases,
		})
	}
	return rows
}
