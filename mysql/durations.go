package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"

	"github.com/procmine/caseduration-binning/common"
	"github.com/procmine/caseduration-binning/model"
)

var sqlTimeUnits = map[model.TimeUnit]string{
	model.TimeUnitMinutes: "MINUTE",
	model.TimeUnitHours:   "HOUR",
	model.TimeUnitDays:    "DAY",
	model.TimeUnitMonths:  "MONTH",
}

// DurationSource serves case durations computed in SQL: one duration row
// per case, the span between its first and last event in the activity
// table.
type DurationSource struct {
	store *Store
	unit  model.TimeUnit
}

// durationTable is the derived table the quantile and count queries
// select from.
func durationTable(table, caseCol, timeCol string, unit model.TimeUnit) string {
	return fmt.Sprintf(
		"SELECT TIMESTAMPDIFF(%s, MIN(a.`%s`), MAX(a.`%s`)) AS duration FROM `%s` a GROUP BY a.`%s`",
		sqlTimeUnits[unit], timeCol, timeCol, table, caseCol)
}

func (d *DurationSource) durationTable() string {
	return durationTable(d.store.table, d.store.caseCol, d.store.timeCol, d.unit)
}

// quantileOffset maps a quantile to the 0-based row offset of the
// empirical quantile in the ordered duration table of n rows.
func quantileOffset(q float64, n int64) int64 {
	offset := int64(math.Ceil(q*float64(n))) - 1
	if offset < 0 {
		offset = 0
	}
	if offset > n-1 {
		offset = n - 1
	}
	return offset
}

// Quantiles returns the empirical sample quantile for each q, aligned
// with qs.
func (d *DurationSource) Quantiles(ctx context.Context, qs []float64) ([]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, d.store.queryTimeout)
	defer cancel()

	var n int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM (%s) d;", d.durationTable())
	if err := d.store.db.QueryRowContext(ctx, countQuery).Scan(&n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, common.ErrorEmptySample
	}

	quantileQuery := fmt.Sprintf(
		"SELECT d.duration FROM (%s) d ORDER BY d.duration LIMIT 1 OFFSET ?;", d.durationTable())

	res := make([]float64, len(qs))
	for i, q := range qs {
		if q < 0 || q > 1 {
			return nil, common.ErrorInvalidValue
		}
		var v sql.NullFloat64
		if err := d.store.db.QueryRowContext(ctx, quantileQuery, quantileOffset(q, n)).Scan(&v); err != nil {
			return nil, err
		}
		res[i] = v.Float64
	}
	return res, nil
}

// CountInRanges counts the cases whose duration falls inside each
// interval, aligned with intervals. All intervals are counted in a single
// round trip.
func (d *DurationSource) CountInRanges(ctx context.Context, intervals []model.Interval) ([]int64, error) {
	if len(intervals) == 0 {
		return []int64{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, d.store.queryTimeout)
	defer cancel()

	query, args := countInRangesQuery(d.durationTable(), intervals)

	counts := make([]sql.NullInt64, len(intervals))
	dest := make([]any, len(intervals))
	for i := range counts {
		dest[i] = &counts[i]
	}
	if err := d.store.db.QueryRowContext(ctx, query, args...).Scan(dest...); err != nil {
		return nil, err
	}

	res := make([]int64, len(intervals))
	for i, c := range counts {
		res[i] = c.Int64
	}
	return res, nil
}

// countInRangesQuery builds one SUM(CASE WHEN ...) column per interval.
// Open ends emit only the bounded predicate; empty intervals produce a
// predicate no row satisfies.
func countInRangesQuery(durationTable string, intervals []model.Interval) (string, []any) {
	var b strings.Builder
	args := make([]any, 0, 2*len(intervals))

	b.WriteString("SELECT ")
	for i, iv := range intervals {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("SUM(CASE WHEN ")
		switch {
		case iv.OpenBelow && iv.OpenAbove:
			b.WriteString("1 = 1")
		case iv.OpenBelow:
			b.WriteString("d.duration <= ?")
			args = append(args, iv.High)
		case iv.OpenAbove:
			b.WriteString("d.duration >= ?")
			args = append(args, iv.Low)
		default:
			b.WriteString("d.duration >= ? AND d.duration <= ?")
			args = append(args, iv.Low, iv.High)
		}
		fmt.Fprintf(&b, " THEN 1 ELSE 0 END) AS c%d", i)
	}
	fmt.Fprintf(&b, " FROM (%s) d;", durationTable)

	return b.String(), args
}
