package mysql

import (
	"errors"
	"strings"
	"testing"

	"github.com/procmine/caseduration-binning/common"
	"github.com/procmine/caseduration-binning/model"
)

func testStore() *Store {
	return &Store{table: "activities", caseCol: "case_id", timeCol: "event_time"}
}

func TestDurationTable(t *testing.T) {
	got := durationTable("activities", "case_id", "event_time", model.TimeUnitDays)

	want := "SELECT TIMESTAMPDIFF(DAY, MIN(a.`event_time`), MAX(a.`event_time`)) AS duration " +
		"FROM `activities` a GROUP BY a.`case_id`"
	if got != want {
		t.Fatalf("expected duration table\n%s\ngot\n%s", want, got)
	}
}

func TestDurationsRejectsUnknownUnit(t *testing.T) {
	s := testStore()

	if _, err := s.Durations("FORTNIGHTS"); !errors.Is(err, common.ErrorInvalidConfiguration) {
		t.Fatalf("expected ErrorInvalidConfiguration, got %v", err)
	}

	src, err := s.Durations(model.TimeUnitHours)
	if err != nil {
		t.Fatalf("Durations failed: %v", err)
	}
	if src.unit != model.TimeUnitHours {
		t.Fatalf("expected unit %s, got %s", model.TimeUnitHours, src.unit)
	}
}

func TestQuantileOffset(t *testing.T) {
	cases := []struct {
		q    float64
		n    int64
		want int64
	}{
		{0, 10, 0},
		{1, 10, 9},
		{0.5, 10, 4},
		{0.05, 100, 4},
		{0.95, 100, 94},
		{0, 1, 0},
		{1, 1, 0},
	}
	for _, c := range cases {
		if got := quantileOffset(c.q, c.n); got != c.want {
			t.Fatalf("quantileOffset(%v, %d): expected %d, got %d", c.q, c.n, c.want, got)
		}
	}
}

func TestCountInRangesQuery(t *testing.T) {
	intervals := []model.Interval{
		model.NewInterval(5, 15),
		model.IntervalBelow(4),
		model.IntervalAbove(95),
		model.NewInterval(8, 7),
	}
	query, args := countInRangesQuery("DT", intervals)

	want := "SELECT " +
		"SUM(CASE WHEN d.duration >= ? AND d.duration <= ? THEN 1 ELSE 0 END) AS c0, " +
		"SUM(CASE WHEN d.duration <= ? THEN 1 ELSE 0 END) AS c1, " +
		"SUM(CASE WHEN d.duration >= ? THEN 1 ELSE 0 END) AS c2, " +
		"SUM(CASE WHEN d.duration >= ? AND d.duration <= ? THEN 1 ELSE 0 END) AS c3 " +
		"FROM (DT) d;"
	if query != want {
		t.Fatalf("expected query\n%s\ngot\n%s", want, query)
	}

	wantArgs := []any{int64(5), int64(15), int64(4), int64(95), int64(8), int64(7)}
	if len(args) != len(wantArgs) {
		t.Fatalf("expected %d args, got %d", len(wantArgs), len(args))
	}
	for i := range wantArgs {
		if args[i] != wantArgs[i] {
			t.Fatalf("arg %d: expected %v, got %v", i, wantArgs[i], args[i])
		}
	}
}

func TestCountInRangesQueryUnboundedInterval(t *testing.T) {
	query, args := countInRangesQuery("DT", []model.Interval{
		{OpenBelow: true, OpenAbove: true},
	})

	if !strings.Contains(query, "SUM(CASE WHEN 1 = 1 THEN 1 ELSE 0 END) AS c0") {
		t.Fatalf("expected unconditional count column, got %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestNewStoreRejectsMissingTableConfig(t *testing.T) {
	_, err := NewStore(Config{DSN: "user:pass@tcp(localhost:3306)/db"})
	if !errors.Is(err, common.ErrorInvalidConfiguration) {
		t.Fatalf("expected ErrorInvalidConfiguration, got %v", err)
	}
}
