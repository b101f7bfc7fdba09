package model

import "testing"

func TestIntervalLabel(t *testing.T) {
	cases := []struct {
		iv   Interval
		want string
	}{
		{NewInterval(5, 15), "5 - 15"},
		{NewInterval(7, 7), "7"},
		{IntervalBelow(4), "<= 4"},
		{IntervalAbove(95), ">= 95"},
		{Interval{OpenBelow: true, OpenAbove: true}, "all"},
	}
	for _, c := range cases {
		if got := c.iv.Label(); got != c.want {
			t.Fatalf("label of %+v: expected %q, got %q", c.iv, c.want, got)
		}
	}
}

func TestIntervalEmpty(t *testing.T) {
	if NewInterval(5, 15).Empty() {
		t.Fatalf("expected [5, 15] to be non empty")
	}
	if !NewInterval(8, 7).Empty() {
		t.Fatalf("expected [8, 7] to be empty")
	}
	if IntervalBelow(-1).Empty() {
		t.Fatalf("expected open interval to be non empty")
	}
}

func TestBinningResultRows(t *testing.T) {
	res := &BinningResult{
		TimeUnit: TimeUnitDays,
		Bins: []Bin{
			{Interval: NewInterval(1, 4), Cases: 4},
			{Interval: NewInterval(5, 15), Cases: 11},
			{Interval: NewInterval(16, 100), Cases: 85},
		},
	}

	if got := res.TotalCases(); got != 100 {
		t.Fatalf("expected 100 total cases, got %d", got)
	}

	rows := res.Rows()
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Range != "1 - 4" || rows[0].Cases != 4 {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	if rows[2].Range != "16 - 100" || rows[2].Cases != 85 {
		t.Fatalf("unexpected last row %+v", rows[2])
	}
}
