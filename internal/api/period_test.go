package api

import "testing"

func TestPeriodCycle(t *testing.T) {
	tests := []struct {
		name string
		p    Period
		next Period
		prev Period
	}{
		{"day", PeriodDay, PeriodWeek, PeriodMonth},
		{"week", PeriodWeek, PeriodMonth, PeriodDay},
		{"month", PeriodMonth, PeriodDay, PeriodWeek},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Next(); got != tt.next {
				t.Errorf("Next() = %q, want %q", got, tt.next)
			}
			if got := tt.p.Prev(); got != tt.prev {
				t.Errorf("Prev() = %q, want %q", got, tt.prev)
			}
		})
	}
}

func TestPeriodCycleRoundTrip(t *testing.T) {
	p := PeriodDay
	for i := 0; i < len(Periods()); i++ {
		p = p.Next()
	}
	if p != PeriodDay {
		t.Errorf("cycling through all periods ended on %q, want day", p)
	}
}

func TestParsePeriod(t *testing.T) {
	for _, want := range Periods() {
		got, err := ParsePeriod(string(want))
		if err != nil {
			t.Fatalf("ParsePeriod(%q) returned error: %v", want, err)
		}
		if got != want {
			t.Errorf("ParsePeriod(%q) = %q", want, got)
		}
	}

	if _, err := ParsePeriod("year"); err == nil {
		t.Error("ParsePeriod(\"year\") should fail")
	}
	if _, err := ParsePeriod(""); err == nil {
		t.Error("ParsePeriod(\"\") should fail")
	}
}

func TestPeriodTitle(t *testing.T) {
	tests := []struct {
		p    Period
		want string
	}{
		{PeriodDay, "Day"},
		{PeriodWeek, "Week"},
		{PeriodMonth, "Month"},
	}

	for _, tt := range tests {
		if got := tt.p.Title(); got != tt.want {
			t.Errorf("Title(%q) = %q, want %q", tt.p, got, tt.want)
		}
	}
}
