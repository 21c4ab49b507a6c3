package refdata

import "testing"

func TestBeta(t *testing.T) {
	tables := Defaults()

	if got := tables.Beta("AAPL"); got != 1.20 {
		t.Errorf("Beta(AAPL) = %f, want 1.20", got)
	}
	if got := tables.Beta("UNKNOWN"); got != DefaultBeta {
		t.Errorf("Beta(UNKNOWN) = %f, want %f", got, DefaultBeta)
	}
}

func TestDividendLookup(t *testing.T) {
	tables := Defaults()

	div, ok := tables.Dividend("KO")
	if !ok {
		t.Fatal("expected a dividend schedule for KO")
	}
	if div.AnnualPerShr <= 0 {
		t.Errorf("AnnualPerShr = %f, want > 0", div.AnnualPerShr)
	}
	if len(div.ExMonths) == 0 {
		t.Error("expected ex months for a quarterly payer")
	}

	if _, ok := tables.Dividend("NVDA-FAKE"); ok {
		t.Error("expected no dividend schedule for an unknown ticker")
	}
}

func TestEarningsLookup(t *testing.T) {
	tables := Defaults()

	earn, ok := tables.Earnings("AAPL")
	if !ok {
		t.Fatal("expected an earnings schedule for AAPL")
	}
	if earn.Month < 1 || earn.Month > 12 {
		t.Errorf("Month = %d, want 1..12", earn.Month)
	}
	if earn.Day < 1 || earn.Day > 31 {
		t.Errorf("Day = %d, want 1..31", earn.Day)
	}
}

func TestNew_CustomTables(t *testing.T) {
	tables := New(map[string]float64{"ZZ": 2.5}, nil, nil)

	if got := tables.Beta("ZZ"); got != 2.5 {
		t.Errorf("Beta(ZZ) = %f, want 2.5", got)
	}
	if got := tables.Beta("AAPL"); got != DefaultBeta {
		t.Errorf("custom tables should not inherit defaults, got %f", got)
	}
}
