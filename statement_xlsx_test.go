package stockdash

import (
	"bytes"
	"testing"

	"github.com/etnz/stockdash/date"
	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

// statementWorkbook writes a small statement workbook.
func statementWorkbook(t *testing.T, sheets map[string][][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for name, rows := range sheets {
		if _, err := f.NewSheet(name); err != nil {
			t.Fatal(err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				t.Fatal(err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func TestDecodeStatement(t *testing.T) {
	buf := statementWorkbook(t, map[string][][]any{
		ActivitySheet: {
			{"Date", "Type", "Details", "Amount", "Units / Contracts", "Balance", "Position ID", "Asset type"},
			{"02/01/2025 10:00:00", "Deposit", "", 1000, "-", 1000, "", ""},
			{"03/01/2025 15:30:00", "Open Position", "AAPL/USD", 500, 2.5, 500, "1001", "Stocks"},
			{},
			// a date serial and a blank balance
			{45665.5, "Adjustment", "", 0, "-", "", "", ""},
		},
		ClosedSheet: {
			{"Position ID", "Action", "Open Date", "Close Date", "Profit(USD)"},
			{"1001", "Buy AAPL", "03/01/2025 15:30:00", "10/02/2025 11:00:00", 50},
		},
	})

	s, err := DecodeStatement(buf)
	if err != nil {
		t.Fatalf("DecodeStatement() error: %v", err)
	}
	if len(s.Activities) != 3 || len(s.Closed) != 1 {
		t.Fatalf("DecodeStatement() = %d activities, %d closed positions, want 3 and 1", len(s.Activities), len(s.Closed))
	}
	open := s.Activities[1]
	if open.Details != "AAPL/USD" || open.PositionID != "1001" || open.Units.String() != "2.5" {
		t.Errorf("Activities[1] = %+v", open)
	}
	adjustment := s.Activities[2]
	if got := date.Of(adjustment.Time); got != date.New(2025, 1, 8) {
		t.Errorf("Activities[2].Time = %v, want 2025-01-08", adjustment.Time)
	}
	if adjustment.Balance.Valid {
		t.Errorf("Activities[2].Balance = %v, want blank", adjustment.Balance.Decimal)
	}
	if got := s.Closed[0].Profit.String(); got != "50" {
		t.Errorf("Closed[0].Profit = %s, want 50", got)
	}

	// the blank balance is not a net worth of 0
	var got []string
	for _, p := range NetWorth(s.Activities, date.Daily) {
		got = append(got, p.Date.String()+" "+p.Value.String())
	}
	want := []string{"2025-01-02 $1,000.00", "2025-01-03 $500.00"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NetWorth() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeStatement_Errors(t *testing.T) {
	missingSheet := statementWorkbook(t, map[string][][]any{
		ActivitySheet: {{"Date", "Type", "Balance"}},
	})
	if _, err := DecodeStatement(missingSheet); err == nil {
		t.Errorf("DecodeStatement(no closed positions sheet) want error")
	}
	if _, err := DecodeStatement(bytes.NewBufferString("Date,Type,Balance\n")); err == nil {
		t.Errorf("DecodeStatement(csv) want error")
	}
}
